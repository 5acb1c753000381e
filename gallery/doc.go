// Package gallery is the gesture, zoom and preload engine behind a
// multi-image viewer.
//
// The engine never draws. It consumes raw input as [Event] values, turns
// them into navigation and zoom/pan transitions, and reports the result
// through [Callbacks] and [Viewer.Snapshot]. The host owns the display loop
// and calls [Viewer.Frame] once per refresh; that is where coalesced pan and
// pinch updates are committed and where finished preloads are applied.
//
// # Quick start
//
//	feed := &gallery.Feed{}
//	v := gallery.NewViewer(gallery.ViewerConfig{
//		Images:  ids,
//		Options: gallery.DefaultOptions(),
//		Fetcher: store,
//		Callbacks: gallery.Callbacks{
//			OnImageChange: func(i int) { /* re-render */ },
//		},
//	})
//	v.Open(feed)
//	defer v.Close()
//
//	// per frame
//	feed.Publish(gallery.Event{Kind: gallery.KindWheel, Delta: gallery.Point{Y: -100}})
//	v.Frame()
//
// All methods must be called from the host's update goroutine. Fetches run
// on their own goroutines but only post results; state changes happen in
// [Viewer.Frame].
package gallery
