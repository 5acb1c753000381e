package main

import (
	"slices"

	"gview/gallery"
)

// ActionDefinition defines an action with its default keybindings, mouse bindings, and description
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

// actionDefinitions lists every bindable action in help display order.
var actionDefinitions = []ActionDefinition{
	{"exit", []string{"KeyQ"}, []string{}, "Quit application"},
	{"help", []string{"Shift+Slash", "KeyH"}, []string{"MiddleClick"}, "Show/hide help"},
	{"info", []string{"KeyI"}, []string{}, "Show/hide image info"},
	{"fullscreen", []string{"Enter", "KeyF"}, []string{}, "Toggle fullscreen"},
	{"next", []string{"ArrowRight", "Space", "KeyN"}, []string{"Forward"}, "Next image"},
	{"previous", []string{"ArrowLeft", "Backspace", "KeyP"}, []string{"Back"}, "Previous image"},
	{"jump_first", []string{"Home", "Shift+Comma"}, []string{}, "Jump to first image"},
	{"jump_last", []string{"End", "Shift+Period"}, []string{}, "Jump to last image"},
	{"zoom_in", []string{"Equal", "Shift+Equal"}, []string{}, "Zoom in"},
	{"zoom_out", []string{"Minus", "Shift+Minus"}, []string{}, "Zoom out"},
	{"zoom_reset", []string{"Escape", "Key0"}, []string{"Shift+MiddleClick"}, "Reset zoom"},
	{"cycle_sort", []string{"Shift+KeyS"}, []string{}, "Cycle sort method (Natural/Simple/Entry)"},
}

// engineKeys maps actions the gallery engine handles to its key names.
var engineKeys = map[string]string{
	"next":       gallery.KeyArrowRight,
	"previous":   gallery.KeyArrowLeft,
	"zoom_in":    gallery.KeyPlus,
	"zoom_out":   gallery.KeyMinus,
	"zoom_reset": gallery.KeyEscape,
}

// executeAction runs action against ia. It reports false for unknown actions.
func executeAction(action string, ia InputActions) bool {
	if key, ok := engineKeys[action]; ok {
		ia.SendKey(key)
		return true
	}

	switch action {
	case "exit":
		ia.Exit()
	case "help":
		ia.ToggleHelp()
	case "info":
		ia.ToggleInfo()
	case "fullscreen":
		ia.ToggleFullscreen()
	case "jump_first":
		ia.JumpToImage(0)
	case "jump_last":
		if n := ia.GetTotalImagesCount(); n > 0 {
			ia.JumpToImage(n - 1)
		}
	case "cycle_sort":
		ia.CycleSortMethod()
	default:
		return false
	}
	return true
}

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string, len(actionDefinitions))
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string, len(actionDefinitions))
	for _, action := range actionDefinitions {
		keybindings[action.Name] = slices.Clone(action.Keys)
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to their default mouse bindings
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string, len(actionDefinitions))
	for _, action := range actionDefinitions {
		mousebindings[action.Name] = slices.Clone(action.MouseActions)
	}
	return mousebindings
}
