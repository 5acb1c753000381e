package main

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"
)

var (
	ErrUnsupportedArchive = errors.New("unsupported archive format")
	ErrEntryNotFound      = errors.New("archive entry not found")
	ErrNoImages           = errors.New("no image files found")
)

// ImagePath identifies one gallery image. Path doubles as the gallery
// identifier handed to the engine.
type ImagePath struct {
	Path        string // file path, or archive:entry for archive members
	ArchivePath string
	EntryPath   string
}

// InArchive reports whether the image is an archive member.
func (p ImagePath) InArchive() bool {
	return p.ArchivePath != ""
}

func newArchiveImagePath(archivePath, entry string) ImagePath {
	return ImagePath{
		Path:        archivePath + ":" + entry,
		ArchivePath: archivePath,
		EntryPath:   entry,
	}
}

func archiveExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func isArchiveExt(path string) bool {
	switch archiveExt(path) {
	case ".zip", ".cbz", ".rar", ".cbr", ".7z":
		return true
	}
	return false
}

func isSupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	}
	return false
}

// listArchiveImages returns the image members of an archive in stored order.
func listArchiveImages(archivePath string) ([]ImagePath, error) {
	var images []ImagePath
	add := func(name string, dir bool) {
		if !dir && isSupportedExt(name) {
			images = append(images, newArchiveImagePath(archivePath, name))
		}
	}

	switch archiveExt(archivePath) {
	case ".zip", ".cbz":
		r, err := zip.OpenReader(archivePath)
		if err != nil {
			return nil, fmt.Errorf("open zip %s: %w", archivePath, err)
		}
		defer r.Close()
		for _, f := range r.File {
			add(f.Name, f.FileInfo().IsDir())
		}
	case ".rar", ".cbr":
		err := walkRar(archivePath, func(h *rardecode.FileHeader, _ io.Reader) (bool, error) {
			add(h.Name, h.IsDir)
			return false, nil
		})
		if err != nil {
			return nil, err
		}
	case ".7z":
		r, err := sevenzip.OpenReader(archivePath)
		if err != nil {
			return nil, fmt.Errorf("open 7z %s: %w", archivePath, err)
		}
		defer r.Close()
		for _, f := range r.File {
			add(f.Name, f.FileInfo().IsDir())
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedArchive, archivePath)
	}
	return images, nil
}

// readArchiveEntry returns the bytes of one archive member.
func readArchiveEntry(archivePath, entry string) ([]byte, error) {
	switch archiveExt(archivePath) {
	case ".zip", ".cbz":
		r, err := zip.OpenReader(archivePath)
		if err != nil {
			return nil, fmt.Errorf("open zip %s: %w", archivePath, err)
		}
		defer r.Close()
		for _, f := range r.File {
			if f.Name == entry {
				return readZipFile(f.Open)
			}
		}
	case ".rar", ".cbr":
		var data []byte
		err := walkRar(archivePath, func(h *rardecode.FileHeader, r io.Reader) (bool, error) {
			if h.Name != entry {
				return false, nil
			}
			var err error
			data, err = io.ReadAll(r)
			return true, err
		})
		if err != nil {
			return nil, err
		}
		if data != nil {
			return data, nil
		}
	case ".7z":
		r, err := sevenzip.OpenReader(archivePath)
		if err != nil {
			return nil, fmt.Errorf("open 7z %s: %w", archivePath, err)
		}
		defer r.Close()
		for _, f := range r.File {
			if f.Name == entry {
				return readZipFile(f.Open)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedArchive, archivePath)
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrEntryNotFound, entry, archivePath)
}

func readZipFile(open func() (io.ReadCloser, error)) ([]byte, error) {
	rc, err := open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// walkRar calls fn for each header until fn reports done. RAR archives can
// only be read sequentially.
func walkRar(archivePath string, fn func(h *rardecode.FileHeader, r io.Reader) (done bool, err error)) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open rar %s: %w", archivePath, err)
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return fmt.Errorf("read rar %s: %w", archivePath, err)
	}
	for {
		h, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read rar %s: %w", archivePath, err)
		}
		done, err := fn(h, r)
		if err != nil || done {
			return err
		}
	}
}

// collectImages expands files, directories and archives named on the
// command line into an ordered image list.
func collectImages(args []string, method SortMethod, logger *slog.Logger) ([]ImagePath, error) {
	var list []ImagePath
	for _, p := range args {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			list = append(list, collectFile(p, method, logger)...)
			continue
		}

		var dirImages []ImagePath
		err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if isSupportedExt(path) {
				dirImages = append(dirImages, ImagePath{Path: path})
			} else if isArchiveExt(path) {
				dirImages = append(dirImages, collectFile(path, method, logger)...)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		list = append(list, sortImagePaths(dirImages, method)...)
	}
	return list, nil
}

func collectFile(path string, method SortMethod, logger *slog.Logger) []ImagePath {
	switch {
	case isSupportedExt(path):
		return []ImagePath{{Path: path}}
	case isArchiveExt(path):
		images, err := listArchiveImages(path)
		if err != nil {
			logger.Warn("skipping archive", "path", path, "error", err)
			return nil
		}
		return sortImagePaths(images, method)
	}
	return nil
}
