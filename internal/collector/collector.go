// Package collector discovers the regular files named by path specifications.
package collector

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"darkstatic/internal/apperr"
	"darkstatic/internal/models"
)

// Collect walks every root path in pathSpecs and returns the regular files
// found beneath them. Each spec is a whitespace-separated list of roots.
//
// Roots are made absolute first, so every entry carries an absolute path.
// Symbolic links are followed. Entries that cannot be stat'ed or read, such
// as missing roots or dangling links, are skipped. Within a directory entries
// are visited in lexical order; roots are visited in the order given.
func Collect(pathSpecs []string) (*models.UploadBatch, error) {
	batch := &models.UploadBatch{}

	for _, spec := range pathSpecs {
		for _, root := range strings.Fields(spec) {
			abs, err := filepath.Abs(root)
			if err != nil {
				slog.Debug("Skipping path", "path", root, "error", err)
				continue
			}
			w := &walker{visited: make(map[string]os.FileInfo)}
			if err := w.walk(abs, batch); err != nil {
				return nil, err
			}
		}
	}

	if len(batch.Entries) == 0 {
		return nil, apperr.NoFilesFound(strings.Join(pathSpecs, " "))
	}

	slog.Debug("Collected files", "count", len(batch.Entries), "total_size_bytes", batch.TotalSizeBytes)
	return batch, nil
}

type walker struct {
	// visited holds directories on the current descent path, keyed by path.
	// A link back to an ancestor is skipped; a directory reached through two
	// sibling links is walked twice.
	visited map[string]os.FileInfo
}

func (w *walker) walk(path string, batch *models.UploadBatch) error {
	info, err := os.Stat(path)
	if err != nil {
		slog.Debug("Skipping path", "path", path, "error", err)
		return nil
	}

	switch {
	case info.Mode().IsRegular():
		name, err := baseName(path)
		if err != nil {
			return err
		}
		batch.Add(models.FileEntry{
			Path: path,
			Name: name,
			Size: info.Size(),
		})
		return nil
	case info.IsDir():
		return w.walkDir(path, info, batch)
	default:
		slog.Debug("Skipping non-regular file", "path", path, "mode", info.Mode().String())
		return nil
	}
}

func (w *walker) walkDir(path string, info os.FileInfo, batch *models.UploadBatch) error {
	for _, seen := range w.visited {
		if os.SameFile(seen, info) {
			slog.Debug("Skipping directory cycle", "path", path)
			return nil
		}
	}
	w.visited[path] = info
	defer delete(w.visited, path)

	entries, err := os.ReadDir(path)
	if err != nil {
		slog.Debug("Skipping unreadable directory", "path", path, "error", err)
		return nil
	}

	for _, entry := range entries {
		if err := w.walk(filepath.Join(path, entry.Name()), batch); err != nil {
			return err
		}
	}
	return nil
}

func baseName(path string) (string, error) {
	name := filepath.Base(path)
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "", apperr.MissingFilename(path)
	}
	return name, nil
}
