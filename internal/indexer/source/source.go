// Package source supplies raw documents to the indexer as a lazy sequence of
// entries. Dir walks the direct children of a filesystem directory; Static
// serves entries held in memory.
package source

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	apperrors "github.com/Adithya-Monish-Kumar-K/termrank/pkg/errors"
)

// Entry is one visited directory entry. Content is empty for directories.
type Entry struct {
	Path    string
	IsDir   bool
	Content string
}

// Source yields entries, or an error for entries that could not be read.
// Ranging over a Source twice visits the entries again.
type Source = iter.Seq2[Entry, error]

// Dir visits every direct entry of dir once, in name order. Subdirectories
// are yielded with IsDir set and are not descended into. A directory that
// cannot be listed yields a single ErrDirectoryUnreadable error.
func Dir(dir string) Source {
	return func(yield func(Entry, error) bool) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			yield(Entry{Path: dir}, apperrors.Newf(apperrors.ErrDirectoryUnreadable, "%s: %v", dir, err))
			return
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if isDir(path, entry) {
				if !yield(Entry{Path: path, IsDir: true}, nil) {
					return
				}
				continue
			}
			content, err := Extract(path)
			if err != nil {
				if !yield(Entry{Path: path}, fmt.Errorf("%w: %w", apperrors.ErrDocumentUnreadable, err)) {
					return
				}
				continue
			}
			if !yield(Entry{Path: path, Content: content}, nil) {
				return
			}
		}
	}
}

func isDir(path string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Static serves the given entries in order.
func Static(entries ...Entry) Source {
	return func(yield func(Entry, error) bool) {
		for _, e := range entries {
			if !yield(e, nil) {
				return
			}
		}
	}
}

// Texts is a convenience for Static with one file entry per path/content pair.
func Texts(pairs ...[2]string) Source {
	entries := make([]Entry, 0, len(pairs))
	for _, p := range pairs {
		entries = append(entries, Entry{Path: p[0], Content: p[1]})
	}
	return Static(entries...)
}
