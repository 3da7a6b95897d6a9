package main

import (
	"iter"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// fixtures yields the fixture files at or below root, depth first, with
// directory entries in lexical order. Links are followed; a directory seen
// twice through a link cycle is not entered again. Entries that are neither
// regular files nor directories are skipped.
//
// A failure to list a directory is yielded as an error and ends the sequence.
func fixtures(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		w := &walker{
			yield: yield,
			seen:  make(map[string]bool),
		}
		w.walk(root)
	}
}

type walker struct {
	yield func(string, error) bool
	seen  map[string]bool // resolved directory paths already entered
}

// walk returns false once the consumer has stopped iterating.
func (w *walker) walk(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		log.WithError(err).Debugf("skipping %s", path)
		return true
	}

	switch {
	case info.IsDir():
		if !w.enter(path) {
			log.Debugf("skipping %s: directory already visited", path)
			return true
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			w.yield("", errors.Wrapf(err, "listing %s", path))
			return false
		}
		for _, entry := range entries {
			if !w.walk(filepath.Join(path, entry.Name())) {
				return false
			}
		}
		return true

	case info.Mode().IsRegular():
		if !isFixture(path) {
			return true
		}
		return w.yield(path, nil)
	}

	log.Debugf("skipping %s: %s", path, info.Mode().Type())
	return true
}

// enter records dir as visited and reports whether it was new.
func (w *walker) enter(dir string) bool {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		resolved = dir
	}
	if abs, err := filepath.Abs(resolved); err == nil {
		resolved = abs
	}
	if w.seen[resolved] {
		return false
	}
	w.seen[resolved] = true
	return true
}
