package watch

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind describes the type of file change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // Markdown file edited
	ChangeRemoved                    // Markdown file deleted or renamed away
	ChangeAdded                      // New markdown file appeared
)

// DocumentChange represents a detected change to a markdown file in the
// vault. RelPath is relative to the vault root.
type DocumentChange struct {
	Kind    ChangeKind
	RelPath string
}

// Watcher monitors a vault directory tree for markdown changes using
// fsnotify. fsnotify watches are not recursive, so every subdirectory is
// registered individually and newly created directories are added on the
// fly.
type Watcher struct {
	Root    string
	Changes <-chan DocumentChange // Read-only external channel

	changes chan DocumentChange // Internal write channel
	known   map[string]struct{} // Rel paths seen so far, for add vs modify
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a new watcher rooted at the given vault directory.
func NewWatcher(root string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan DocumentChange, 16)
	w := &Watcher{
		Root:    root,
		Changes: ch,
		changes: ch,
		known:   make(map[string]struct{}),
		done:    make(chan struct{}),
		watcher: fw,
	}
	return w, nil
}

// Start registers the vault tree and begins watching for changes.
func (w *Watcher) Start() error {
	err := filepath.Walk(w.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			if w.isDocument(path) {
				if rel, ok := w.relPath(path); ok {
					w.known[rel] = struct{}{}
				}
			}
			return nil
		}
		if w.isIgnoredDir(info.Name()) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
	if err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: editors fire bursts of writes per save, so track the last
	// event time per file and emit once the file goes quiet.
	const debounce = 100 * time.Millisecond
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				// Drain pending on close.
				for file := range pending {
					w.emitChange(file)
				}
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !w.isIgnoredDir(info.Name()) {
						_ = w.watcher.Add(event.Name)
					}
					continue
				}
			}

			if !w.isDocument(event.Name) {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[event.Name] = time.Now()
			}

		case _, ok := <-ticker.C:
			if !ok {
				return
			}
			now := time.Now()
			for file, t := range pending {
				if now.Sub(t) >= debounce {
					w.emitChange(file)
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Ignore watch errors; they're non-fatal.
		}
	}
}

func (w *Watcher) isDocument(name string) bool {
	if !strings.HasSuffix(filepath.Base(name), ".md") {
		return false
	}
	rel, ok := w.relPath(name)
	if !ok {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if w.isIgnoredDir(part) {
			return false
		}
	}
	return true
}

func (w *Watcher) isIgnoredDir(name string) bool {
	return name == ".obsidian" || strings.HasPrefix(name, ".")
}

func (w *Watcher) relPath(absPath string) (string, bool) {
	rel, err := filepath.Rel(w.Root, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (w *Watcher) emitChange(file string) {
	rel, ok := w.relPath(file)
	if !ok {
		return
	}

	if _, err := os.Stat(file); err != nil {
		// File no longer on disk.
		delete(w.known, rel)
		w.changes <- DocumentChange{Kind: ChangeRemoved, RelPath: rel}
		return
	}

	kind := ChangeModified
	if _, seen := w.known[rel]; !seen {
		kind = ChangeAdded
	}
	w.known[rel] = struct{}{}
	w.changes <- DocumentChange{Kind: kind, RelPath: rel}
}
