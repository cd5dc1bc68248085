// Package watch rebuilds checked programs when they change on disk.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op indicates a change operation on a watched file.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Event is a change to one watched file.
type Event struct {
	Path string
	Op   Op
}

// DefaultDebounce is the quiet period after which a batch of changes is
// delivered. Editors typically write a file in several steps.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes to a set of files. The parent directories are
// watched rather than the files themselves so that editors replacing a file
// by rename keep being observed.
type Watcher struct {
	w        *fsnotify.Watcher
	evC      chan Event
	erC      chan error
	debounce time.Duration
	files    map[string]bool
}

// New creates a Watcher delivering batches after debounce of quiet; a
// non-positive debounce selects DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &Watcher{
		w:        w,
		evC:      make(chan Event, 128),
		erC:      make(chan error, 1),
		debounce: debounce,
		files:    make(map[string]bool),
	}
	go fw.loop()
	return fw, nil
}

// Add starts watching path. Must be called before Run.
func (fw *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if !fw.watchingDir(dir) {
		if err := fw.w.Add(dir); err != nil {
			return err
		}
	}
	fw.files[abs] = true
	return nil
}

func (fw *Watcher) watchingDir(dir string) bool {
	for f := range fw.files {
		if filepath.Dir(f) == dir {
			return true
		}
	}
	return false
}

func (fw *Watcher) loop() {
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				close(fw.evC)
				return
			}
			fw.evC <- Event{Path: filepath.Clean(ev.Name), Op: convertOp(ev.Op)}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			select {
			case fw.erC <- err:
			default:
			}
		}
	}
}

func convertOp(in fsnotify.Op) Op {
	var op Op
	if in&fsnotify.Create != 0 {
		op |= OpCreate
	}
	if in&fsnotify.Write != 0 {
		op |= OpWrite
	}
	if in&fsnotify.Remove != 0 {
		op |= OpRemove
	}
	if in&fsnotify.Rename != 0 {
		op |= OpRename
	}
	if in&fsnotify.Chmod != 0 {
		op |= OpChmod
	}
	return op
}

func (fw *Watcher) Events() <-chan Event { return fw.evC }
func (fw *Watcher) Errors() <-chan error { return fw.erC }
func (fw *Watcher) Close() error         { return fw.w.Close() }

// Run calls rebuild with the sorted paths of the watched files changed in
// each quiet-terminated batch, until ctx is done or the watcher is closed.
// Chmod-only events are ignored. Watcher errors are returned.
func (fw *Watcher) Run(ctx context.Context, rebuild func(paths []string)) error {
	timer := time.NewTimer(fw.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := make(map[string]bool)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-fw.erC:
			return err
		case ev, ok := <-fw.evC:
			if !ok {
				return nil
			}
			if !fw.files[ev.Path] || ev.Op == OpChmod {
				continue
			}
			pending[ev.Path] = true
			timer.Reset(fw.debounce)
		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = make(map[string]bool)
			rebuild(paths)
		}
	}
}
