// Package watch reports debounced file changes under a project directory.
package watch

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	functor "github.com/functor-dev/functor"
)

// DefaultDebounce is the quiet period after the last event before a
// Change is delivered.
const DefaultDebounce = 200 * time.Millisecond

// ErrClosed is returned when adding paths to a closed watcher.
var ErrClosed = errors.New("watch: watcher closed")

// Change is a batch of paths that changed within one debounce window.
type Change struct {
	// Paths are the changed files, sorted and without duplicates.
	Paths []string

	// At is when the batch was delivered.
	At time.Time
}

// Option configures a Watcher.
type Option func(*options)

type options struct {
	debounce time.Duration
	ignore   func(path string) bool
}

// WithDebounce sets the quiet period. Non-positive values keep the default.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithIgnore adds a filter; paths for which ignore returns true produce no
// changes. Hidden files and directories are always ignored.
func WithIgnore(ignore func(path string) bool) Option {
	return func(o *options) {
		o.ignore = ignore
	}
}

// Watcher watches a directory tree and delivers debounced changes on a
// channel. Subdirectories created after start are watched as well.
type Watcher struct {
	fsw  *fsnotify.Watcher
	root string
	opts options

	changes chan Change
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// New starts watching root and every non-hidden directory below it.
func New(root string, opts ...Option) (*Watcher, error) {
	o := options{debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(&o)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}

	w := &Watcher{
		fsw:     fsw,
		root:    root,
		opts:    o,
		changes: make(chan Change, 1),
		done:    make(chan struct{}),
	}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Changes returns the channel changes are delivered on. It is closed by
// Close.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
		close(w.changes)
	})
	return err
}

// addTree watches dir and its non-hidden subdirectories.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			if errors.Is(err, fsnotify.ErrClosed) {
				return ErrClosed
			}
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err == nil {
		for _, part := range strings.Split(rel, string(filepath.Separator)) {
			if part != "." && strings.HasPrefix(part, ".") {
				return true
			}
		}
	}
	return w.opts.ignore != nil && w.opts.ignore(path)
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.opts.debounce)
	timer.Stop()

	for {
		select {
		case <-w.done:
			timer.Stop()
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.ignored(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						functor.Logger().Warn("watch: add directory failed",
							slog.String("path", event.Name),
							slog.String("error", err.Error()))
					}
				}
			}
			pending[event.Name] = struct{}{}
			timer.Reset(w.opts.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			functor.Logger().Warn("watch: error", slog.String("error", err.Error()))

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			change := Change{Paths: sortedKeys(pending), At: time.Now()}
			clear(pending)
			functor.Logger().Debug("watch: change", slog.Int("paths", len(change.Paths)))
			select {
			case w.changes <- change:
			case <-w.done:
				return
			}
		}
	}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
