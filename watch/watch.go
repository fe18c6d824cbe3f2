// Package watch reruns a callback when schema files change.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/tser/errors"
)

// DefaultDebounce is how long the watcher waits after the last change
// before calling back, so that an editor's save burst triggers one rebuild.
const DefaultDebounce = 300 * time.Millisecond

// ChangeFunc receives the changed files, sorted, as they were passed to New.
type ChangeFunc func(changed []string)

// Watcher watches a fixed set of files for changes.
//
// The parent directories are watched rather than the files themselves, so
// that files replaced by rename (as many editors save) keep being seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]string // absolute path -> path as given
	debounce time.Duration
	log      *zap.SugaredLogger
}

// New creates a watcher for files. A nil logger discards output.
func New(files []string, log *zap.SugaredLogger) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New("no files to watch")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]string, len(files)),
		debounce: DefaultDebounce,
		log:      log.Named("watch"),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", f)
		}
		w.files[abs] = f
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
	}
	return w, nil
}

// SetDebounce changes the quiet period before a callback. It must be
// called before Run.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run blocks until ctx is done, calling onChange after each burst of
// changes. Callbacks run on the Run goroutine, one at a time; changes
// arriving during a callback are batched into the next one.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	defer w.watcher.Close()

	var (
		pending = make(map[string]bool)
		timer   *time.Timer
		fire    <-chan time.Time
	)
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			path, ok := w.relevant(event)
			if !ok {
				continue
			}
			w.log.Debugw("change detected", "file", path, "op", event.Op.String())
			pending[path] = true

			stop()
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("watch error", "error", err)

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)

			w.log.Infow("files changed", "count", len(changed))
			onChange(changed)
		}
	}
}

// Close stops watching. Run returns once its watcher is closed.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return "", false
	}
	given, ok := w.files[filepath.Clean(event.Name)]
	return given, ok
}
