package services

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"gitdeck/internal/logging"
)

// WatchDebounce is the quiet window after filesystem activity before the
// session refreshes. Editors and git itself touch many files in bursts;
// one refresh per burst is enough.
const WatchDebounce = 600 * time.Millisecond

// Watcher feeds filesystem activity into a session as debounced refreshes.
// It watches the working directory plus the repository metadata that moves
// when refs do (HEAD, refs, logs), so both edits and external git activity
// are noticed.
type Watcher struct {
	done    chan struct{}
	events  chan struct{}
	session *Session
	watcher *fsnotify.Watcher
}

func NewWatcher(ctx context.Context, session *Session) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		done:    make(chan struct{}),
		events:  make(chan struct{}, 1),
		session: session,
		watcher: fsw,
	}

	w.addDir(session.Path())
	if commonDir, err := session.backend.GitCommonDir(ctx, session.Path()); err == nil {
		w.addDir(commonDir)
		w.addTree(filepath.Join(commonDir, "refs"))
		w.addTree(filepath.Join(commonDir, "logs"))
	}

	go w.collect()
	go w.refreshLoop()
	return w, nil
}

func (w *Watcher) addDir(path string) {
	if err := w.watcher.Add(path); err != nil {
		logging.Logger.Debug("watch add failed", "path", path, "error", err)
	}
}

func (w *Watcher) addTree(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			w.addDir(path)
		}
		return nil
	})
}

// collect turns the raw event stream into refresh signals, dropping
// everything that arrives while one is already pending.
func (w *Watcher) collect() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.ignore(event) {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				w.maybeWatchNewDir(event.Name)
			}
			select {
			case w.events <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Logger.Debug("watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

// ignore filters noise: lock files git creates and removes around every
// command, and chmod-only events.
func (w *Watcher) ignore(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return true
	}
	base := filepath.Base(event.Name)
	return strings.HasSuffix(base, ".lock") || base == ".git"
}

func (w *Watcher) maybeWatchNewDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	w.addDir(path)
}

func (w *Watcher) refreshLoop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.events:
			if timer == nil {
				timer = time.NewTimer(WatchDebounce)
			} else {
				timer.Reset(WatchDebounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.refresh()
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := w.session.Refresh(ctx); err != nil {
		logging.Logger.Debug("watcher refresh failed", "error", err)
	}
}

// Close stops both goroutines and releases the inotify handles
func (w *Watcher) Close() {
	close(w.done)
	_ = w.watcher.Close()
}
