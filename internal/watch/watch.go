// Package watch reports birth-profile changes in a directory using fsnotify.
package watch

import (
	"errors"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/papapumpkin/kundali/internal/profile"
)

// Debounce is how long a file must stay quiet before its change is reported.
const Debounce = 100 * time.Millisecond

// ChangeKind describes the type of file change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // profile written or created
	ChangeRemoved                    // profile deleted or renamed away
	ChangeInvalid                    // profile present but unreadable
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeModified:
		return "modified"
	case ChangeRemoved:
		return "removed"
	default:
		return "invalid"
	}
}

// Change is one debounced profile change. Profile is set for
// ChangeModified, Err for ChangeInvalid.
type Change struct {
	Kind    ChangeKind
	File    string
	Profile *profile.Profile
	Err     error
}

// Watcher monitors a directory for profile file changes.
type Watcher struct {
	Dir     string
	Changes <-chan Change // Read-only external channel

	changes chan Change // Internal write channel
	stop    chan struct{}
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// New creates a watcher for dir. Call Start to begin receiving changes.
func New(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	return &Watcher{
		Dir:     dir,
		Changes: ch,
		changes: ch,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start begins watching the directory.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	close(w.stop)
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: track last event time per file.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(Debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !profile.IsProfile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[event.Name] = time.Now()
			}

		case now := <-ticker.C:
			for file, t := range pending {
				if now.Sub(t) >= Debounce {
					delete(pending, file)
					if !w.emit(classify(file)) {
						return
					}
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

// emit delivers c unless the watcher is stopping.
func (w *Watcher) emit(c Change) bool {
	select {
	case w.changes <- c:
		return true
	case <-w.stop:
		return false
	}
}

func classify(file string) Change {
	p, err := profile.Load(file)
	switch {
	case err == nil:
		return Change{Kind: ChangeModified, File: file, Profile: p}
	case errors.Is(err, os.ErrNotExist):
		return Change{Kind: ChangeRemoved, File: file}
	default:
		return Change{Kind: ChangeInvalid, File: file, Err: err}
	}
}
