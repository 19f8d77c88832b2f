package storage

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Event describes an externally-observed change to a storage slot.
type Event struct {
	Key     Key
	Removed bool // the slot was deleted rather than written
}

// ChangeNotifier delivers slot-change events originating outside the local
// Store. The session layer consumes this to keep concurrent processes of
// the same profile consistent.
type ChangeNotifier interface {
	Events() <-chan Event
	Close() error
}

// Watcher watches the store's profile directory with fsnotify and emits an
// Event per externally-mutated slot. Mutations made through the local
// Store are suppressed; the watcher reports what other processes do, the
// same way a browser tab only hears storage events raised by other tabs.
type Watcher struct {
	store   *Store
	fsw     *fsnotify.Watcher
	events  chan Event
	log     zerolog.Logger
	closeMu sync.Mutex
	closed  bool
	done    chan struct{}
}

// NewWatcher starts watching the store's directory. The caller owns the
// returned Watcher and must Close it.
func NewWatcher(store *Store, log zerolog.Logger) (*Watcher, error) {
	if !store.Available() {
		return nil, errors.New("[NewWatcher] store is unavailable")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "[NewWatcher] fsnotify.NewWatcher")
	}
	if err := fsw.Add(store.Dir()); err != nil {
		fsw.Close()
		return nil, errors.Wrap(err, "[NewWatcher] watch dir")
	}

	w := &Watcher{
		store:  store,
		fsw:    fsw,
		events: make(chan Event, 16),
		log:    log,
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

var _ ChangeNotifier = (*Watcher)(nil)

// Events returns the external change stream. The channel closes when the
// watcher is closed.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Close stops watching and closes the event channel.
func (w *Watcher) Close() error {
	w.closeMu.Lock()
	defer w.closeMu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.events)

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("storage watcher error")
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	key, ok := keyForFilename(filepath.Base(ev.Name))
	if !ok {
		return
	}
	if w.store.consumeSelfWrite(key) {
		return
	}

	var out Event
	switch {
	case ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename):
		out = Event{Key: key, Removed: true}
	case ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write):
		out = Event{Key: key}
	default:
		return
	}

	select {
	case w.events <- out:
	default:
		w.log.Warn().Str("key", string(key)).Msg("storage watcher dropping event, consumer too slow")
	}
}

func keyForFilename(name string) (Key, bool) {
	base := strings.TrimSuffix(name, ".json")
	if base == name {
		return "", false
	}
	for _, key := range Keys {
		if string(key) == base {
			return key, true
		}
	}
	return "", false
}
