// Package notifytest provides a recording Notifier for tests.
package notifytest

import (
	"sync"

	"github.com/fittrack/go-fitness-client/notify"
)

// Recorder is an in-memory Notifier that records every notification it
// receives, in order.
type Recorder struct {
	mu            sync.Mutex
	notifications []notify.Notification
}

var _ notify.Notifier = (*Recorder)(nil)

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Success(message string) { r.record(notify.LevelSuccess, message) }
func (r *Recorder) Info(message string)    { r.record(notify.LevelInfo, message) }
func (r *Recorder) Warning(message string) { r.record(notify.LevelWarning, message) }
func (r *Recorder) Error(message string)   { r.record(notify.LevelError, message) }

func (r *Recorder) record(level notify.Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, notify.New(level, message))
}

// All returns a copy of every recorded notification.
func (r *Recorder) All() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// Messages returns just the message text of every recorded notification.
func (r *Recorder) Messages() []string {
	all := r.All()
	msgs := make([]string, 0, len(all))
	for _, n := range all {
		msgs = append(msgs, n.Message)
	}
	return msgs
}

// CountLevel returns how many notifications of the given level were raised.
func (r *Recorder) CountLevel(level notify.Level) int {
	count := 0
	for _, n := range r.All() {
		if n.Level == level {
			count++
		}
	}
	return count
}

// Reset discards all recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = nil
}
