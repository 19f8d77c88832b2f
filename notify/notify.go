// Package notify is the user-facing notification boundary. Services raise
// at most one notification per failed operation through a Notifier; how it
// is displayed (console, desktop toast) is up to the implementation.
package notify

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Level classifies a notification for display purposes.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a single user-visible message.
type Notification struct {
	ID      string    `json:"id"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// New builds a Notification with a fresh ID.
func New(level Level, message string) Notification {
	return Notification{
		ID:      uuid.New().String(),
		Level:   level,
		Message: message,
		Time:    time.Now(),
	}
}

// Notifier receives user-visible notifications.
type Notifier interface {
	Success(message string)
	Info(message string)
	Warning(message string)
	Error(message string)
}

// ConsoleNotifier writes notifications through a zerolog logger. It is the
// default Notifier for terminal use.
type ConsoleNotifier struct {
	log zerolog.Logger
}

var _ Notifier = (*ConsoleNotifier)(nil)

// NewConsoleNotifier creates a ConsoleNotifier writing to the given logger.
func NewConsoleNotifier(log zerolog.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{log: log}
}

func (n *ConsoleNotifier) Success(message string) {
	n.log.Info().Str("level", string(LevelSuccess)).Msg(message)
}

func (n *ConsoleNotifier) Info(message string) {
	n.log.Info().Str("level", string(LevelInfo)).Msg(message)
}

func (n *ConsoleNotifier) Warning(message string) {
	n.log.Warn().Str("level", string(LevelWarning)).Msg(message)
}

func (n *ConsoleNotifier) Error(message string) {
	n.log.Error().Str("level", string(LevelError)).Msg(message)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

var _ Notifier = NopNotifier{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Info(string)    {}
func (NopNotifier) Warning(string) {}
func (NopNotifier) Error(string)   {}
