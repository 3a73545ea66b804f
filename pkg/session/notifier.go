package session

import "github.com/rs/zerolog"

// Severity classifies a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a transient user-facing message (a toast in the original
// web client). Validation failures and submission outcomes flow through here.
type Notification struct {
	Severity Severity
	Title    string
	Message  string
}

// Notifier receives notifications from the orchestrator. Frontends render
// them; the default implementation logs them.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(Notification)

// Notify delegates to the underlying function.
func (fn NotifierFunc) Notify(n Notification) {
	fn(n)
}

type logNotifier struct {
	logger zerolog.Logger
}

func (l logNotifier) Notify(n Notification) {
	event := l.logger.Info()
	if n.Severity == SeverityError {
		event = l.logger.Warn()
	}
	event.Str("title", n.Title).Msg(n.Message)
}
