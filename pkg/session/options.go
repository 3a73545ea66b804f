package session

import (
	"github.com/goliatone/go-regform/pkg/visibility"
	"github.com/rs/zerolog"
)

// Option customises a Session.
type Option func(*Session)

// WithRoomName sets the external session identifier embedded into the
// submission payload as `room_name` (read from the page query string in the
// original client).
func WithRoomName(room string) Option {
	return func(s *Session) {
		s.roomName = room
	}
}

// WithLanguage overrides the initial language. When omitted, the config's
// default language wins once loaded.
func WithLanguage(lang string) Option {
	return func(s *Session) {
		s.language = lang
	}
}

// WithNotifier routes notifications to a custom sink instead of the logger.
func WithNotifier(n Notifier) Option {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithVisibilityEvaluator replaces the default ShowWhen equality evaluator.
func WithVisibilityEvaluator(eval visibility.Evaluator) Option {
	return func(s *Session) {
		if eval != nil {
			s.visibility = eval
		}
	}
}

// WithLogger injects a structured logger; the default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}
