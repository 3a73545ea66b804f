package tui

import "errors"

var (
	// ErrAborted is returned when the user interrupts a prompt.
	ErrAborted = errors.New("tui: aborted")

	// ErrTermsDeclined is returned when the user refuses the terms gate; the
	// form never renders.
	ErrTermsDeclined = errors.New("tui: terms declined")

	// ErrLocationRequired is returned when geolocation was denied: the form
	// stays visible but disabled, so an interactive session cannot proceed.
	ErrLocationRequired = errors.New("tui: location access is required")
)
