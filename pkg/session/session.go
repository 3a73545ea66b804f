// Package session implements the registration form orchestrator: a state
// machine that gates everything behind terms acceptance, joins the concurrent
// config fetch and geolocation resolution, applies conditional visibility and
// per-field validation, and drives submission with a conditional post-submit
// redirect.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-regform/pkg/formconfig"
	"github.com/goliatone/go-regform/pkg/geo"
	"github.com/goliatone/go-regform/pkg/submit"
	"github.com/goliatone/go-regform/pkg/validation"
	"github.com/goliatone/go-regform/pkg/visibility"
	"github.com/rs/zerolog"
)

// RecordKeyRoomName is the fixed key carrying the session identifier in the
// submission payload.
const RecordKeyRoomName = "room_name"

var (
	// ErrTermsNotAccepted is returned when loading is attempted before the
	// terms gate resolves.
	ErrTermsNotAccepted = errors.New("session: terms not accepted")

	// ErrNotReady is returned when an operation requires the Ready phase.
	ErrNotReady = errors.New("session: not ready")

	// ErrDisabled is returned when input arrives while controls are disabled
	// (loading, submitting, or no valid location yet).
	ErrDisabled = errors.New("session: form is disabled")

	// ErrConfigUnavailable marks the fail-closed stall after a config load
	// failure; the session stays in PhaseLoading for good.
	ErrConfigUnavailable = errors.New("session: config unavailable")
)

// TermsGate is the consent checkpoint contract.
type TermsGate interface {
	Accepted() bool
	Accept() error
}

// DraftCache persists in-progress form values.
type DraftCache interface {
	Load(cfg *formconfig.FormConfig) map[string]string
	Save(state map[string]string) error
}

// LocationResolver produces the device location enrichment.
type LocationResolver interface {
	Resolve(ctx context.Context) (geo.Result, error)
}

// Gateway posts the assembled record.
type Gateway interface {
	Submit(ctx context.Context, endpoint string, record map[string]string) (submit.Response, error)
}

// Session is the form orchestrator. It is safe for concurrent use, though the
// intended call pattern is one frontend goroutine plus the internal loading
// join.
type Session struct {
	loader   formconfig.Loader
	source   formconfig.Source
	gate     TermsGate
	drafts   DraftCache
	resolver LocationResolver
	gateway  Gateway

	visibility visibility.Evaluator
	notifier   Notifier
	logger     zerolog.Logger
	roomName   string

	mu        sync.Mutex
	phase     Phase
	cfg       *formconfig.FormConfig
	state     map[string]string
	language  string
	geoStatus geo.Status
	geoResult geo.Result
	redirect  string
}

// New constructs a Session around its collaborators. The session starts in
// PhaseAwaitingTerms; call Start to let a prior acceptance skip the gate.
func New(
	loader formconfig.Loader,
	source formconfig.Source,
	gate TermsGate,
	drafts DraftCache,
	resolver LocationResolver,
	gateway Gateway,
	options ...Option,
) (*Session, error) {
	switch {
	case loader == nil:
		return nil, errors.New("session: config loader is nil")
	case source == nil:
		return nil, errors.New("session: config source is nil")
	case gate == nil:
		return nil, errors.New("session: terms gate is nil")
	case drafts == nil:
		return nil, errors.New("session: draft cache is nil")
	case resolver == nil:
		return nil, errors.New("session: location resolver is nil")
	case gateway == nil:
		return nil, errors.New("session: gateway is nil")
	}

	s := &Session{
		loader:     loader,
		source:     source,
		gate:       gate,
		drafts:     drafts,
		resolver:   resolver,
		gateway:    gateway,
		visibility: visibility.Default(),
		logger:     zerolog.Nop(),
		phase:      PhaseAwaitingTerms,
		state:      make(map[string]string),
		geoStatus:  geo.StatusPending,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.notifier == nil {
		s.notifier = logNotifier{logger: s.logger}
	}
	return s, nil
}

// Start consults the terms gate. A previously recorded acceptance skips
// PhaseAwaitingTerms entirely and proceeds straight to loading; otherwise the
// session stays gated until AcceptTerms.
func (s *Session) Start(ctx context.Context) error {
	if s.gate.Accepted() {
		return s.load(ctx)
	}
	return nil
}

// AcceptTerms records acceptance and begins loading. Recording is
// irreversible for the device.
func (s *Session) AcceptTerms(ctx context.Context) error {
	if err := s.gate.Accept(); err != nil {
		return err
	}
	return s.load(ctx)
}

// load runs the config fetch and geolocation resolution concurrently and
// joins on both before entering Ready. A config failure leaves the session
// stalled in PhaseLoading: fail-closed rather than rendering a half-loaded
// schema.
func (s *Session) load(ctx context.Context) error {
	s.mu.Lock()
	if s.phase != PhaseAwaitingTerms {
		s.mu.Unlock()
		return fmt.Errorf("session: load from phase %q", s.phase)
	}
	s.phase = PhaseLoading
	s.mu.Unlock()

	var (
		cfg    *formconfig.FormConfig
		result geo.Result
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		loaded, err := s.loader.Load(groupCtx, s.source)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
		}
		cfg = loaded
		return nil
	})
	group.Go(func() error {
		resolved, err := s.resolver.Resolve(groupCtx)
		if err != nil {
			return err
		}
		result = resolved
		return nil
	})

	if err := group.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("session: loading failed")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = cfg
	s.geoResult = result
	s.geoStatus = result.Status
	if s.language == "" {
		s.language = cfg.DefaultLanguage
	}
	for _, problem := range cfg.Problems() {
		s.logger.Warn().Str("problem", problem).Msg("session: config gap")
	}

	// Cached and user-entered values take precedence; location keys are
	// otherwise additive.
	s.state = s.drafts.Load(cfg)
	for key, value := range result.Fields() {
		if _, exists := s.state[key]; !exists {
			s.state[key] = value
		}
	}

	if result.Denied() {
		s.notifier.Notify(Notification{
			Severity: SeverityError,
			Title:    "Location required",
			Message:  "Location access is required.",
		})
	}

	s.phase = PhaseReady
	return nil
}

// Phase returns the current orchestrator phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Config returns the loaded config, nil before loading completes.
func (s *Session) Config() *formconfig.FormConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// GeoStatus reports the geolocation resolution status.
func (s *Session) GeoStatus() geo.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.geoStatus
}

// Disabled reports whether form controls should reject input: loading or
// submitting in flight, or no valid location yet. A valid location is a hard
// precondition for interaction, not just for submission.
func (s *Session) Disabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disabledLocked()
}

func (s *Session) disabledLocked() bool {
	if s.phase == PhaseLoading || s.phase == PhaseSubmitting {
		return true
	}
	return s.geoStatus != geo.StatusSuccess
}

// Language returns the active language code.
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// SetLanguage switches the rendering language. It is independent of phase
// and never re-fetches the config or the location.
func (s *Session) SetLanguage(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = lang
}

// Bundle resolves the active Translation.
func (s *Session) Bundle() (formconfig.Translation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg == nil {
		return formconfig.Translation{}, false
	}
	return s.cfg.Bundle(s.language)
}

// Value returns the current value for a field.
func (s *Session) Value(fieldID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state[fieldID]
}

// Values returns a copy of the current form state.
func (s *Session) Values() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// SetValue records user input and synchronously persists the draft. Input is
// rejected while the form is disabled.
func (s *Session) SetValue(fieldID, value string) error {
	s.mu.Lock()
	if s.cfg == nil {
		s.mu.Unlock()
		return ErrNotReady
	}
	if s.disabledLocked() {
		s.mu.Unlock()
		return ErrDisabled
	}
	s.state[fieldID] = value
	snapshot := cloneState(s.state)
	s.mu.Unlock()

	if err := s.drafts.Save(snapshot); err != nil {
		s.logger.Warn().Err(err).Msg("session: persist draft")
	}
	return nil
}

// Visible reports whether a field's ShowWhen condition is currently met.
func (s *Session) Visible(field formconfig.FieldSpec) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibility.Visible(field, s.state)
}

// VisibleFields returns the fields to render, in config order, with hidden
// fields removed.
func (s *Session) VisibleFields() []formconfig.FieldSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg == nil {
		return nil
	}
	var fields []formconfig.FieldSpec
	for _, field := range s.cfg.Fields {
		if s.visibility.Visible(field, s.state) {
			fields = append(fields, field)
		}
	}
	return fields
}

// Validate checks every visible field in config order and returns the first
// failure. Fields whose ShowWhen condition is unmet are exempt entirely.
func (s *Session) Validate() *validation.FieldError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateLocked()
}

func (s *Session) validateLocked() *validation.FieldError {
	if s.cfg == nil {
		return nil
	}
	for _, field := range s.cfg.Fields {
		if !s.visibility.Visible(field, s.state) {
			continue
		}
		if err := validation.Field(field, s.state[field.ID]); err != nil {
			return err
		}
	}
	return nil
}

// Submit validates, assembles the record (form state plus room_name), posts
// it, and resolves the redirect destination. On a rejected or failed POST the
// session surfaces the error and returns to Ready with its state intact so
// the user can retry.
func (s *Session) Submit(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.phase != PhaseReady {
		s.mu.Unlock()
		return "", ErrNotReady
	}
	if s.geoStatus != geo.StatusSuccess {
		s.mu.Unlock()
		return "", ErrDisabled
	}
	if fieldErr := s.validateLocked(); fieldErr != nil {
		s.mu.Unlock()
		s.notifier.Notify(Notification{
			Severity: SeverityError,
			Title:    "Validation Error",
			Message:  fieldErr.Message,
		})
		return "", fieldErr
	}

	record := cloneState(s.state)
	record[RecordKeyRoomName] = s.roomName
	endpoint := s.cfg.SubmitEndpoint
	defaultRedirect := s.cfg.RedirectURL
	s.phase = PhaseSubmitting
	s.mu.Unlock()

	resp, err := s.gateway.Submit(ctx, endpoint, record)
	if err != nil {
		s.mu.Lock()
		s.phase = PhaseSubmitFailed
		s.mu.Unlock()

		s.logger.Warn().Err(err).Msg("session: submission failed")
		s.notifier.Notify(Notification{
			Severity: SeverityError,
			Title:    "Error",
			Message:  "Failed to submit form. Please try again.",
		})

		// Failure is recoverable: back to Ready, state intact.
		s.mu.Lock()
		s.phase = PhaseReady
		s.mu.Unlock()
		return "", err
	}

	destination := submit.RedirectDestination(resp, defaultRedirect)

	s.mu.Lock()
	s.phase = PhaseSubmitSucceeded
	s.redirect = destination
	s.mu.Unlock()

	s.notifier.Notify(Notification{
		Severity: SeveritySuccess,
		Title:    "Success!",
		Message:  "Form submitted successfully",
	})
	return destination, nil
}

// RedirectURL returns the resolved destination after a successful submit.
func (s *Session) RedirectURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redirect
}

func cloneState(state map[string]string) map[string]string {
	out := make(map[string]string, len(state))
	for key, value := range state {
		out[key] = value
	}
	return out
}
