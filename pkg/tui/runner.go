// Package tui walks a registration session through an interactive terminal
// flow: terms acceptance, language selection, per-field entry with live
// conditional visibility, and submission with the post-submit redirect
// printed instead of followed.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-regform/pkg/formconfig"
	"github.com/goliatone/go-regform/pkg/geo"
	"github.com/goliatone/go-regform/pkg/session"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Option customises the runner.
type Option func(*Runner)

// WithDriver replaces the default survey-backed prompt driver.
func WithDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTermsText sets the terms-and-conditions text shown before the
// acceptance prompt.
func WithTermsText(text string) Option {
	return func(r *Runner) {
		r.termsText = text
	}
}

// Runner drives one session end to end.
type Runner struct {
	session   *session.Session
	driver    PromptDriver
	termsText string
}

// NewRunner constructs a Runner for the supplied session.
func NewRunner(s *session.Session, options ...Option) (*Runner, error) {
	if s == nil {
		return nil, errors.New("tui: session is nil")
	}
	r := &Runner{
		session: s,
		driver:  newSurveyDriver(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Run executes the full flow and returns the redirect destination on
// success.
func (r *Runner) Run(ctx context.Context) (string, error) {
	if ctx == nil {
		return "", errors.New("tui: context is required")
	}

	if err := r.session.Start(ctx); err != nil {
		return "", err
	}

	if r.session.Phase() == session.PhaseAwaitingTerms {
		if err := r.promptTerms(ctx); err != nil {
			return "", err
		}
	}

	if r.session.GeoStatus() != geo.StatusSuccess {
		_ = r.driver.Info(ctx, "Location access is required.")
		return "", ErrLocationRequired
	}

	if err := r.promptLanguage(ctx); err != nil {
		return "", err
	}

	bundle, ok := r.session.Bundle()
	if !ok {
		return "", errors.New("tui: no translation bundle available")
	}
	_ = r.driver.Info(ctx, bundle.PageTitle)
	_ = r.driver.Info(ctx, bundle.PageSubtitle)

	for {
		if err := r.collectFields(ctx, bundle); err != nil {
			return "", err
		}

		destination, err := r.session.Submit(ctx)
		if err == nil {
			return destination, nil
		}

		var fieldErr *validation.FieldError
		if errors.As(err, &fieldErr) {
			_ = r.driver.Info(ctx, fieldErr.Message)
			continue
		}

		retry, confirmErr := r.driver.Confirm(ctx, ConfirmConfig{
			Message: "Failed to submit form. Try again?",
			Default: true,
		})
		if confirmErr != nil {
			return "", confirmErr
		}
		if !retry {
			return "", err
		}
	}
}

func (r *Runner) promptTerms(ctx context.Context) error {
	if r.termsText != "" {
		if err := r.driver.Info(ctx, r.termsText); err != nil {
			return err
		}
	}
	accepted, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: "I have read and accept the terms and conditions.",
	})
	if err != nil {
		return err
	}
	if !accepted {
		return ErrTermsDeclined
	}
	return r.session.AcceptTerms(ctx)
}

func (r *Runner) promptLanguage(ctx context.Context) error {
	cfg := r.session.Config()
	if cfg == nil {
		return errors.New("tui: config not loaded")
	}
	languages := cfg.Languages()
	if len(languages) < 2 {
		return nil
	}

	defaultIndex := 0
	for i, lang := range languages {
		if lang == r.session.Language() {
			defaultIndex = i
			break
		}
	}

	choice, err := r.driver.Select(ctx, SelectConfig{
		Message:      "Language",
		Options:      languages,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return err
	}
	if choice >= 0 && choice < len(languages) {
		r.session.SetLanguage(languages[choice])
	}
	return nil
}

// collectFields walks the config's fields in order. Visibility is evaluated
// live against the values collected so far, so a controlling field's answer
// decides whether its dependents prompt at all.
func (r *Runner) collectFields(ctx context.Context, bundle formconfig.Translation) error {
	cfg := r.session.Config()
	if cfg == nil {
		return errors.New("tui: config not loaded")
	}

	for _, field := range cfg.Fields {
		if !r.session.Visible(field) {
			continue
		}
		text, ok := bundle.Fields[field.ID]
		if !ok {
			continue
		}

		value, err := r.promptField(ctx, field, text)
		if err != nil {
			return err
		}
		if err := r.session.SetValue(field.ID, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) promptField(ctx context.Context, field formconfig.FieldSpec, text formconfig.FieldText) (string, error) {
	label := text.Label
	if label == "" {
		label = field.ID
	}
	if field.Required {
		label += " *"
	}

	if field.Type == formconfig.FieldTypeSelect && len(text.Options) > 0 {
		options := make([]string, 0, len(text.Options))
		defaultIndex := 0
		current := r.session.Value(field.ID)
		for i, option := range text.Options {
			options = append(options, option.Label)
			if option.Value == current {
				defaultIndex = i
			}
		}
		choice, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: defaultIndex,
			Help:         text.Placeholder,
		})
		if err != nil {
			return "", err
		}
		if choice < 0 || choice >= len(text.Options) {
			return "", fmt.Errorf("tui: select choice out of range for %q", field.ID)
		}
		return text.Options[choice].Value, nil
	}

	return r.driver.Input(ctx, InputConfig{
		Message: label,
		Default: r.session.Value(field.ID),
		Help:    text.Placeholder,
		Validator: func(value string) error {
			if err := validation.Field(field, value); err != nil {
				return errors.New(err.Message)
			}
			return nil
		},
	})
}
