package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/formconfig"
	"github.com/goliatone/go-regform/pkg/geo"
	"github.com/goliatone/go-regform/pkg/session"
	"github.com/goliatone/go-regform/pkg/submit"
)

type scriptDriver struct {
	t *testing.T

	inputs   []string
	confirms []bool
	selects  []int
	infos    []string
}

func (d *scriptDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		d.t.Fatalf("unexpected input prompt: %q", cfg.Message)
	}
	value := d.inputs[0]
	d.inputs = d.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(value); err != nil {
			return "", err
		}
	}
	return value, nil
}

func (d *scriptDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		d.t.Fatalf("unexpected confirm prompt: %q", cfg.Message)
	}
	value := d.confirms[0]
	d.confirms = d.confirms[1:]
	return value, nil
}

func (d *scriptDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		d.t.Fatalf("unexpected select prompt: %q", cfg.Message)
	}
	choice := d.selects[0]
	d.selects = d.selects[1:]
	return choice, nil
}

func (d *scriptDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

type runnerLoader struct {
	cfg *formconfig.FormConfig
}

func (l runnerLoader) Load(context.Context, formconfig.Source) (*formconfig.FormConfig, error) {
	return l.cfg, nil
}

type runnerGate struct {
	accepted bool
}

func (g *runnerGate) Accepted() bool { return g.accepted }
func (g *runnerGate) Accept() error  { g.accepted = true; return nil }

type runnerDrafts struct{}

func (runnerDrafts) Load(*formconfig.FormConfig) map[string]string { return map[string]string{} }
func (runnerDrafts) Save(map[string]string) error                  { return nil }

type runnerResolver struct {
	result geo.Result
}

func (r runnerResolver) Resolve(context.Context) (geo.Result, error) { return r.result, nil }

type runnerGateway struct {
	resp   submit.Response
	err    error
	record map[string]string
}

func (g *runnerGateway) Submit(_ context.Context, _ string, record map[string]string) (submit.Response, error) {
	g.record = record
	if g.err != nil {
		err := g.err
		g.err = nil
		return submit.Response{}, err
	}
	return g.resp, nil
}

func runnerConfig() *formconfig.FormConfig {
	return &formconfig.FormConfig{
		SubmitEndpoint:  "https://api.example.com/register",
		RedirectURL:     "https://example.com/thanks",
		DefaultLanguage: "en",
		Fields: []formconfig.FieldSpec{
			{ID: "name", Type: formconfig.FieldTypeText, Required: true},
			{ID: "gender", Type: formconfig.FieldTypeSelect},
			{ID: "gender_other", Type: formconfig.FieldTypeText, ShowWhen: &formconfig.ShowWhen{FieldID: "gender", HasValue: "other"}},
		},
		Translations: map[string]formconfig.Translation{
			"en": {
				PageTitle:    "Register",
				PageSubtitle: "Takes a minute",
				Fields: map[string]formconfig.FieldText{
					"name":         {Label: "Name"},
					"gender":       {Label: "Gender", Options: []formconfig.Option{{Value: "female", Label: "Female"}, {Value: "other", Label: "Other"}}},
					"gender_other": {Label: "Please specify"},
				},
			},
		},
	}
}

func newRunnerSession(t *testing.T, cfg *formconfig.FormConfig, result geo.Result, gateway *runnerGateway) *session.Session {
	t.Helper()
	s, err := session.New(
		runnerLoader{cfg: cfg},
		formconfig.SourceFromFile("form.json"),
		&runnerGate{},
		runnerDrafts{},
		runnerResolver{result: result},
		gateway,
		session.WithRoomName("demo-42"),
	)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func successGeo() geo.Result {
	return geo.Result{Status: geo.StatusSuccess, Latitude: "12.9", Longitude: "77.5", Pincode: "560001"}
}

func TestRunner_FullFlow(t *testing.T) {
	gateway := &runnerGateway{resp: submit.Response{URL: "https://next.example.com/welcome"}}
	s := newRunnerSession(t, runnerConfig(), successGeo(), gateway)

	driver := &scriptDriver{
		t:        t,
		confirms: []bool{true},     // accept terms
		inputs:   []string{"Asha"}, // name
		selects:  []int{0},         // gender: Female
	}
	runner, err := NewRunner(s, WithDriver(driver), WithTermsText("Be nice."))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	destination, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if destination != "https://next.example.com/welcome" {
		t.Fatalf("unexpected destination: %q", destination)
	}

	if gateway.record["name"] != "Asha" || gateway.record["gender"] != "female" {
		t.Fatalf("unexpected record: %v", gateway.record)
	}
	if gateway.record["room_name"] != "demo-42" {
		t.Fatalf("room_name missing: %v", gateway.record)
	}
	// gender stayed Female, so the dependent field never prompted.
	if _, dependent := gateway.record["gender_other"]; dependent {
		t.Fatalf("hidden field should not be collected: %v", gateway.record)
	}

	want := []string{"Be nice.", "Register", "Takes a minute"}
	if diff := cmp.Diff(want, driver.infos); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
}

func TestRunner_DependentFieldPrompts(t *testing.T) {
	gateway := &runnerGateway{}
	s := newRunnerSession(t, runnerConfig(), successGeo(), gateway)

	driver := &scriptDriver{
		t:        t,
		confirms: []bool{true},
		inputs:   []string{"Asha", "prefer not to say"},
		selects:  []int{1}, // gender: Other
	}
	runner, _ := NewRunner(s, WithDriver(driver))

	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if gateway.record["gender_other"] != "prefer not to say" {
		t.Fatalf("dependent field not collected: %v", gateway.record)
	}
}

func TestRunner_TermsDeclined(t *testing.T) {
	s := newRunnerSession(t, runnerConfig(), successGeo(), &runnerGateway{})
	driver := &scriptDriver{t: t, confirms: []bool{false}}
	runner, _ := NewRunner(s, WithDriver(driver))

	if _, err := runner.Run(context.Background()); !errors.Is(err, ErrTermsDeclined) {
		t.Fatalf("expected ErrTermsDeclined, got %v", err)
	}
}

func TestRunner_LocationDenied(t *testing.T) {
	s := newRunnerSession(t, runnerConfig(), geo.Result{Status: geo.StatusDenied}, &runnerGateway{})
	driver := &scriptDriver{t: t, confirms: []bool{true}}
	runner, _ := NewRunner(s, WithDriver(driver))

	if _, err := runner.Run(context.Background()); !errors.Is(err, ErrLocationRequired) {
		t.Fatalf("expected ErrLocationRequired, got %v", err)
	}

	found := false
	for _, msg := range driver.infos {
		if msg == "Location access is required." {
			found = true
		}
	}
	if !found {
		t.Fatalf("denial message missing: %v", driver.infos)
	}
}

func TestRunner_SubmitRetry(t *testing.T) {
	gateway := &runnerGateway{err: errors.New("backend down")}
	s := newRunnerSession(t, runnerConfig(), successGeo(), gateway)

	driver := &scriptDriver{
		t:        t,
		confirms: []bool{true, true}, // accept terms, retry after failure
		inputs:   []string{"Asha", "Asha"},
		selects:  []int{0, 0},
	}
	runner, _ := NewRunner(s, WithDriver(driver))

	destination, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if destination != "https://example.com/thanks" {
		t.Fatalf("config redirect expected, got %q", destination)
	}
}

func TestRunner_SubmitRetryDeclined(t *testing.T) {
	gateway := &runnerGateway{err: errors.New("backend down")}
	s := newRunnerSession(t, runnerConfig(), successGeo(), gateway)

	driver := &scriptDriver{
		t:        t,
		confirms: []bool{true, false},
		inputs:   []string{"Asha"},
		selects:  []int{0},
	}
	runner, _ := NewRunner(s, WithDriver(driver))

	if _, err := runner.Run(context.Background()); err == nil {
		t.Fatalf("declined retry should surface the submit error")
	}
}

func TestNewRunner_NilSession(t *testing.T) {
	if _, err := NewRunner(nil); err == nil {
		t.Fatalf("expected error for nil session")
	}
}
