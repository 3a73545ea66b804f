package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	regform "github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/pkg/draft"
	"github.com/goliatone/go-regform/pkg/formconfig"
	"github.com/goliatone/go-regform/pkg/geo"
	"github.com/goliatone/go-regform/pkg/kvstore"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/html"
	"github.com/goliatone/go-regform/pkg/session"
	"github.com/goliatone/go-regform/pkg/submit"
	"github.com/goliatone/go-regform/pkg/terms"
	"github.com/goliatone/go-regform/pkg/tui"
	"github.com/goliatone/go-regform/pkg/visibility"
)

func main() {
	configSource := flag.String("config", "form-config.json", "form config path or URL")
	room := flag.String("room", "", "session identifier embedded in the submission")
	lang := flag.String("lang", "", "initial language code")
	statePath := flag.String("state", ".regform-state.json", "local state file (terms flag and draft)")
	termsPath := flag.String("terms", "", "terms and conditions text file")
	output := flag.String("output", "", "render a static HTML preview to this file instead of running interactively")
	lat := flag.Float64("lat", 0, "device latitude")
	lon := flag.Float64("lon", 0, "device longitude")
	flag.Parse()

	// .env is optional; the environment always wins.
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	latitude, longitude, hasPosition := resolvePosition(*lat, *lon)
	source := resolveConfigSource(*configSource)

	if err := run(logger, source, *room, *lang, *statePath, *termsPath, *output, latitude, longitude, hasPosition); err != nil {
		logger.Error().Err(err).Msg("regform failed")
		os.Exit(1)
	}
}

func run(logger zerolog.Logger, configSource, room, lang, statePath, termsPath, output string, lat, lon float64, hasPosition bool) error {
	ctx := context.Background()

	store, err := kvstore.NewFile(statePath)
	if err != nil {
		return err
	}
	gate, err := terms.NewGate(store)
	if err != nil {
		return err
	}
	drafts, err := draft.NewCache(store, logger)
	if err != nil {
		return err
	}

	var provider geo.CoordinateProvider
	if hasPosition {
		provider = geo.StaticProvider(lat, lon)
	} else {
		provider = geo.UnavailableProvider()
	}
	geocoder := geo.NewGeoapifyClient(os.Getenv("GEOAPIFY_API_KEY"))
	resolver, err := geo.NewResolver(provider, geocoder, geo.WithLogger(logger))
	if err != nil {
		return err
	}

	loader := regform.NewConfigLoader(formconfig.WithHTTPFallback(15 * time.Second))

	if room == "" {
		room = os.Getenv("REGFORM_ROOM")
	}

	if output != "" {
		return renderPreview(ctx, loader, parseSource(configSource), lang, room, output)
	}

	sess, err := session.New(
		loader,
		parseSource(configSource),
		gate,
		drafts,
		resolver,
		submit.NewGateway(),
		session.WithRoomName(room),
		session.WithLanguage(lang),
		session.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	termsText, err := loadTermsText(termsPath)
	if err != nil {
		return err
	}

	runner, err := tui.NewRunner(sess, tui.WithTermsText(termsText))
	if err != nil {
		return err
	}

	destination, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Continue at: %s\n", destination)
	return nil
}

// renderPreview loads the config and writes a static, localized HTML snapshot
// of the form. The terms gate and geolocation are bypassed: this is an
// authoring aid, not the interactive flow.
func renderPreview(ctx context.Context, loader formconfig.Loader, src formconfig.Source, lang, room, output string) error {
	cfg, err := loader.Load(ctx, src)
	if err != nil {
		return err
	}

	if lang == "" {
		lang = cfg.DefaultLanguage
	}

	view, err := render.BuildView(cfg, lang, nil, visibility.Default(), false)
	if err != nil {
		return err
	}

	renderer, err := html.New()
	if err != nil {
		return err
	}
	page, err := renderer.Render(ctx, view, render.RenderOptions{
		HiddenFields: render.MergeHiddenFields(nil, render.RoomNameField(session.RecordKeyRoomName, room)),
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, page, 0o644); err != nil {
		return err
	}
	fmt.Printf("Form written to %s\n", output)
	return nil
}

func parseSource(raw string) formconfig.Source {
	path := strings.TrimSpace(raw)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return formconfig.SourceFromURL(path)
	}
	return formconfig.SourceFromFile(path)
}

func loadTermsText(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read terms file: %w", err)
	}
	return string(data), nil
}

// resolveConfigSource honours an explicit -config flag, then REGFORM_CONFIG,
// then the flag default.
func resolveConfigSource(flagValue string) string {
	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})
	if explicit {
		return flagValue
	}
	if env := os.Getenv("REGFORM_CONFIG"); env != "" {
		return env
	}
	return flagValue
}

// resolvePosition picks coordinates from flags first, then the REGFORM_LAT
// and REGFORM_LON environment variables. The third return is false when no
// position is available, which the session surfaces as a location denial.
func resolvePosition(flagLat, flagLon float64) (float64, float64, bool) {
	fromFlags := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "lat" || f.Name == "lon" {
			fromFlags = true
		}
	})
	if fromFlags {
		return flagLat, flagLon, true
	}
	lat, latErr := strconv.ParseFloat(os.Getenv("REGFORM_LAT"), 64)
	lon, lonErr := strconv.ParseFloat(os.Getenv("REGFORM_LON"), 64)
	if latErr == nil && lonErr == nil {
		return lat, lon, true
	}
	return 0, 0, false
}
