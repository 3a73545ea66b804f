// Package geo wraps device coordinate acquisition and reverse geocoding into
// a single two-phase lookup. Phase one acquires coordinates; any failure
// resolves the whole lookup to denied without attempting phase two. Phase two
// reverse-geocodes a postal code with a bounded timeout and degrades to a
// sentinel value on any failure, so only the coordinates are a hard
// requirement.
package geo

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog"
)

// StatusFunc observes resolver phase changes.
type StatusFunc func(Status)

// Resolver performs the two-phase lookup. It runs at most once per session
// and is never restarted automatically; callers decide when to invoke it
// (after the terms gate resolves, so the device permission prompt never
// precedes consent).
type Resolver struct {
	provider CoordinateProvider
	geocoder ReverseGeocoder
	onStatus StatusFunc
	logger   zerolog.Logger
}

// ResolverOption customises the resolver.
type ResolverOption func(*Resolver)

// WithStatusFunc registers a phase-change observer.
func WithStatusFunc(fn StatusFunc) ResolverOption {
	return func(r *Resolver) {
		r.onStatus = fn
	}
}

// WithLogger injects a structured logger; the default discards everything.
func WithLogger(logger zerolog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver constructs a Resolver from a coordinate provider and a reverse
// geocoder.
func NewResolver(provider CoordinateProvider, geocoder ReverseGeocoder, options ...ResolverOption) (*Resolver, error) {
	if provider == nil {
		return nil, errors.New("geo: coordinate provider is nil")
	}
	if geocoder == nil {
		return nil, errors.New("geo: reverse geocoder is nil")
	}
	r := &Resolver{
		provider: provider,
		geocoder: geocoder,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Resolve runs both phases and returns the outcome. The error return is
// reserved for a nil receiver or cancelled context; a permission denial is a
// normal Result with StatusDenied, and a failed postal lookup still resolves
// to StatusSuccess with the PincodeUnavailable sentinel.
func (r *Resolver) Resolve(ctx context.Context) (Result, error) {
	if r == nil {
		return Result{}, errors.New("geo: resolver is nil")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	r.setStatus(StatusPending)

	coords, err := r.provider.Coordinates(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("geo: coordinate acquisition failed")
		r.setStatus(StatusDenied)
		return Result{Status: StatusDenied}, nil
	}

	r.setStatus(StatusFetchingPincode)

	pincode := r.lookupPincode(ctx, coords)

	result := Result{
		Status:    StatusSuccess,
		Latitude:  strconv.FormatFloat(coords.Latitude, 'f', -1, 64),
		Longitude: strconv.FormatFloat(coords.Longitude, 'f', -1, 64),
		Pincode:   pincode,
	}
	r.setStatus(StatusSuccess)
	return result, nil
}

func (r *Resolver) lookupPincode(ctx context.Context, coords Coordinates) string {
	lookupCtx, cancel := context.WithTimeout(ctx, ReverseGeocodeTimeout)
	defer cancel()

	pincode, err := r.geocoder.Pincode(lookupCtx, coords)
	if err != nil {
		r.logger.Warn().Err(err).Msg("geo: pincode lookup failed")
		return PincodeUnavailable
	}
	if pincode == "" {
		return PincodeUnavailable
	}
	return pincode
}

func (r *Resolver) setStatus(status Status) {
	if r.onStatus != nil {
		r.onStatus(status)
	}
}
