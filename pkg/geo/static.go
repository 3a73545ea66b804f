package geo

import (
	"context"
	"errors"
)

// ErrNoPositionSource is returned by the static provider when no coordinates
// were configured, which resolves the lookup to denied the same way a browser
// permission refusal would.
var ErrNoPositionSource = errors.New("geo: no position source configured")

// StaticProvider returns a CoordinateProvider yielding a fixed position.
// Terminal hosts have no positioning hardware API, so the position arrives
// via configuration.
func StaticProvider(latitude, longitude float64) CoordinateProvider {
	return CoordinateProviderFunc(func(ctx context.Context) (Coordinates, error) {
		if err := ctx.Err(); err != nil {
			return Coordinates{}, err
		}
		return Coordinates{Latitude: latitude, Longitude: longitude}, nil
	})
}

// UnavailableProvider returns a CoordinateProvider that always fails,
// modelling a denied or unsupported positioning source.
func UnavailableProvider() CoordinateProvider {
	return CoordinateProviderFunc(func(ctx context.Context) (Coordinates, error) {
		return Coordinates{}, ErrNoPositionSource
	})
}
