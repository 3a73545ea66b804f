package geo

import "context"

// Status tracks the resolver's progress through its two phases.
type Status string

const (
	// StatusPending means coordinate acquisition is in flight.
	StatusPending Status = "pending"
	// StatusFetchingPincode means coordinates arrived and the reverse postal
	// lookup is in flight.
	StatusFetchingPincode Status = "fetching_pincode"
	// StatusSuccess means coordinates were obtained; the pincode may still be
	// the "N/A" sentinel.
	StatusSuccess Status = "success"
	// StatusDenied means coordinate acquisition failed (permission denied,
	// unsupported device, timeout).
	StatusDenied Status = "denied"
)

// PincodeUnavailable is substituted when the reverse lookup fails, times out,
// or no credential is configured. Coordinates are the hard requirement; the
// postal code is best effort.
const PincodeUnavailable = "N/A"

// Coordinates is a device position fix.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// CoordinateProvider acquires the device position. Implementations wrap
// whatever positioning source the host platform offers; failures of any kind
// surface as an error and resolve the whole lookup to denied.
type CoordinateProvider interface {
	Coordinates(ctx context.Context) (Coordinates, error)
}

// CoordinateProviderFunc adapts a function into a CoordinateProvider.
type CoordinateProviderFunc func(ctx context.Context) (Coordinates, error)

// Coordinates delegates to the underlying function.
func (fn CoordinateProviderFunc) Coordinates(ctx context.Context) (Coordinates, error) {
	return fn(ctx)
}

// Result is the resolver outcome. Values are stringified the way the
// submission payload expects them.
type Result struct {
	Status    Status
	Latitude  string
	Longitude string
	Pincode   string
}

// Denied reports whether coordinate acquisition failed.
func (r Result) Denied() bool {
	return r.Status == StatusDenied
}

// Fields returns the form-state keys contributed by a successful resolution.
// A denied result contributes nothing.
func (r Result) Fields() map[string]string {
	if r.Status != StatusSuccess {
		return nil
	}
	return map[string]string{
		"latitude":  r.Latitude,
		"longitude": r.Longitude,
		"pincode":   r.Pincode,
	}
}
