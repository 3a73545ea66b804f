// Package terms implements the one-time consent checkpoint that blocks form
// interaction until the user accepts the terms and conditions. Acceptance is
// persisted and never expires: once recorded on a device, the prompt is
// skipped on every later session.
package terms

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-regform/pkg/kvstore"
)

// StorageKey is the persisted flag name. It matches the record written by
// earlier releases so existing acceptances keep working.
const StorageKey = "termsAccepted"

const acceptedValue = "true"

// Gate tracks terms acceptance through a kvstore.Store.
type Gate struct {
	store kvstore.Store
}

// NewGate wires a Gate to the supplied store.
func NewGate(store kvstore.Store) (*Gate, error) {
	if store == nil {
		return nil, errors.New("terms: store is nil")
	}
	return &Gate{store: store}, nil
}

// Accepted reports whether acceptance was previously recorded. Storage errors
// are treated as "not accepted" so a broken store re-prompts rather than
// skipping consent.
func (g *Gate) Accepted() bool {
	value, ok, err := g.store.Get(StorageKey)
	if err != nil || !ok {
		return false
	}
	return value == acceptedValue
}

// Accept records acceptance persistently. There is no revoke operation.
func (g *Gate) Accept() error {
	if err := g.store.Set(StorageKey, acceptedValue); err != nil {
		return fmt.Errorf("terms: record acceptance: %w", err)
	}
	return nil
}
