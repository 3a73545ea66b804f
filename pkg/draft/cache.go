// Package draft persists in-progress form values so a reload restores what
// the user already typed. The snapshot is written through on every field
// mutation and deliberately survives submission.
package draft

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-regform/pkg/formconfig"
	"github.com/goliatone/go-regform/pkg/kvstore"
	"github.com/rs/zerolog"
)

// StorageKey is the persisted record name, kept stable across releases.
const StorageKey = "formData"

// Cache stores one JSON-serialized FormState snapshot.
type Cache struct {
	store  kvstore.Store
	logger zerolog.Logger
}

// NewCache wires a Cache to the supplied store.
func NewCache(store kvstore.Store, logger zerolog.Logger) (*Cache, error) {
	if store == nil {
		return nil, errors.New("draft: store is nil")
	}
	return &Cache{store: store, logger: logger}, nil
}

// Load returns the last persisted state restricted to fields the supplied
// config declares. Stale keys left behind by a previous config are dropped
// silently; a corrupt snapshot degrades to an empty state rather than failing
// the session.
func (c *Cache) Load(cfg *formconfig.FormConfig) map[string]string {
	state := make(map[string]string)

	raw, ok, err := c.store.Get(StorageKey)
	if err != nil {
		c.logger.Warn().Err(err).Msg("draft: read snapshot")
		return state
	}
	if !ok || raw == "" {
		return state
	}

	cached := make(map[string]string)
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		c.logger.Warn().Err(err).Msg("draft: corrupt snapshot discarded")
		return state
	}

	if cfg == nil {
		return state
	}
	for _, field := range cfg.Fields {
		if value, ok := cached[field.ID]; ok {
			state[field.ID] = value
		}
	}
	return state
}

// Save overwrites the persisted snapshot with the supplied state.
func (c *Cache) Save(state map[string]string) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("draft: encode snapshot: %w", err)
	}
	if err := c.store.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("draft: write snapshot: %w", err)
	}
	return nil
}
