// Package store defines the persistence port for fieldlog collections.
//
// A Store is a small key-value container: each collection (drivers,
// vehicles, activities) is persisted whole, as one JSON array under a fixed
// key. There is no partial update and no cross-collection transaction; a
// save fully replaces the prior payload for that key.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Fixed collection keys. The export document carries the schema version;
// the keys themselves are not versioned.
const (
	KeyDrivers    = "fieldlog.drivers"
	KeyVehicles   = "fieldlog.vehicles"
	KeyActivities = "fieldlog.activities"
)

// Store persists raw collection payloads. Load returns (nil, nil) when the
// key has never been saved. Implementations are used from a single logical
// actor at a time; they guard their own internals but offer no cross-call
// atomicity.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}

// LoadList reads the collection under key and decodes it as a JSON array of
// T. An absent key, a storage failure, or an unparsable payload all load as
// the empty list: read errors are recovered locally and logged, never
// surfaced to the caller.
func LoadList[T any](ctx context.Context, s Store, key string) []T {
	payload, err := s.Load(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "Collection load failed, using empty list",
			"key", key, "error", err)
		return nil
	}
	if len(payload) == 0 {
		return nil
	}
	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		slog.WarnContext(ctx, "Collection payload unparsable, using empty list",
			"key", key, "error", err)
		return nil
	}
	return items
}

// LoadListStrict decodes like LoadList but surfaces a storage failure to
// the caller instead of degrading to the empty list. An unparsable payload
// still loads as empty; only the backend error path is strict. Snapshot
// export uses this so a broken backend cannot pass for an empty dataset.
func LoadListStrict[T any](ctx context.Context, s Store, key string) ([]T, error) {
	payload, err := s.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		slog.WarnContext(ctx, "Collection payload unparsable, using empty list",
			"key", key, "error", err)
		return nil, nil
	}
	return items, nil
}

// SaveList encodes items as a JSON array and fully replaces the collection
// under key. A nil slice is persisted as the empty array so a later load
// does not confuse it with an absent key.
func SaveList[T any](ctx context.Context, s Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.Save(ctx, key, payload)
}
