// Package transfer serializes the three collections to a portable snapshot
// document and restores them from one, accepting both the current schema
// and the pre-v2 route-based schema.
package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fieldlog/internal/core"
	applog "fieldlog/internal/log"
	"fieldlog/internal/store"
)

// Version identifies the current snapshot schema.
const Version = 2

// ExportFilename is the fixed base name used when a snapshot is offered as
// a file download.
const ExportFilename = "fieldlog-backup.json"

// ErrInvalidDocument reports an import payload that is not a JSON object.
// Missing or malformed collections inside an otherwise valid document are
// tolerated, not escalated.
var ErrInvalidDocument = errors.New("invalid snapshot document")

// Snapshot is the complete, self-describing export document.
type Snapshot struct {
	Drivers    []core.Driver   `json:"drivers"`
	Vehicles   []core.Vehicle  `json:"vehicles"`
	Activities []core.Activity `json:"activities"`
	ExportedAt string          `json:"exportedAt"`
	Version    int             `json:"version"`
}

// Export reads all three collections and renders them as a pretty-printed
// snapshot document stamped with the given instant. A storage failure fails
// the export: writing out an empty document because the backend was
// unreachable would let a bad snapshot overwrite a good backup.
func Export(ctx context.Context, s store.Store, now time.Time) ([]byte, error) {
	drv, err := store.LoadListStrict[core.Driver](ctx, s, store.KeyDrivers)
	if err != nil {
		return nil, fmt.Errorf("load drivers: %w", err)
	}
	veh, err := store.LoadListStrict[core.Vehicle](ctx, s, store.KeyVehicles)
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}
	act, err := store.LoadListStrict[core.Activity](ctx, s, store.KeyActivities)
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}

	snap := Snapshot{
		Drivers:    orEmpty(drv),
		Vehicles:   orEmpty(veh),
		Activities: orEmpty(act),
		ExportedAt: now.UTC().Format(time.RFC3339),
		Version:    Version,
	}

	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot exported",
		applog.FieldOperation, applog.OpExport,
		"drivers", len(snap.Drivers),
		"vehicles", len(snap.Vehicles),
		"activities", len(snap.Activities))
	return payload, nil
}

// Import parses a snapshot document and fully replaces the store's
// collections with its contents. A payload that is not a JSON object fails
// with ErrInvalidDocument and writes nothing. Collection fields that are
// missing or not arrays default to empty.
//
// When the document has no activities field, the legacy routes field is
// used as the activity list as-is: legacy routeName/cost fields are kept
// under their old names rather than renamed to location/revenue.
func Import(ctx context.Context, s store.Store, data []byte) (Snapshot, error) {
	// Unmarshal treats the literal `null` as a no-op, which would slip past
	// the struct decode below and replace every collection with an empty
	// list. Require an object up front so that payload fails like any other
	// non-object.
	if trimmed := bytes.TrimLeft(data, " \t\r\n"); len(trimmed) == 0 || trimmed[0] != '{' {
		return Snapshot{}, fmt.Errorf("%w: payload is not a JSON object", ErrInvalidDocument)
	}

	var doc struct {
		Drivers    json.RawMessage `json:"drivers"`
		Vehicles   json.RawMessage `json:"vehicles"`
		Activities json.RawMessage `json:"activities"`
		Routes     json.RawMessage `json:"routes"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	snap := Snapshot{
		Drivers:  decodeList[core.Driver](ctx, doc.Drivers, "drivers"),
		Vehicles: decodeList[core.Vehicle](ctx, doc.Vehicles, "vehicles"),
		Version:  Version,
	}
	if doc.Activities != nil {
		snap.Activities = decodeList[core.Activity](ctx, doc.Activities, "activities")
	} else {
		snap.Activities = decodeList[core.Activity](ctx, doc.Routes, "routes")
	}

	if err := store.SaveList(ctx, s, store.KeyDrivers, snap.Drivers); err != nil {
		return Snapshot{}, fmt.Errorf("replace drivers: %w", err)
	}
	if err := store.SaveList(ctx, s, store.KeyVehicles, snap.Vehicles); err != nil {
		return Snapshot{}, fmt.Errorf("replace vehicles: %w", err)
	}
	if err := store.SaveList(ctx, s, store.KeyActivities, snap.Activities); err != nil {
		return Snapshot{}, fmt.Errorf("replace activities: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot imported",
		applog.FieldOperation, applog.OpImport,
		"drivers", len(snap.Drivers),
		"vehicles", len(snap.Vehicles),
		"activities", len(snap.Activities),
		"legacy_routes", doc.Activities == nil && doc.Routes != nil)
	return snap, nil
}

func decodeList[T any](ctx context.Context, raw json.RawMessage, field string) []T {
	if raw == nil {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.WarnContext(ctx, "Snapshot field is not a list, defaulting to empty",
			"field", field, "error", err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
