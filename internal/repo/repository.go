// Package repo implements create/update/delete operations over the three
// fieldlog collections. Every operation is a whole-collection
// load→mutate→save cycle against the injected store.
package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fieldlog/internal/core"
	"fieldlog/internal/ident"
	applog "fieldlog/internal/log"
	"fieldlog/internal/store"
)

// ErrNotFound signals that an update/delete target id is absent. It is an
// expected outcome, not a failure of the store.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	store store.Store
}

func New(s store.Store) *Repository {
	return &Repository{store: s}
}

// Drivers returns the driver collection as currently persisted.
func (r *Repository) Drivers(ctx context.Context) []core.Driver {
	return store.LoadList[core.Driver](ctx, r.store, store.KeyDrivers)
}

// Vehicles returns the vehicle collection as currently persisted.
func (r *Repository) Vehicles(ctx context.Context) []core.Vehicle {
	return store.LoadList[core.Vehicle](ctx, r.store, store.KeyVehicles)
}

// Activities returns the activity collection as currently persisted.
func (r *Repository) Activities(ctx context.Context) []core.Activity {
	return store.LoadList[core.Activity](ctx, r.store, store.KeyActivities)
}

// AddDriver creates a driver with a fresh id. The name is trimmed and must
// be non-empty; nothing is written when validation fails.
func (r *Repository) AddDriver(ctx context.Context, name, assignedVehicleID string) (core.Driver, error) {
	d := core.Driver{
		ID:                ident.New(core.DriverPrefix),
		Name:              strings.TrimSpace(name),
		AssignedVehicleID: strings.TrimSpace(assignedVehicleID),
	}
	if err := d.Validate(); err != nil {
		return core.Driver{}, err
	}

	drivers := append(r.Drivers(ctx), d)
	if err := store.SaveList(ctx, r.store, store.KeyDrivers, drivers); err != nil {
		return core.Driver{}, fmt.Errorf("save drivers: %w", err)
	}

	slog.InfoContext(ctx, "Driver created",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldDriverID, d.ID,
		"name", d.Name)
	return d, nil
}

// DriverPatch carries the fields of an update; nil fields are left as they
// are on the stored record.
type DriverPatch struct {
	Name              *string
	AssignedVehicleID *string
}

// UpdateDriver merges patch onto the stored driver and persists the result.
// Returns ErrNotFound when id is absent.
func (r *Repository) UpdateDriver(ctx context.Context, id string, patch DriverPatch) (core.Driver, error) {
	drivers := r.Drivers(ctx)
	idx := -1
	for i := range drivers {
		if drivers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.Driver{}, ErrNotFound
	}

	merged := drivers[idx]
	if patch.Name != nil {
		merged.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.AssignedVehicleID != nil {
		merged.AssignedVehicleID = strings.TrimSpace(*patch.AssignedVehicleID)
	}
	if err := merged.Validate(); err != nil {
		return core.Driver{}, err
	}

	drivers[idx] = merged
	if err := store.SaveList(ctx, r.store, store.KeyDrivers, drivers); err != nil {
		return core.Driver{}, fmt.Errorf("save drivers: %w", err)
	}

	slog.InfoContext(ctx, "Driver updated",
		applog.FieldOperation, applog.OpUpdate,
		applog.FieldDriverID, id)
	return merged, nil
}

// AddVehicle creates a vehicle with a fresh id, trimming the label.
func (r *Repository) AddVehicle(ctx context.Context, label string) (core.Vehicle, error) {
	v := core.Vehicle{
		ID:    ident.New(core.VehiclePrefix),
		Label: strings.TrimSpace(label),
	}
	if err := v.Validate(); err != nil {
		return core.Vehicle{}, err
	}

	vehicles := append(r.Vehicles(ctx), v)
	if err := store.SaveList(ctx, r.store, store.KeyVehicles, vehicles); err != nil {
		return core.Vehicle{}, fmt.Errorf("save vehicles: %w", err)
	}

	slog.InfoContext(ctx, "Vehicle created",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldVehicleID, v.ID,
		"label", v.Label)
	return v, nil
}

// AddActivity creates an activity with a fresh id and appends it. The
// driver/vehicle references are required but not checked against the other
// collections; they are weak references by design.
func (r *Repository) AddActivity(ctx context.Context, a core.Activity) (core.Activity, error) {
	a.ID = ident.New(core.ActivityPrefix)
	a.Location = strings.TrimSpace(a.Location)
	if err := a.Validate(); err != nil {
		return core.Activity{}, err
	}

	activities := append(r.Activities(ctx), a)
	if err := store.SaveList(ctx, r.store, store.KeyActivities, activities); err != nil {
		return core.Activity{}, fmt.Errorf("save activities: %w", err)
	}

	slog.InfoContext(ctx, "Activity created",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldActivityID, a.ID,
		applog.FieldDriverID, a.DriverID,
		applog.FieldVehicleID, a.VehicleID,
		applog.FieldDate, a.Date,
		applog.FieldRevenue, float64(a.Revenue))
	return a, nil
}

// ActivityPatch carries the fields of an activity update; nil fields are
// retained from the stored record.
type ActivityPatch struct {
	DriverID  *string
	VehicleID *string
	Location  *string
	Date      *string
	Revenue   *core.Amount
}

// UpdateActivity merges patch onto the stored activity. The convention for
// a changed driver/vehicle assignment is to record a new activity and keep
// the old one as history; this operation exists for correcting a record in
// place and returns ErrNotFound when id is absent.
func (r *Repository) UpdateActivity(ctx context.Context, id string, patch ActivityPatch) (core.Activity, error) {
	activities := r.Activities(ctx)
	idx := -1
	for i := range activities {
		if activities[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.Activity{}, ErrNotFound
	}

	merged := activities[idx]
	if patch.DriverID != nil {
		merged.DriverID = strings.TrimSpace(*patch.DriverID)
	}
	if patch.VehicleID != nil {
		merged.VehicleID = strings.TrimSpace(*patch.VehicleID)
	}
	if patch.Location != nil {
		merged.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.Date != nil {
		merged.Date = strings.TrimSpace(*patch.Date)
	}
	if patch.Revenue != nil {
		merged.Revenue = *patch.Revenue
	}
	if err := merged.Validate(); err != nil {
		return core.Activity{}, err
	}

	activities[idx] = merged
	if err := store.SaveList(ctx, r.store, store.KeyActivities, activities); err != nil {
		return core.Activity{}, fmt.Errorf("save activities: %w", err)
	}

	slog.InfoContext(ctx, "Activity updated",
		applog.FieldOperation, applog.OpUpdate,
		applog.FieldActivityID, id)
	return merged, nil
}

// DeleteActivity removes the matching record. Deleting an absent id is a
// no-op, not an error.
func (r *Repository) DeleteActivity(ctx context.Context, id string) error {
	activities := r.Activities(ctx)
	kept := activities[:0]
	removed := false
	for _, a := range activities {
		if a.ID == id {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	if !removed {
		return nil
	}

	if err := store.SaveList(ctx, r.store, store.KeyActivities, kept); err != nil {
		return fmt.Errorf("save activities: %w", err)
	}

	slog.InfoContext(ctx, "Activity deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldActivityID, id)
	return nil
}
