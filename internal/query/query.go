// Package query provides read-only filters over the activity collection.
// Every call loads a fresh snapshot from the store; nothing is cached, so
// each result reflects the store state at call time.
package query

import (
	"context"

	"fieldlog/internal/core"
	"fieldlog/internal/store"
)

type Engine struct {
	store store.Store
}

func New(s store.Store) *Engine {
	return &Engine{store: s}
}

// All returns the full activity collection.
func (e *Engine) All(ctx context.Context) []core.Activity {
	return store.LoadList[core.Activity](ctx, e.store, store.KeyActivities)
}

// ByDriver returns the activities recorded for driverID whose date falls in
// the inclusive interval [from, to]. Empty bounds leave that side open.
func (e *Engine) ByDriver(ctx context.Context, driverID, from, to string) []core.Activity {
	return e.filter(ctx, func(a core.Activity) bool {
		return a.DriverID == driverID && core.InRange(a.Date, from, to)
	})
}

// ByVehicle is the vehicle-side counterpart of ByDriver.
func (e *Engine) ByVehicle(ctx context.Context, vehicleID, from, to string) []core.Activity {
	return e.filter(ctx, func(a core.Activity) bool {
		return a.VehicleID == vehicleID && core.InRange(a.Date, from, to)
	})
}

// ByPeriod returns every activity in the inclusive interval [from, to]
// regardless of driver or vehicle.
func (e *Engine) ByPeriod(ctx context.Context, from, to string) []core.Activity {
	return e.filter(ctx, func(a core.Activity) bool {
		return core.InRange(a.Date, from, to)
	})
}

// LastByDriver returns the activity with the maximum date for driverID.
// Among equal dates the earliest-recorded one wins.
func (e *Engine) LastByDriver(ctx context.Context, driverID string) (core.Activity, bool) {
	return e.last(ctx, func(a core.Activity) bool { return a.DriverID == driverID })
}

// LastByVehicle is the vehicle-side counterpart of LastByDriver.
func (e *Engine) LastByVehicle(ctx context.Context, vehicleID string) (core.Activity, bool) {
	return e.last(ctx, func(a core.Activity) bool { return a.VehicleID == vehicleID })
}

func (e *Engine) filter(ctx context.Context, keep func(core.Activity) bool) []core.Activity {
	var out []core.Activity
	for _, a := range e.All(ctx) {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func (e *Engine) last(ctx context.Context, keep func(core.Activity) bool) (core.Activity, bool) {
	var best core.Activity
	found := false
	for _, a := range e.All(ctx) {
		if !keep(a) {
			continue
		}
		if !found || a.Date > best.Date {
			best = a
			found = true
		}
	}
	return best, found
}
