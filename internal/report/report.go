// Package report computes count and revenue summaries over the activity
// collection. Revenue is coerced to a non-negative number on every read, so
// malformed imported data degrades to 0 instead of failing a report.
//
// The rolling daily/weekly/monthly summaries take the reference instant as
// a parameter rather than reading the ambient clock, which keeps them
// deterministic under test.
package report

import (
	"context"
	"sort"
	"time"

	"fieldlog/internal/core"
	"fieldlog/internal/query"
)

type Engine struct {
	queries *query.Engine
}

func New(q *query.Engine) *Engine {
	return &Engine{queries: q}
}

// Summary is a count plus revenue sum over some slice of the activities.
type Summary struct {
	Count        int     `json:"count"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// DriverTotals is one row of the per-driver report.
type DriverTotals struct {
	DriverID     string  `json:"driverId"`
	Name         string  `json:"name"`
	Count        int     `json:"count"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// VehicleTotals is one row of the per-vehicle report.
type VehicleTotals struct {
	VehicleID    string  `json:"vehicleId"`
	Label        string  `json:"label"`
	Count        int     `json:"count"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// Summarize accumulates count and coerced revenue over the activities
// satisfying keep, in a single pass.
func (e *Engine) Summarize(ctx context.Context, keep func(core.Activity) bool) Summary {
	return summarize(e.queries.All(ctx), keep)
}

// Daily summarizes the activities dated exactly on now's calendar day.
func (e *Engine) Daily(ctx context.Context, now time.Time) Summary {
	today := core.FormatDate(now)
	return e.Summarize(ctx, func(a core.Activity) bool {
		return a.Date == today
	})
}

// Weekly summarizes the activities within the last 7 days of now, inclusive.
func (e *Engine) Weekly(ctx context.Context, now time.Time) Summary {
	return e.withinDays(ctx, now, 7)
}

// Monthly summarizes the activities within the last 30 days of now, inclusive.
func (e *Engine) Monthly(ctx context.Context, now time.Time) Summary {
	return e.withinDays(ctx, now, 30)
}

// withinDays keeps activities whose date is at most n days before now.
// Future-dated records have a negative distance and are kept; records with
// an unparsable date are skipped.
func (e *Engine) withinDays(ctx context.Context, now time.Time, n int) Summary {
	limit := time.Duration(n) * 24 * time.Hour
	return e.Summarize(ctx, func(a core.Activity) bool {
		d, err := time.Parse(core.DateLayout, a.Date)
		if err != nil {
			return false
		}
		return now.Sub(d) <= limit
	})
}

// ByDriverTotals reports one row per known driver, covering the activities
// referencing that driver's id. Rows are ordered by count descending, ties
// broken by name ascending. Drivers with no activities still get a zero row.
func (e *Engine) ByDriverTotals(ctx context.Context, drivers []core.Driver) []DriverTotals {
	activities := e.queries.All(ctx)
	rows := make([]DriverTotals, 0, len(drivers))
	for _, d := range drivers {
		s := summarize(activities, func(a core.Activity) bool {
			return a.DriverID == d.ID
		})
		rows = append(rows, DriverTotals{
			DriverID:     d.ID,
			Name:         d.Name,
			Count:        s.Count,
			TotalRevenue: s.TotalRevenue,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// ByVehicleTotals is the vehicle-side counterpart of ByDriverTotals,
// ordered by count descending then label ascending.
func (e *Engine) ByVehicleTotals(ctx context.Context, vehicles []core.Vehicle) []VehicleTotals {
	activities := e.queries.All(ctx)
	rows := make([]VehicleTotals, 0, len(vehicles))
	for _, v := range vehicles {
		s := summarize(activities, func(a core.Activity) bool {
			return a.VehicleID == v.ID
		})
		rows = append(rows, VehicleTotals{
			VehicleID:    v.ID,
			Label:        v.Label,
			Count:        s.Count,
			TotalRevenue: s.TotalRevenue,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}

// CustomRange summarizes the inclusive interval [from, to]. An inverted
// range is rejected with core.ErrInvalidRange before anything is read.
func (e *Engine) CustomRange(ctx context.Context, from, to string) (Summary, error) {
	if from > to {
		return Summary{}, core.ErrInvalidRange
	}
	s := summarize(e.queries.ByPeriod(ctx, from, to), nil)
	return s, nil
}

// OverallTotals summarizes the entire activity collection.
func (e *Engine) OverallTotals(ctx context.Context) Summary {
	return e.Summarize(ctx, nil)
}

func summarize(activities []core.Activity, keep func(core.Activity) bool) Summary {
	var s Summary
	for _, a := range activities {
		if keep != nil && !keep(a) {
			continue
		}
		s.Count++
		s.TotalRevenue += a.Revenue.Coerced()
	}
	return s
}
