package query

import (
	"context"
	"testing"

	"fieldlog/internal/core"
	"fieldlog/internal/store"
	"fieldlog/internal/store/memory"
)

func seed(t *testing.T, activities []core.Activity) *Engine {
	t.Helper()
	s := memory.New()
	if err := store.SaveList(context.Background(), s, store.KeyActivities, activities); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return New(s)
}

var fixtures = []core.Activity{
	{ID: "act-1", DriverID: "drv-1", VehicleID: "veh-1", Location: "Accra", Date: "2026-01-10", Revenue: 150},
	{ID: "act-2", DriverID: "drv-1", VehicleID: "veh-2", Location: "Kumasi", Date: "2026-01-12", Revenue: 200},
	{ID: "act-3", DriverID: "drv-2", VehicleID: "veh-1", Location: "Tema", Date: "2026-01-11", Revenue: 80},
}

func ids(activities []core.Activity) []string {
	out := make([]string, len(activities))
	for i, a := range activities {
		out[i] = a.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestByDriver(t *testing.T) {
	e := seed(t, fixtures)
	ctx := context.Background()

	cases := []struct {
		name     string
		driver   string
		from, to string
		want     []string
	}{
		{"no bounds", "drv-1", "", "", []string{"act-1", "act-2"}},
		{"closed range", "drv-1", "2026-01-10", "2026-01-11", []string{"act-1"}},
		{"inclusive upper", "drv-1", "2026-01-10", "2026-01-12", []string{"act-1", "act-2"}},
		{"unknown driver", "drv-9", "", "", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(e.ByDriver(ctx, tc.driver, tc.from, tc.to))
			if !equal(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestByVehicle(t *testing.T) {
	e := seed(t, fixtures)
	got := ids(e.ByVehicle(context.Background(), "veh-1", "", ""))
	if !equal(got, []string{"act-1", "act-3"}) {
		t.Fatalf("got %v", got)
	}
}

func TestByPeriod(t *testing.T) {
	e := seed(t, fixtures)
	got := ids(e.ByPeriod(context.Background(), "2026-01-10", "2026-01-11"))
	if !equal(got, []string{"act-1", "act-3"}) {
		t.Fatalf("got %v", got)
	}
}

func TestLastByDriver(t *testing.T) {
	e := seed(t, fixtures)
	ctx := context.Background()

	last, ok := e.LastByDriver(ctx, "drv-1")
	if !ok || last.ID != "act-2" {
		t.Fatalf("expected act-2, got %+v ok=%v", last, ok)
	}
	if _, ok := e.LastByDriver(ctx, "drv-9"); ok {
		t.Fatalf("unknown driver should report none")
	}
}

func TestLastByVehicle(t *testing.T) {
	e := seed(t, fixtures)
	last, ok := e.LastByVehicle(context.Background(), "veh-1")
	if !ok || last.ID != "act-3" {
		t.Fatalf("expected act-3, got %+v ok=%v", last, ok)
	}
}

func TestQueriesSeeFreshState(t *testing.T) {
	s := memory.New()
	e := New(s)
	ctx := context.Background()

	if got := e.ByPeriod(ctx, "", ""); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
	if err := store.SaveList(ctx, s, store.KeyActivities, fixtures); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := e.ByPeriod(ctx, "", ""); len(got) != 3 {
		t.Fatalf("query should reload on each call, got %d", len(got))
	}
}
