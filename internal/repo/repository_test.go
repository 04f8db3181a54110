package repo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fieldlog/internal/core"
	"fieldlog/internal/store/memory"
)

func newRepo() *Repository {
	return New(memory.New())
}

func strp(s string) *string { return &s }

func TestAddDriver(t *testing.T) {
	r := newRepo()
	ctx := context.Background()

	d, err := r.AddDriver(ctx, "  Ama  ", "")
	if err != nil {
		t.Fatalf("add driver: %v", err)
	}
	if d.Name != "Ama" {
		t.Fatalf("name should be trimmed, got %q", d.Name)
	}
	if !strings.HasPrefix(d.ID, "drv-") {
		t.Fatalf("driver id should carry drv- prefix, got %q", d.ID)
	}

	drivers := r.Drivers(ctx)
	if len(drivers) != 1 || drivers[0].ID != d.ID {
		t.Fatalf("driver not persisted: %v", drivers)
	}
}

func TestAddDriverEmptyNameRejected(t *testing.T) {
	r := newRepo()
	ctx := context.Background()

	if _, err := r.AddDriver(ctx, "   ", ""); !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if got := r.Drivers(ctx); len(got) != 0 {
		t.Fatalf("no write should happen on validation failure, got %v", got)
	}
}

func TestUpdateDriverMergesFields(t *testing.T) {
	r := newRepo()
	ctx := context.Background()

	d, _ := r.AddDriver(ctx, "Ama", "veh-1")
	got, err := r.UpdateDriver(ctx, d.ID, DriverPatch{AssignedVehicleID: strp("veh-2")})
	if err != nil {
		t.Fatalf("update driver: %v", err)
	}
	if got.Name != "Ama" {
		t.Fatalf("unspecified field should be retained, got %q", got.Name)
	}
	if got.AssignedVehicleID != "veh-2" {
		t.Fatalf("patched field not applied: %q", got.AssignedVehicleID)
	}
	if persisted := r.Drivers(ctx)[0]; persisted != got {
		t.Fatalf("merge not persisted: %+v", persisted)
	}
}

func TestUpdateDriverNotFound(t *testing.T) {
	r := newRepo()
	if _, err := r.UpdateDriver(context.Background(), "drv-missing", DriverPatch{Name: strp("X")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddVehicle(t *testing.T) {
	r := newRepo()
	ctx := context.Background()

	v, err := r.AddVehicle(ctx, " GT-1234 ")
	if err != nil {
		t.Fatalf("add vehicle: %v", err)
	}
	if v.Label != "GT-1234" || !strings.HasPrefix(v.ID, "veh-") {
		t.Fatalf("unexpected vehicle: %+v", v)
	}
	if _, err := r.AddVehicle(ctx, ""); !errors.Is(err, core.ErrEmptyLabel) {
		t.Fatalf("expected ErrEmptyLabel, got %v", err)
	}
}

func TestAddActivity(t *testing.T) {
	r := newRepo()
	ctx := context.Background()

	a, err := r.AddActivity(ctx, core.Activity{
		DriverID:  "drv-1",
		VehicleID: "veh-1",
		Location:  " Accra ",
		Date:      "2026-01-10",
		Revenue:   150,
	})
	if err != nil {
		t.Fatalf("add activity: %v", err)
	}
	if !strings.HasPrefix(a.ID, "act-") {
		t.Fatalf("activity id should carry act- prefix, got %q", a.ID)
	}
	if a.Location != "Accra" {
		t.Fatalf("location should be trimmed, got %q", a.Location)
	}

	cases := []struct {
		a    core.Activity
		want error
	}{
		{core.Activity{VehicleID: "veh-1", Date: "2026-01-10"}, core.ErrMissingDriver},
		{core.Activity{DriverID: "drv-1", Date: "2026-01-10"}, core.ErrMissingVehicle},
		{core.Activity{DriverID: "drv-1", VehicleID: "veh-1", Date: "bad"}, core.ErrInvalidDate},
	}
	for i, tc := range cases {
		if _, err := r.AddActivity(ctx, tc.a); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: expected %v, got %v", i, tc.want, err)
		}
	}
	if got := r.Activities(ctx); len(got) != 1 {
		t.Fatalf("rejected activities must not be written, got %d", len(got))
	}
}

func TestUpdateActivity(t *testing.T) {
	r := newRepo()
	ctx := context.Background()

	a, _ := r.AddActivity(ctx, core.Activity{
		DriverID: "drv-1", VehicleID: "veh-1", Location: "Accra",
		Date: "2026-01-10", Revenue: 150,
	})

	rev := core.Amount(200)
	got, err := r.UpdateActivity(ctx, a.ID, ActivityPatch{
		Location: strp("Kumasi"),
		Revenue:  &rev,
	})
	if err != nil {
		t.Fatalf("update activity: %v", err)
	}
	if got.Location != "Kumasi" || got.Revenue != 200 {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.DriverID != "drv-1" || got.Date != "2026-01-10" {
		t.Fatalf("unspecified fields should be retained: %+v", got)
	}

	if _, err := r.UpdateActivity(ctx, "act-missing", ActivityPatch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteActivity(t *testing.T) {
	r := newRepo()
	ctx := context.Background()

	a, _ := r.AddActivity(ctx, core.Activity{
		DriverID: "drv-1", VehicleID: "veh-1", Date: "2026-01-10",
	})
	b, _ := r.AddActivity(ctx, core.Activity{
		DriverID: "drv-1", VehicleID: "veh-1", Date: "2026-01-11",
	})

	if err := r.DeleteActivity(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	left := r.Activities(ctx)
	if len(left) != 1 || left[0].ID != b.ID {
		t.Fatalf("expected only %s to remain, got %v", b.ID, left)
	}

	// Absent id is a no-op.
	if err := r.DeleteActivity(ctx, "act-missing"); err != nil {
		t.Fatalf("delete absent id should be a no-op, got %v", err)
	}
}
