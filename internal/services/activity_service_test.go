package services

import (
	"context"
	"errors"
	"testing"

	"fieldlog/internal/core"
	"fieldlog/internal/repo"
	"fieldlog/internal/store/memory"
)

func newService() *ActivityService {
	return NewActivityService(repo.New(memory.New()), nil)
}

func TestCreateWithoutAMQP(t *testing.T) {
	s := newService()
	ctx := context.Background()

	a, err := s.Create(ctx, core.Activity{
		DriverID: "drv-1", VehicleID: "veh-1", Location: "Accra",
		Date: "2026-01-10", Revenue: 150,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == "" {
		t.Fatal("created activity should carry an id")
	}
}

func TestCreateValidationFailureDoesNotWrite(t *testing.T) {
	st := memory.New()
	r := repo.New(st)
	s := NewActivityService(r, nil)
	ctx := context.Background()

	if _, err := s.Create(ctx, core.Activity{VehicleID: "veh-1", Date: "2026-01-10"}); !errors.Is(err, core.ErrMissingDriver) {
		t.Fatalf("expected ErrMissingDriver, got %v", err)
	}
	if got := r.Activities(ctx); len(got) != 0 {
		t.Fatalf("nothing should be written on validation failure: %v", got)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	st := memory.New()
	r := repo.New(st)
	s := NewActivityService(r, nil)
	ctx := context.Background()

	a, _ := s.Create(ctx, core.Activity{
		DriverID: "drv-1", VehicleID: "veh-1", Date: "2026-01-10", Revenue: 100,
	})

	loc := "Tema"
	updated, err := s.Update(ctx, a.ID, repo.ActivityPatch{Location: &loc})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Location != "Tema" {
		t.Fatalf("patch not applied: %+v", updated)
	}

	if _, err := s.Update(ctx, "act-missing", repo.ActivityPatch{}); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := r.Activities(ctx); len(got) != 0 {
		t.Fatalf("activity should be gone: %v", got)
	}
}

func TestCloseWithoutAMQP(t *testing.T) {
	if err := newService().Close(); err != nil {
		t.Fatalf("close with nil amqp should succeed: %v", err)
	}
}
