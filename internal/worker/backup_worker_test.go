package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fieldlog/internal/amqp"
	"fieldlog/internal/core"
	"fieldlog/internal/store"
	"fieldlog/internal/store/memory"
	"fieldlog/internal/transfer"
)

// brokenStore simulates a backend that stops serving reads, like a store
// that was closed out from under the worker.
type brokenStore struct{}

func (brokenStore) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("database is closed")
}

func (brokenStore) Save(context.Context, string, []byte) error {
	return errors.New("database is closed")
}

func TestFlushSkipsWhenClean(t *testing.T) {
	dir := t.TempDir()
	w := NewBackupWorker(memory.New(), dir)

	if err := w.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, transfer.ExportFilename)); !os.IsNotExist(err) {
		t.Fatal("clean worker should not write a snapshot")
	}
}

func TestChangeThenFlushWritesSnapshot(t *testing.T) {
	dir := t.TempDir()
	s := memory.New()
	ctx := context.Background()

	acts := []core.Activity{
		{ID: "act-1", DriverID: "drv-1", VehicleID: "veh-1", Date: "2026-01-10", Revenue: 150},
	}
	if err := store.SaveList(ctx, s, store.KeyActivities, acts); err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := NewBackupWorker(s, dir)
	if err := w.HandleChange(amqp.NewActivityChangeMessage("act-1", amqp.ChangeCreated)); err != nil {
		t.Fatalf("handle change: %v", err)
	}
	if err := w.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	payload, err := os.ReadFile(filepath.Join(dir, transfer.ExportFilename))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	var snap transfer.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		t.Fatalf("backup is not a snapshot: %v", err)
	}
	if len(snap.Activities) != 1 || snap.Activities[0].ID != "act-1" {
		t.Fatalf("unexpected snapshot contents: %+v", snap)
	}
	if snap.Version != transfer.Version {
		t.Fatalf("snapshot version: %d", snap.Version)
	}

	// A second flush with no new change is a no-op.
	if err := os.Remove(filepath.Join(dir, transfer.ExportFilename)); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, transfer.ExportFilename)); !os.IsNotExist(err) {
		t.Fatal("flush without changes should not rewrite the snapshot")
	}
}

func TestFlushKeepsBackupWhenStoreUnreadable(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	// Start with a good backup on disk.
	s := memory.New()
	acts := []core.Activity{
		{ID: "act-1", DriverID: "drv-1", VehicleID: "veh-1", Date: "2026-01-10", Revenue: 150},
	}
	if err := store.SaveList(ctx, s, store.KeyActivities, acts); err != nil {
		t.Fatalf("seed: %v", err)
	}
	good := NewBackupWorker(s, dir)
	if err := good.WriteSnapshot(ctx); err != nil {
		t.Fatalf("initial snapshot: %v", err)
	}
	target := filepath.Join(dir, transfer.ExportFilename)
	before, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}

	// A worker whose store no longer serves reads must not replace the
	// backup with an empty snapshot.
	w := NewBackupWorker(brokenStore{}, dir)
	if err := w.HandleChange(amqp.NewActivityChangeMessage("act-1", amqp.ChangeDeleted)); err != nil {
		t.Fatalf("handle change: %v", err)
	}
	if err := w.Flush(ctx); err == nil {
		t.Fatal("flush against an unreadable store should fail")
	}

	after, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatalf("backup was rewritten: %s", after)
	}
	if !w.dirty.Load() {
		t.Fatal("failed flush should keep the dirty mark for a retry")
	}
}
