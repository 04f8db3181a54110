// Package worker contains the snapshot backup worker. It listens to
// activity change events and periodically writes a full export snapshot to
// the backup directory, so a fresh backup exists shortly after any change
// without writing the file on every single mutation.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"fieldlog/internal/amqp"
	applog "fieldlog/internal/log"
	"fieldlog/internal/store"
	"fieldlog/internal/transfer"
)

type BackupWorker struct {
	store store.Store
	dir   string
	dirty atomic.Bool
}

func NewBackupWorker(s store.Store, dir string) *BackupWorker {
	return &BackupWorker{store: s, dir: dir}
}

// HandleChange marks the dataset dirty. The snapshot itself is written by
// the next flush tick; the message only signals that state moved.
func (w *BackupWorker) HandleChange(msg *amqp.ActivityChangeMessage) error {
	slog.Info("Activity change received",
		applog.FieldActivityID, msg.ActivityID,
		"change", msg.Change)
	w.dirty.Store(true)
	return nil
}

// Flush writes a snapshot if anything changed since the last write.
func (w *BackupWorker) Flush(ctx context.Context) error {
	if !w.dirty.Swap(false) {
		return nil
	}
	if err := w.WriteSnapshot(ctx); err != nil {
		// Keep the dirty mark so the next tick retries.
		w.dirty.Store(true)
		return err
	}
	return nil
}

// WriteSnapshot unconditionally exports the dataset to the backup file.
// The write goes through a temp file and rename so a crash mid-write never
// leaves a truncated backup.
func (w *BackupWorker) WriteSnapshot(ctx context.Context) error {
	payload, err := transfer.Export(ctx, w.store, time.Now())
	if err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	target := filepath.Join(w.dir, transfer.ExportFilename)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, payload, 0644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("replace backup: %w", err)
	}

	slog.InfoContext(ctx, "Backup snapshot written",
		"path", target, "bytes", len(payload))
	return nil
}

// RunFlusher flushes on every tick until ctx is cancelled.
func (w *BackupWorker) RunFlusher(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// One last flush so a change right before shutdown still lands.
			if err := w.Flush(context.WithoutCancel(ctx)); err != nil {
				slog.Error("Final backup flush failed", applog.FieldError, err)
			}
			return ctx.Err()
		case <-ticker.C:
			if err := w.Flush(ctx); err != nil {
				slog.ErrorContext(ctx, "Backup flush failed", applog.FieldError, err)
			}
		}
	}
}
