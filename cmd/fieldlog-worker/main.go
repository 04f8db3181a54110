// fieldlog-worker consumes activity change events and keeps a snapshot
// backup of the dataset on disk.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"fieldlog/internal/cli"
	applog "fieldlog/internal/log"
	"fieldlog/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger().WithComponent(applog.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the backup worker")
		os.Exit(1)
	}

	st, closeStore := cli.InitStore(logger, cfg)
	amqpClient := cli.InitAMQP(logger, cfg)

	backup := worker.NewBackupWorker(st, cfg.BackupDir)

	// The AMQP client and the store are closed below, only after the
	// consume loop and the flusher have drained: the final flush must still
	// be able to read the store.
	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	// Write one snapshot up front so a backup exists even before the first
	// change arrives.
	if err := backup.WriteSnapshot(ctx); err != nil {
		logger.Error("Initial backup failed", "error", err)
	}

	logger.Info("Starting backup worker",
		"backup_dir", cfg.BackupDir,
		"interval", cfg.BackupInterval.String())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeActivityChanges(gctx, backup.HandleChange)
	})
	g.Go(func() error {
		return backup.RunFlusher(gctx, cfg.BackupInterval)
	})

	err := g.Wait()

	if cerr := amqpClient.Close(); cerr != nil {
		logger.Error("AMQP close error", "error", cerr)
	}
	closeStore()

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker error", "error", err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Backup worker stopped gracefully")
}
