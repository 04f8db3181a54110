package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"fieldlog/internal/cli"
	apphttp "fieldlog/internal/http"
	applog "fieldlog/internal/log"
	"fieldlog/internal/repo"
	"fieldlog/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	st, closeStore := cli.InitStore(logger, cfg)
	amqpClient := cli.InitAMQP(logger, cfg)

	activity := services.NewActivityService(repo.New(st), amqpClient)

	srv := apphttp.NewServer(":"+cfg.Port, st, activity)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if err := activity.Close(); err != nil {
			logger.Error("Service close error", "error", err)
		}
		closeStore()
	})

	logger.WithComponent(applog.ComponentHTTP).Info("Starting fieldlog server",
		"port", cfg.Port,
		"backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
