package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sir_venger/upload_demo/internal/app/uploadhttp"
	"github.com/sir_venger/upload_demo/internal/config"
	"github.com/sir_venger/upload_demo/internal/logger"
	"github.com/sir_venger/upload_demo/internal/tracing"
	"github.com/sir_venger/upload_demo/internal/usecase/uploadsvc"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	var configPath, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the upload HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := os.Setenv("CONFIG_PATH", configPath); err != nil {
					return err
				}
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (overrides CONFIG_PATH)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides listen_addr)")

	return cmd
}

// serve поднимает HTTP-сервер и фоновый GC и корректно завершает их по сигналу.
func serve(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	log := logger.New(os.Stderr, cfg.LogLevel)

	shutdownTracing, err := tracing.Setup(cfg.TraceExporter, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Error("tracing shutdown error", logger.Error(err))
		}
	}()

	handler, _, err := uploadhttp.NewServer(cfg, uploadhttp.WithLogger(log))
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	stopGC := uploadsvc.StartGC(cfg.UploadDir, cfg.TempTTL, cfg.GCInterval)
	defer stopGC()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Info("upload service listening", "addr", cfg.ListenAddr, "upload_dir", cfg.UploadDir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Сценарий graceful shutdown при получении SIGTERM/SIGINT.
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("shutdown error", logger.Error(err))
			return err
		}
		log.Info("upload service stopped")
		return nil
	})

	return eg.Wait()
}
