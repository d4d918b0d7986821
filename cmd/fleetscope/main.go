package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/KimMachineGun/automemlimit"
	_ "go.uber.org/automaxprocs"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fleetscope/fleetscope/internal/cloudapi"
	"github.com/fleetscope/fleetscope/internal/observability"
	"github.com/fleetscope/fleetscope/internal/tools"

	"github.com/fleetscope/fleetscope/internal/config"
)

const version = "0.1.0"

func main() {
	// Stdout carries the MCP session, so all logging goes to stderr.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	// 1. Load and validate config.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// 2. Create context with signal handling.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		slog.Info("shutdown signal received", "signal", sig)
		cancel()
	}()

	slog.Info("fleetscope starting",
		"version", version,
		"clusters", len(cfg.Registry.IDs()),
		"clusters_file", cfg.ClustersFile,
	)

	// 3. Shared infrastructure.
	metrics := observability.NewMetrics()
	token := cloudapi.StaticToken(os.Getenv("FLEETSCOPE_MANAGEMENT_TOKEN"))

	// 4. Tool service and MCP server.
	service := tools.NewService(cfg, metrics, token)
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "fleetscope",
		Version: version,
	}, nil)
	tools.Register(server, service)

	// 5. Optional metrics listener.
	var metricsSrv *http.Server
	if cfg.MetricsPort > 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
		metricsSrv = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.MetricsPort),
			Handler: mux,
		}
		go func() {
			slog.Info("metrics listener starting", "port", cfg.MetricsPort)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("metrics listener failed", "error", err)
			}
		}()
	}

	// 6. Serve the session (blocks until the context is canceled or
	// the client disconnects).
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		slog.Error("server exited with error", "error", err)
	}

	// 7. Graceful shutdown.
	if metricsSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics listener shutdown error", "error", err)
		}
	}

	slog.Info("fleetscope stopped")
}
