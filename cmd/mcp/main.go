package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	mcpadapter "github.com/gyan-shrestha/you-ai-hackathon/internal/adapters/mcp"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/bootstrap"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/config"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/observability/logging"
)

const version = "0.1.0"

func main() {
	cfg := config.Load()
	// stdout carries the MCP protocol.
	slog.SetDefault(logging.NewJSONLoggerTo(os.Stderr, "mcp", cfg.LogLevel))

	app, err := bootstrap.New(context.Background(), cfg, nil)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := server.ServeStdio(mcpadapter.NewServer(app.Pipeline, version)); err != nil {
		slog.Error("mcp_serve_failed", "error", err)
	}
}
