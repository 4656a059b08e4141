package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/frontiermaps/starmap/internal/mcp"
	"github.com/frontiermaps/starmap/internal/server"
	"github.com/frontiermaps/starmap/pkg/core/starmap"
	"github.com/frontiermaps/starmap/pkg/engine"
	"github.com/frontiermaps/starmap/pkg/persistence"
)

func main() {
	configPath := flag.String("config", "", "Path to a yaml config file (optional)")
	httpAddr := flag.String("http-addr", "", "HTTP listen address, overrides config (e.g. :8080)")
	datasetPath := flag.String("dataset", "", "Path to a starmap bundle, overrides config")
	mcpMode := flag.Bool("mcp", false, "Serve MCP tools over stdio instead of HTTP")
	flag.Parse()

	cfg, err := server.LoadConfig(*configPath)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *httpAddr != "" {
		cfg.ListenAddr = *httpAddr
	}
	if *datasetPath != "" {
		cfg.DatasetPath = *datasetPath
	}

	setupLogger(cfg.LogLevel, *mcpMode)

	svc, err := engine.NewService(loadDataset(cfg.DatasetPath))
	if err != nil {
		slog.Error("failed to open dataset", "error", err)
		os.Exit(1)
	}

	if *mcpMode {
		// MCP owns stdout; logs already go to stderr.
		s := mcp.NewMCPServer(svc)
		if err := s.Run(context.Background(), &sdkmcp.StdioTransport{}); err != nil {
			slog.Error("mcp server stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	srv := server.NewServer(svc, cfg)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(); err != nil {
			slog.Error("http server stopped", "error", err)
			os.Exit(1)
		}
	}()

	<-shutdownChan
	srv.Shutdown()
}

// loadDataset reads the configured bundle, falling back to the built-in
// demo dataset when no path is set or the bundle cannot be read. The demo
// fallback keeps the query surface usable with zero configuration.
func loadDataset(path string) starmap.Dataset {
	if path == "" {
		slog.Info("no dataset configured, using built-in demo data")
		return engine.DemoDataset()
	}
	ds, err := persistence.ReadFile(path)
	if err != nil {
		slog.Warn("failed to load dataset bundle, using built-in demo data",
			"path", path, "error", err)
		return engine.DemoDataset()
	}
	return ds
}

func setupLogger(level string, mcpMode bool) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	if mcpMode {
		// Keep stdio clean for the MCP transport.
		lvl = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
