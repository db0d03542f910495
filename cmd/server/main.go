package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/florakit/herbarium/pkg/api"
	"github.com/florakit/herbarium/pkg/chassis"
	"github.com/florakit/herbarium/pkg/dataset"
	"github.com/florakit/herbarium/pkg/flora"
	"github.com/florakit/herbarium/pkg/importer"
)

type config struct {
	Addr      string             `yaml:"addr"`
	Root      string             `yaml:"root"`
	DataFile  string             `yaml:"data_file"`
	PhotoRoot string             `yaml:"photo_root"`
	IconsRoot string             `yaml:"icons_root"`
	CertFile  string             `yaml:"cert_file"`
	KeyFile   string             `yaml:"key_file"`
	Dataset   dataset.FormatSpec `yaml:"dataset"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "import":
		cmdImport(os.Args[2:])
	case "probe":
		cmdProbe(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: herbarium <command>\n\nCommands:\n  serve    Start the catalog server\n  import   Download dataset and icon-pack sources\n  probe    Connect to a running server over MCP/QUIC\n")
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := loadConfig(*cfgPath, logger)

	// Build the catalog snapshot once at startup.
	cat := flora.NewCatalog(flora.Config{
		Root:      cfg.Root,
		PhotoRoot: filepath.Join(cfg.Root, filepath.FromSlash(cfg.PhotoRoot)),
		IconsRoot: filepath.Join(cfg.Root, filepath.FromSlash(cfg.IconsRoot)),
		Source: func() ([]map[string]string, error) {
			return dataset.ReadFile(filepath.Join(cfg.Root, filepath.FromSlash(cfg.DataFile)), cfg.Dataset, flora.RequiredColumns)
		},
	})
	if err := cat.Load(); err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	logger.Info("catalog loaded", "species", cat.RecordCount(), "icons", cat.IconCount())

	// HTTP router + MCP tools share the same endpoints.
	router := api.NewRouter(cat, filepath.Join(cfg.Root, "static"))

	mcpSrv := server.NewMCPServer("herbarium", "1.0.0")
	api.RegisterMCPTools(mcpSrv, cat)

	srv, err := chassis.New(chassis.Config{
		Addr:      cfg.Addr,
		CertFile:  cfg.CertFile,
		KeyFile:   cfg.KeyFile,
		Handler:   router,
		MCPServer: mcpSrv,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("failed to build server", "error", err)
		os.Exit(1)
	}

	// SIGHUP: rebuild the snapshot and swap it in whole.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Periodically verify import sources when the import command has
	// been used on this root.
	sourcesPath := filepath.Join(cfg.Root, "data", "sources.db")
	if _, err := os.Stat(sourcesPath); err == nil {
		sdb, err := importer.OpenSourceDB(sourcesPath)
		if err != nil {
			logger.Warn("sources.db unreadable, skipping source checks", "error", err)
		} else {
			defer sdb.Close()
			go importer.NewChecker(sdb, logger, 12*time.Hour).Start(ctx)
		}
	}

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading catalog")
			if err := cat.Reload(); err != nil {
				logger.Error("reload failed", "error", err)
			} else {
				logger.Info("catalog reloaded", "species", cat.RecordCount(), "icons", cat.IconCount())
			}
		}
	}()

	if err := srv.Start(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Stop(shutdownCtx)
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := config{
		Addr:      ":8430",
		Root:      ".",
		DataFile:  "data/species.csv",
		PhotoRoot: "static/photos",
		IconsRoot: "static/Icons",
		Dataset: dataset.FormatSpec{
			Delimiter: ",",
			Encoding:  "utf-8",
			HasHeader: true,
		},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}
