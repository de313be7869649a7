// Package main provides the armory binary: it loads the firearm attachment
// registry, runs attachment scripts and answers name lookups.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/config"
	"github.com/cory-johannsen/armory/internal/game/attachment"
	"github.com/cory-johannsen/armory/internal/game/inventory"
	"github.com/cory-johannsen/armory/internal/observability"
	"github.com/cory-johannsen/armory/internal/scripting"
	"github.com/cory-johannsen/armory/internal/server"
	"github.com/cory-johannsen/armory/internal/storage/postgres"
)

// scriptKey is the VM key for the scripts in scripting.script_dir.
const scriptKey = "armory"

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	parseName := flag.String("parse", "", "attachment name to resolve against the registry")
	list := flag.Bool("list", false, "print every firearm and its attachments")
	hook := flag.String("hook", "", "Lua hook to call after scripts load")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "armory")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewLookupMetrics(promReg)
	if err != nil {
		logger.Fatal("registering metrics", zap.Error(err))
	}

	reg, err := loadRegistry(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("loading registry", zap.Error(err))
	}
	attachments := reg.Attachments()
	logger.Info("registry loaded",
		zap.String("source", cfg.Content.Source),
		zap.Int("firearms", len(attachments.Firearms())),
		zap.Int("attachments", attachments.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)

	if *list {
		printRegistry(attachments)
	}

	if *parseName != "" {
		id, ok := metrics.Lookup(attachments, *parseName)
		if !ok {
			fmt.Fprintf(os.Stderr, "%s: no such attachment\n", *parseName)
			_ = logger.Sync()
			os.Exit(1)
		}
		fmt.Printf("%s: code=%d slot=%s\n", id, id.Code(), id.Slot())
	}

	if cfg.Scripting.ScriptDir != "" {
		scriptMgr := scripting.NewManager(attachments, logger)
		scriptMgr.Lookup = metrics.Lookup
		defer scriptMgr.Close()
		if err := scriptMgr.LoadScripts(scriptKey, cfg.Scripting.ScriptDir, cfg.Scripting.InstructionLimit); err != nil {
			logger.Fatal("loading scripts", zap.Error(err))
		}
		logger.Info("scripts loaded", zap.String("dir", cfg.Scripting.ScriptDir))
		if *hook != "" {
			ret, _ := scriptMgr.CallHook(scriptKey, *hook)
			fmt.Printf("%s: %s\n", *hook, ret)
		}
	}

	if cfg.Metrics.Addr == "" {
		return
	}
	lc := server.NewLifecycle(logger)
	lc.Add("metrics", server.NewMetricsService(cfg.Metrics.Addr, promReg))
	logger.Info("serving metrics", zap.String("addr", cfg.Metrics.Addr))
	if err := lc.Run(ctx); err != nil {
		logger.Fatal("running services", zap.Error(err))
	}
}

func loadRegistry(ctx context.Context, cfg config.Config, logger *zap.Logger) (*inventory.Registry, error) {
	switch cfg.Content.Source {
	case config.SourcePostgres:
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
		return postgres.NewFirearmRepository(pool.DB()).LoadRegistry(ctx)
	default:
		defs, err := inventory.LoadFirearms(cfg.Content.FirearmsDir)
		if err != nil {
			return nil, err
		}
		return inventory.BuildRegistry(defs)
	}
}

func printRegistry(reg *attachment.Registry) {
	for firearm, ids := range reg.All() {
		fmt.Println(firearm)
		for _, id := range ids {
			fmt.Printf("  %-24s code=%-10d slot=%s\n", id, id.Code(), id.Slot())
		}
	}
}
