// Package main copies firearm definitions between a YAML directory and the
// database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/config"
	"github.com/cory-johannsen/armory/internal/importer"
	"github.com/cory-johannsen/armory/internal/observability"
	"github.com/cory-johannsen/armory/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	from := flag.String("from", config.SourceYAML, "source store: yaml or postgres")
	to := flag.String("to", config.SourcePostgres, "destination store: yaml or postgres")
	dir := flag.String("dir", "", "YAML directory (default content.firearms_dir)")
	flag.Parse()

	if *from == *to {
		fmt.Fprintln(os.Stderr, "usage: import-content -from <yaml|postgres> -to <yaml|postgres> [-dir <path>]; -from and -to must differ")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logging, "import-content")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	yamlDir := importer.YAMLDir{Dir: cfg.Content.FirearmsDir}
	if *dir != "" {
		yamlDir.Dir = *dir
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()
	repo := postgres.NewFirearmRepository(pool.DB())

	var (
		src  importer.Source
		sink importer.Sink
	)
	switch {
	case *from == config.SourceYAML && *to == config.SourcePostgres:
		src, sink = yamlDir, repo
	case *from == config.SourcePostgres && *to == config.SourceYAML:
		src, sink = repo, yamlDir
	default:
		fmt.Fprintf(os.Stderr, "unsupported stores %q -> %q (supported: yaml, postgres)\n", *from, *to)
		os.Exit(1)
	}

	start := time.Now()
	n, err := importer.New(src, sink, logger).Run(ctx)
	if err != nil {
		logger.Fatal("import failed", zap.Int("saved", n), zap.Error(err))
	}
	fmt.Printf("imported %d firearm(s) %s -> %s in %s\n", n, *from, *to, time.Since(start).Round(time.Millisecond))
}
