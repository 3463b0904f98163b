// Command teamlens-web serves the TeamLens dashboard: it loads the team
// experiment export, runs the analysis pipeline, and exposes the reports
// over the JSON API with WebSocket change notifications.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/teamlens/teamlens/internal/config"
	"github.com/teamlens/teamlens/internal/dataset"
	"github.com/teamlens/teamlens/internal/server"
	"github.com/teamlens/teamlens/internal/storage"
	"github.com/teamlens/teamlens/internal/storage/postgres"
	"github.com/teamlens/teamlens/internal/storage/sqlite"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var fetcher *dataset.Fetcher
	if cfg.Dataset.RefreshURL != "" {
		fetcher = dataset.NewFetcher(cfg.Dataset.RefreshURL)
	}
	manager := dataset.NewManager(cfg.Dataset.Path, fetcher)
	manager.SetClustering(cfg.Analysis.ClusterK, cfg.Analysis.ClusterSeed)
	if _, err := manager.Reload(); err != nil {
		log.Fatalf("Failed to load dataset %s: %v", cfg.Dataset.Path, err)
	}
	log.Printf("Loaded %d teams from %s", manager.Result().Meta.Teams, cfg.Dataset.Path)

	var store storage.SnapshotStore
	var vectors storage.VectorStore
	switch cfg.Storage.Engine {
	case "postgres":
		pg, err := postgres.NewStore(cfg.Storage.PostgresDSN)
		if err != nil {
			log.Fatalf("Failed to open postgres store: %v", err)
		}
		store = pg
		if pg.VectorsEnabled() {
			vectors = pg
		} else {
			log.Printf("pgvector extension unavailable, similarity lookup disabled")
		}
	default:
		s, err := sqlite.NewSnapshotStore(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open sqlite store: %v", err)
		}
		store = s
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr, _, err := server.Start(ctx, cfg, manager, store, vectors)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Printf("Dashboard available at http://%s", addr)

	// Wait for shutdown signal.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("Shutting down...")
	cancel()
}
