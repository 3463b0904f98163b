// Package server provides HTTP server initialization and lifecycle
// management for the TeamLens dashboard.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/teamlens/teamlens/internal/config"
	"github.com/teamlens/teamlens/internal/dataset"
	"github.com/teamlens/teamlens/internal/storage"
	"github.com/teamlens/teamlens/web/handlers"
)

// securityHeadersMiddleware adds security headers to all HTTP responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// Start initializes and starts the HTTP server. It returns the actual
// address being listened on (useful for testing with port 0) and the
// WebSocketHub for wiring reload broadcasts. The server shuts down
// gracefully when ctx is cancelled.
func Start(ctx context.Context, cfg *config.Config, manager *dataset.Manager, store storage.SnapshotStore, vectors storage.VectorStore) (string, *handlers.WebSocketHub, error) {
	mux := http.NewServeMux()

	wsHub := handlers.NewWebSocketHub()
	go wsHub.Run()

	// 10 req/sec sustained, burst of 20.
	rateLimiter := handlers.NewRateLimiter(10.0, 20)

	api := handlers.NewAPIHandlers(manager, store, cfg, wsHub)
	if vectors != nil {
		api.SetVectorStore(vectors)
	}

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /api/summary", api.Summary)
	apiMux.HandleFunc("GET /api/activity", api.Activity)
	apiMux.HandleFunc("GET /api/structure", api.Structure)
	apiMux.HandleFunc("GET /api/results", api.Results)
	apiMux.HandleFunc("GET /api/mental-models", api.MentalModels)
	apiMux.HandleFunc("POST /api/diff", api.Diff)
	apiMux.HandleFunc("GET /api/clusters", api.Clusters)
	apiMux.HandleFunc("GET /api/roles", api.Roles)
	apiMux.HandleFunc("GET /api/personality", api.Personality)
	apiMux.HandleFunc("GET /api/performance", api.Performance)
	apiMux.HandleFunc("/api/snapshots", api.Snapshots)
	apiMux.HandleFunc("/api/snapshots/{id}", api.SnapshotByID)
	apiMux.HandleFunc("POST /api/reload", api.Reload)
	apiMux.HandleFunc("GET /api/persons/{id}/similar", api.SimilarPersons)

	// Health stays outside auth so load balancers can probe it.
	mux.HandleFunc("GET /api/health", api.Health)
	mux.Handle("/api/", handlers.RequireAuth(apiMux, cfg))

	// WebSocket endpoint (origin validation handles security).
	mux.Handle("/ws", wsHub)

	// Static dashboard assets.
	basePath := findBasePath()
	fs := http.FileServer(http.Dir(basePath + "/web/static"))
	mux.Handle("/static/", http.StripPrefix("/static/", fs))
	indexPath := basePath + "/web/static/index.html"
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, indexPath)
	})

	// Watch the export file and push reloads to connected dashboards.
	var watcher *dataset.Watcher
	if cfg.Dataset.Watch {
		watcher = dataset.NewWatcher(cfg.Dataset.Path, func() {
			changed, err := manager.Reload()
			if err != nil {
				log.Printf("server: reload after file change: %v", err)
				return
			}
			if changed {
				if err := api.SyncVectors(context.Background()); err != nil {
					log.Printf("server: sync vectors: %v", err)
				}
				wsHub.Broadcast(handlers.WSEvent{
					Type: handlers.EventDatasetReloaded,
					Data: map[string]string{"fingerprint": manager.Fingerprint()},
				})
			}
		})
		if err := watcher.Start(); err != nil {
			log.Printf("server: dataset watcher disabled: %v", err)
			watcher = nil
		}
	}

	handler := handlers.RateLimitMiddleware(mux, rateLimiter)
	handler = securityHeadersMiddleware(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("server: listen on %s: %w", addr, err)
	}
	actualAddr := listener.Addr().String()

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if watcher != nil {
			watcher.Stop()
		}
		wsHub.Stop()
	}()

	log.Printf("TeamLens listening on %s", actualAddr)
	return actualAddr, wsHub, nil
}

// findBasePath returns the base path for the project. When running from
// cmd/teamlens-web the static assets sit two directories up; when running
// tests the working directory may already be the project root.
func findBasePath() string {
	if _, err := os.Stat("web/static"); err == nil {
		return "."
	}
	if _, err := os.Stat("../../web/static"); err == nil {
		return "../.."
	}
	return "."
}
