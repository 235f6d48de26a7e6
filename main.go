package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"media-board/internal/filesystem"
	"media-board/internal/handlers"
	"media-board/internal/linkpreview"
	"media-board/internal/logging"
	"media-board/internal/metrics"
	"media-board/internal/middleware"
	"media-board/internal/startup"
	"media-board/internal/storage"
	"media-board/internal/store"
	"media-board/internal/watcher"
)

func main() {
	startTime := time.Now()

	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Resolve and scaffold the storage layout.
	storeStart := time.Now()
	paths, err := storage.New(config.StoreDir)
	if err != nil {
		startup.LogFatal("Storage error: %v", err)
	}
	startup.LogStoreReady(paths, time.Since(storeStart))

	contentStore := store.New(paths)
	if config.MetricsEnabled {
		metrics.InitializeMetrics()
		contentStore.SetObserver(metrics.NewStoreObserver())
		filesystem.SetObserver(metrics.NewFilesystemObserver())
	}

	// Trash survives only within a run: purge before anything else can
	// touch the store. Blocking by design; a slow disk delays startup.
	if err := contentStore.EmptyTrash(); err != nil {
		logging.Warn("Startup trash purge failed: %v", err)
	}

	var w *watcher.Watcher
	if config.WatchEnabled {
		w, err = watcher.New(paths)
		if err != nil {
			logging.Warn("Change notifications disabled: %v", err)
		} else {
			w.Start()
		}
	}

	h := handlers.New(contentStore, linkpreview.NewFetcher(paths), w)
	router := setupRouter(h)

	loggedHandler := middleware.Logger(middleware.LoggingConfig{
		LogMediaFiles: config.LogMediaFiles,
	})(router)
	handler := middleware.Metrics()(loggedHandler)

	srv := &http.Server{
		Addr:         "localhost:" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:        "localhost:" + config.MetricsPort,
			Handler:     metricsMux,
			ReadTimeout: 15 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != http.ErrServerClosed {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	go handleShutdown(srv, metricsSrv, contentStore, w)

	startup.LogServerStarted(config.Port, config.MetricsPort, config.MetricsEnabled, time.Since(startTime))
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}

	// ListenAndServe has returned cleanly; give the shutdown goroutine
	// a moment to finish its logging before the process exits.
	time.Sleep(100 * time.Millisecond)
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/items", h.ListItems).Methods("GET")
	api.HandleFunc("/items", h.SaveItem).Methods("POST")
	api.HandleFunc("/items/{id}/metadata", h.UpdateMetadata).Methods("PUT")
	api.HandleFunc("/items/{id}/restore", h.RestoreItem).Methods("POST")
	api.HandleFunc("/items/{id}", h.DeleteItem).Methods("DELETE")
	api.HandleFunc("/trash", h.ListTrash).Methods("GET")
	api.HandleFunc("/trash", h.EmptyTrash).Methods("DELETE")
	api.HandleFunc("/links", h.SaveLink).Methods("POST")
	api.HandleFunc("/events", h.Events).Methods("GET")

	r.HandleFunc("/media/{name}", h.ServeMedia).Methods("GET")

	return r
}

func handleShutdown(srv, metricsSrv *http.Server, contentStore *store.Store, w *watcher.Watcher) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if w != nil {
		w.Stop()
		startup.LogShutdownStepComplete("Watcher stopped")
	}

	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	// The closing half of the same-run undo buffer: purge the trash
	// again on the way out, blocking until it finishes.
	if err := contentStore.EmptyTrash(); err != nil {
		logging.Warn("Shutdown trash purge failed: %v", err)
	} else {
		startup.LogShutdownStepComplete("Trash purged")
	}

	startup.LogShutdownComplete()
}
