package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vk/helix/internal/ctxlog"
)

// statusMux builds the HTTP surface of the status server. Split out so
// tests can exercise the handlers without binding a port.
func (a *App) statusMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc("GET /features", a.handleFeatures)
	mux.HandleFunc("POST /resolve", a.handleResolve)
	return mux
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// handleFeatures serves the currently published snapshot. It reads the
// atomic snapshot only, so it is safe concurrently with a resolve.
func (a *App) handleFeatures(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.reportRows()); err != nil {
		a.logger.Error("Failed to encode feature snapshot.", "error", err)
	}
}

// handleResolve triggers an explicit re-resolution pass, the hook for
// environment changes like hot-plugged hardware. On failure the previous
// snapshot stays authoritative and the error is reported to the caller.
func (a *App) handleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := ctxlog.WithLogger(r.Context(), a.logger)
	if err := a.features.Resolve(ctx); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	a.handleFeatures(w, r)
}

// startStatusServer runs the status HTTP server in the background.
func (a *App) startStatusServer(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	addr := fmt.Sprintf(":%d", a.config.StatusPort)

	a.server = &http.Server{
		Addr:    addr,
		Handler: a.statusMux(),
	}

	go func() {
		logger.Info("Status server starting.", "address", fmt.Sprintf("http://localhost%s/features", addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Status server failed unexpectedly.", "error", err)
		}
	}()
}

// Close shuts the status server down gracefully, if it was started.
func (a *App) Close() error {
	if a.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Debug("Shutting down status server...")
	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("Status server shutdown failed.", "error", err)
		return err
	}
	return nil
}
