package web

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/brooksai/slashhub/internal/config"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// NewServer creates and configures the HTTP server for the slashhub API.
func NewServer(db *sql.DB, cfg *config.Config, version, bind string, port int) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", bind, port),
		Handler:           NewHandler(db, cfg, version),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewHandler builds the routed, instrumented handler tree.
func NewHandler(db *sql.DB, cfg *config.Config, version string) http.Handler {
	metrics := NewMetrics()
	h := &Handlers{
		db:      db,
		cfg:     cfg,
		version: version,
		metrics: metrics,
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/help", http.StatusFound)
	})
	mux.HandleFunc("GET /help", h.HandleHelp)
	mux.HandleFunc("GET /api/routes", h.HandleListRoutes)
	mux.HandleFunc("POST /api/routes", h.HandleRegisterRoute)
	mux.HandleFunc("GET /api/routes/resolve", h.HandleResolve)
	mux.HandleFunc("GET /api/routes/suggest", h.HandleSuggest)
	mux.HandleFunc("GET /api/owners/{owner}/atos", h.HandleListATOs)
	mux.HandleFunc("POST /api/owners/{owner}/atos", h.HandleCreateATO)
	mux.HandleFunc("DELETE /api/owners/{owner}/atos/{id}", h.HandleDeleteATO)
	mux.HandleFunc("GET /api/owners/{owner}/top", h.HandleTop)
	mux.HandleFunc("POST /api/chats/messages", h.HandleSend)
	mux.HandleFunc("GET /api/chats/{id}", h.HandleGetChat)
	mux.HandleFunc("PUT /api/chats/{id}/route", h.HandleSetChatRoute)
	mux.Handle("GET /metrics", metrics.Handler())

	return securityHeaders(metrics.instrument(mux))
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("slashhub API running at http://%s", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Printf("WARNING: Server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
