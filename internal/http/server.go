// Package http exposes the household services as a JSON API for the web UI.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"sharkhome/internal/remote"
	"sharkhome/internal/services"
	"sharkhome/internal/storage"
	"sharkhome/internal/vocab"
)

// SyncPort is the slice of the sync client the API needs: runtime
// reconfiguration and the transient status indicator.
type SyncPort interface {
	Configure(endpoint, token string)
	Status() remote.Status
}

type Server struct {
	http.Server
	shopping *services.Shopping
	ledger   *services.Ledger
	recipes  *services.Recipes
	vocab    *vocab.Vocabulary
	store    storage.Store
	sync     SyncPort
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, shopping *services.Shopping, ledger *services.Ledger, recipes *services.Recipes, v *vocab.Vocabulary, store storage.Store, sync SyncPort) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		shopping: shopping,
		ledger:   ledger,
		recipes:  recipes,
		vocab:    v,
		store:    store,
		sync:     sync,
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/shopping", s.withRequestLog(s.handleListShopping))
	mux.HandleFunc("POST /api/shopping", s.withRequestLog(s.handleAddShopping))
	mux.HandleFunc("POST /api/shopping/{id}/toggle", s.withRequestLog(s.handleToggleShopping))
	mux.HandleFunc("DELETE /api/shopping/{id}", s.withRequestLog(s.handleRemoveShopping))

	mux.HandleFunc("GET /api/expenses", s.withRequestLog(s.handleListExpenses))
	mux.HandleFunc("POST /api/expenses", s.withRequestLog(s.handleCreateExpense))
	mux.HandleFunc("GET /api/expenses/summary", s.withRequestLog(s.handleExpenseSummary))
	mux.HandleFunc("PUT /api/expenses/{id}", s.withRequestLog(s.handleEditExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.withRequestLog(s.handleDeleteExpense))
	mux.HandleFunc("POST /api/scan", s.withRequestLog(s.handleScanSlip))

	mux.HandleFunc("GET /api/recipes", s.withRequestLog(s.handleListRecipes))
	mux.HandleFunc("POST /api/recipes", s.withRequestLog(s.handleCreateRecipe))
	mux.HandleFunc("DELETE /api/recipes/{id}", s.withRequestLog(s.handleRemoveRecipe))

	mux.HandleFunc("GET /api/suggestions", s.withRequestLog(s.handleSuggestions))
	mux.HandleFunc("GET /api/config", s.withRequestLog(s.handleGetConfig))
	mux.HandleFunc("PUT /api/config", s.withRequestLog(s.handlePutConfig))
	mux.HandleFunc("GET /api/sync/status", s.withRequestLog(s.handleSyncStatus))

	return s
}

// withRequestLog adds security headers, a request ID and request logging.
func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
