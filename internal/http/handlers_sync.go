package http

import (
	"log/slog"
	"net/http"
	"net/url"

	"sharkhome/internal/core"
)

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.store.LoadRemoteConfig(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Load remote config error", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to load sync settings")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// handlePutConfig persists new sync settings and applies them to the running
// client in the same request. An empty endpoint disables syncing.
func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	var cfg core.RemoteConfig
	if err := readJSON(r, &cfg); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cfg.Endpoint = sanitizeInput(cfg.Endpoint)
	cfg.Token = sanitizeInput(cfg.Token)

	if cfg.Endpoint != "" {
		u, err := url.Parse(cfg.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errorJSON(w, http.StatusUnprocessableEntity, "endpoint must be an http(s) URL")
			return
		}
	}

	if err := s.store.SaveRemoteConfig(r.Context(), cfg); err != nil {
		slog.ErrorContext(r.Context(), "Save remote config error", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to save sync settings")
		return
	}
	s.sync.Configure(cfg.Endpoint, cfg.Token)

	slog.InfoContext(r.Context(), "Sync settings updated", "endpoint_set", cfg.Endpoint != "")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": s.sync.Status().String()})
}
