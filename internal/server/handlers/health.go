package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/web-debit/navigate-relay/app/internal/logger"
	"github.com/web-debit/navigate-relay/app/internal/relay"
	"github.com/web-debit/navigate-relay/app/internal/version"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// HandleHealth reports that the HTTP service is alive and responding.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// DebugInfo is the static part of the GET /debug response.
type DebugInfo struct {
	Environment string
	Mode        relay.Mode
	AuthEnabled bool
	GatewayURL  string
	StartedAt   time.Time
	Credentials relay.MerchantCredentials
}

// DebugResponse is the body of GET /debug.
type DebugResponse struct {
	Status                string          `json:"status"`
	Service               string          `json:"service"`
	Version               version.Info    `json:"version"`
	Environment           string          `json:"environment"`
	Mode                  relay.Mode      `json:"mode"`
	AuthEnabled           bool            `json:"auth_enabled"`
	GatewayURL            string          `json:"gateway_url"`
	UptimeSeconds         int64           `json:"uptime_seconds"`
	CredentialsConfigured map[string]bool `json:"credentials_configured"`
}

// HandleDebug reports service status and non-secret configuration.
func HandleDebug(info DebugInfo) http.HandlerFunc {
	configured := map[string]bool{
		"SHOP_PWD":       info.Credentials.ShopPassword() != "",
		"FS_TOKEN":       info.Credentials.SessionToken() != "",
		"ADMIN_PASSWORD": info.Credentials.AdminPassword() != "",
	}

	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, DebugResponse{
			Status:                "ok",
			Service:               "navigate-relay",
			Version:               version.Get(),
			Environment:           info.Environment,
			Mode:                  info.Mode,
			AuthEnabled:           info.AuthEnabled,
			GatewayURL:            info.GatewayURL,
			UptimeSeconds:         int64(time.Since(info.StartedAt).Seconds()),
			CredentialsConfigured: configured,
		})
	}
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// headers are already written
		logger.ContextRequestLogger(r.Context()).Error("Failed to encode JSON response",
			slog.String("error", err.Error()),
		)
	}
}
