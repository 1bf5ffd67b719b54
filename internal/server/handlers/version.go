package handlers

import (
	"net/http"

	"github.com/web-debit/navigate-relay/app/internal/version"
)

// HandleVersion returns the version and build information for the service
func HandleVersion() http.HandlerFunc {
	v := version.Get()
	// Pre-create the response to avoid allocating on every request
	response := VersionResponse{
		Version:   v.Version,
		BuildTime: v.BuildDate,
		GitCommit: v.GitCommit,
		Service:   "navigate-relay",
	}

	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, response)
	}
}

type VersionResponse struct {
	Version   string `json:"version" example:"1.0.0"`
	BuildTime string `json:"build_time" example:"2024-01-28T10:00:00Z"`
	GitCommit string `json:"git_commit" example:"abc1234"`
	Service   string `json:"service" example:"navigate-relay"`
}
