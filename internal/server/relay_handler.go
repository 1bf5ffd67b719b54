package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/web-debit/navigate-relay/app/internal/logger"
	"github.com/web-debit/navigate-relay/app/internal/pages"
	"github.com/web-debit/navigate-relay/app/internal/relay"
)

// handleRelay serves GET / and POST /.
//
// A request moves through Received -> Validated | Rejected (400) -> Rendered (200) | RenderFailed (500):
//   - GET without parameters returns the page template unmodified
//   - GET with parameters is rejected in hardened mode; permissive mode renders the form with
//     whatever fields are present and leaves the submit control to the confirmation script
//   - POST is validated and rendered with the merchant credentials from server configuration
func (s *Server) handleRelay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	submission, source, err := relay.AcquireSubmission(r, s.mode)
	logger.ContextWithLogAttrs(ctx,
		slog.String("mode", string(s.mode)),
		slog.String("source", string(source)),
	)
	if err != nil {
		s.respondRelayError(w, r, err)
		return
	}

	if source == relay.SourceBody {
		if err := relay.Validate(submission); err != nil {
			s.respondRelayError(w, r, err)
			return
		}
	}

	tmpl, err := s.template.Load()
	if err != nil {
		s.respondRelayError(w, r, err)
		return
	}

	if source == relay.SourceNone {
		s.respondHTML(w, r, tmpl)
		return
	}

	page, err := relay.Render(tmpl, relay.SanitizeSubmission(submission), s.credentials, s.gateway, s.gateway.OrderNumber())
	if err != nil {
		s.respondRelayError(w, r, err)
		return
	}

	s.respondHTML(w, r, page)
}

func (s *Server) respondHTML(w http.ResponseWriter, r *http.Request, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// rendered pages carry merchant secrets in the hidden form
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write([]byte(page)); err != nil {
		logger.ContextRequestLogger(r.Context()).Warn("failed to write page",
			slog.String("error", err.Error()))
	}
}

// respondRelayError logs the full error server-side and sends the matching error page.
func (s *Server) respondRelayError(w http.ResponseWriter, r *http.Request, err error) {
	reqLogger := logger.ContextRequestLogger(r.Context())

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		reqLogger.Warn("request body too large", slog.Int64("limit", maxBytesErr.Limit))
		s.errorPages.Respond(w, r, pages.RequestTooLarge())
		return
	}

	var missing *relay.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		logger.ContextWithLogAttrs(r.Context(), slog.Any("missing_fields", missing.Fields))
		s.errorPages.Respond(w, r, pages.MissingFields(missing.Fields))

	case relay.StatusCode(err) == http.StatusBadRequest:
		reqLogger.Warn("invalid access", slog.String("error", err.Error()))
		s.errorPages.Respond(w, r, pages.InvalidAccess())

	default:
		reqLogger.Error("failed to render page", slog.String("error", err.Error()))
		s.errorPages.Respond(w, r, pages.Internal())
	}
}
