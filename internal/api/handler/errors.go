package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/staffdir/internal/api/apierr"
	"github.com/mcoot/staffdir/internal/middleware"
)

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// writeError writes err, logging anything that maps to a 500 since the
// client only sees a generic message
func writeError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if apierr.Status(err) >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	apierr.WriteError(w, err)
}
