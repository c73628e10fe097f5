package shared

import (
	"errors"
	"log/slog"
	"net/http"

	"salarydash/internal/domain/auth"
	"salarydash/internal/domain/core"
	"salarydash/internal/domain/payroll"
	"salarydash/internal/platform/render"
	"salarydash/internal/platform/tables"
	"salarydash/internal/requestctx"
	"salarydash/internal/transport/http/api"
)

// WriteError maps a domain error onto the response envelope.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := requestctx.GetRequestID(r.Context())

	var schemaErr *payroll.SchemaError
	var connErr *tables.ConnectionError
	var renderErr *render.RenderError
	switch {
	case errors.As(err, &schemaErr):
		api.FailWithDetails(w, http.StatusUnprocessableEntity, "schema_error", schemaErr.Error(), map[string]string{
			"collection": schemaErr.Collection,
			"column":     schemaErr.Column,
			"employee":   string(schemaErr.Employee),
		}, requestID)
	case errors.As(err, &connErr):
		slog.Error("table store unavailable", "op", connErr.Op, "collection", connErr.Collection, "err", connErr.Err, "requestId", requestID)
		api.Fail(w, http.StatusBadGateway, "store_unavailable", "data store is unavailable", requestID)
	case errors.As(err, &renderErr):
		slog.Error("render failed", "format", renderErr.Format, "err", renderErr.Err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "render_failed", "report could not be generated", requestID)
	case errors.Is(err, auth.ErrUnauthenticated):
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
	case errors.Is(err, auth.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", requestID)
	case errors.Is(err, auth.ErrInvalidCredentials):
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestID)
	case errors.Is(err, core.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
	case errors.Is(err, core.ErrInvalidMonth):
		FailValidation(w, requestID, []ValidationIssue{{Field: "month", Reason: "Month must be one of Jan to Dec"}})
	case errors.Is(err, payroll.ErrUnknownFormat):
		FailValidation(w, requestID, []ValidationIssue{{Field: "format", Reason: "Format must be pdf or xlsx"}})
	default:
		slog.Error("request failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}
