package audithandler

import (
	"encoding/csv"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salarydash/internal/domain/audit"
	"salarydash/internal/domain/auth"
	"salarydash/internal/transport/http/api"
	"salarydash/internal/transport/http/middleware"
	"salarydash/internal/transport/http/shared"
)

type Handler struct {
	Recorder *audit.Recorder
}

func NewHandler(recorder *audit.Recorder) *Handler {
	return &Handler{Recorder: recorder}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/activity", func(r chi.Router) {
		r.Use(middleware.RequirePermission(auth.PermActivityRead))
		r.Get("/", h.handleListActivity)
		r.Get("/export", h.handleExportActivity)
	})
}

func filterFromQuery(r *http.Request) audit.Filter {
	return audit.Filter{
		Action:   r.URL.Query().Get("action"),
		Username: r.URL.Query().Get("username"),
	}
}

func (h *Handler) handleListActivity(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePage(r, 100, 500)
	entries, total, err := h.Recorder.List(r.Context(), filterFromQuery(r), page.Limit, page.Offset)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	shared.SetTotal(w, total)
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportActivity(w http.ResponseWriter, r *http.Request) {
	entries, _, err := h.Recorder.List(r.Context(), filterFromQuery(r), 0, 0)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=activity-log.csv")
	writer := csv.NewWriter(w)
	if err := writer.Write(audit.Header); err != nil {
		slog.Warn("activity export header failed", "err", err)
	}
	for _, entry := range entries {
		if err := writer.Write([]string{entry.Username, entry.Action, entry.Timestamp}); err != nil {
			slog.Warn("activity export row failed", "err", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.Warn("activity export flush failed", "err", err)
	}
}
