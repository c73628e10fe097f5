package payrollhandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"salarydash/internal/domain/auth"
	"salarydash/internal/domain/core"
	"salarydash/internal/domain/payroll"
	"salarydash/internal/platform/metrics"
	"salarydash/internal/transport/http/api"
	"salarydash/internal/transport/http/middleware"
	"salarydash/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
	Core    *core.Service
	Metrics *metrics.Collector
}

func NewHandler(service *payroll.Service, coreService *core.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Core: coreService, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/months", h.handleListMonths)
		r.Route("/months/{month}", func(r chi.Router) {
			r.Use(requireMonth)
			r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/", h.handleDashboard)
			r.With(middleware.RequirePermission(auth.PermPayrollExport)).Get("/export", h.handleExport)
			r.With(middleware.RequirePermission(auth.PermPayrollSnapshot)).Post("/snapshot", h.handleSnapshot)
			r.With(middleware.RequirePermission(auth.PermInputsWrite)).Post("/inputs", h.handleRecordInput)
		})
	})
}

// requireMonth rejects month labels outside Jan to Dec before any store access.
func requireMonth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !payroll.ValidMonth(chi.URLParam(r, "month")) {
			shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{
				{Field: "month", Reason: "Month must be one of " + strings.Join(payroll.Months, ", ")},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) handleListMonths(w http.ResponseWriter, r *http.Request) {
	api.Success(w, payroll.Months, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSession(r.Context())
	month := chi.URLParam(r, "month")
	dashboard, err := h.Service.Dashboard(r.Context(), session, month, r.URL.Query().Get("search"))
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, dashboard, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = payroll.FormatPDF
	}
	v := shared.NewValidator()
	v.Enum("format", format, []string{payroll.FormatPDF, payroll.FormatXLSX}, "Format must be pdf or xlsx")
	if v.Reject(w, requestID) {
		return
	}

	session, _ := middleware.GetSession(r.Context())
	file, err := h.Service.Export(r.Context(), session, chi.URLParam(r, "month"), r.URL.Query().Get("search"), format)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Metrics.Inc("export." + format)
	api.Attachment(w, file.ContentType, file.FileName, file.Body)
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSession(r.Context())
	month := chi.URLParam(r, "month")
	rows, err := h.Service.SaveSnapshot(r.Context(), session, month)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Metrics.Inc("snapshot")
	shared.SetTotal(w, rows)
	api.Created(w, map[string]any{"month": month, "rows": rows}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRecordInput(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var entry core.PeriodEntry
	if !shared.DecodeJSON(w, r, &entry, requestID) {
		return
	}
	entry.Month = chi.URLParam(r, "month")
	entry.Name = strings.TrimSpace(entry.Name)
	v := shared.NewValidator()
	v.Struct(entry)
	if v.Reject(w, requestID) {
		return
	}

	session, _ := middleware.GetSession(r.Context())
	if err := h.Core.RecordWorkingDays(r.Context(), session, entry); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Created(w, entry, requestID)
}
