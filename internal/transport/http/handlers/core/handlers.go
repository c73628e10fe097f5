package corehandler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"salarydash/internal/domain/auth"
	"salarydash/internal/domain/core"
	"salarydash/internal/transport/http/api"
	"salarydash/internal/transport/http/middleware"
	"salarydash/internal/transport/http/shared"
)

type Handler struct {
	Service *core.Service
}

func NewHandler(service *core.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/", h.handleListEmployees)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite)).Post("/", h.handleCreateEmployee)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite)).Delete("/{name}", h.handleDeleteEmployee)
	})
	r.With(middleware.RequirePermission(auth.PermAdvancesWrite)).Post("/advances", h.handleCreateAdvance)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSession(r.Context())
	employees, err := h.Service.ListEmployees(r.Context(), session)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	shared.SetTotal(w, len(employees))
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload core.Employee
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	payload.Name = strings.TrimSpace(payload.Name)
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, requestID) {
		return
	}

	session, _ := middleware.GetSession(r.Context())
	if err := h.Service.AddEmployee(r.Context(), session, payload); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Created(w, payload, requestID)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSession(r.Context())
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{
			{Field: "name", Reason: "Employee name is not a valid path segment"},
		})
		return
	}
	if err = h.Service.DeleteEmployee(r.Context(), session, name); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, map[string]string{"deleted": name}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateAdvance(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload core.Advance
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	payload.Name = strings.TrimSpace(payload.Name)
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, requestID) {
		return
	}

	session, _ := middleware.GetSession(r.Context())
	if err := h.Service.AddAdvance(r.Context(), session, payload); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Created(w, payload, requestID)
}
