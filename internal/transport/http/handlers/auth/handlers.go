package authhandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"salarydash/internal/domain/audit"
	"salarydash/internal/domain/auth"
	"salarydash/internal/transport/http/api"
	"salarydash/internal/transport/http/middleware"
	"salarydash/internal/transport/http/shared"
)

type Handler struct {
	Gate     *auth.Gate
	Secret   string
	TokenTTL time.Duration
	Activity *audit.Recorder
	// LoginLimit wraps the login route; nil leaves it unthrottled.
	LoginLimit func(http.Handler) http.Handler
}

func NewHandler(gate *auth.Gate, secret string, ttl time.Duration, activity *audit.Recorder) *Handler {
	return &Handler{Gate: gate, Secret: secret, TokenTTL: ttl, Activity: activity}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		login := r.With()
		if h.LoginLimit != nil {
			login = r.With(h.LoginLimit)
		}
		login.Post("/login", h.handleLogin)
		r.With(middleware.RequireSession).Post("/logout", h.handleLogout)
		r.With(middleware.RequireSession).Get("/me", h.handleMe)
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Session   auth.Session `json:"session"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	v := shared.NewValidator()
	v.Required("username", payload.Username, "Username is required")
	v.Required("password", payload.Password, "Password is required")
	if v.Reject(w, requestID) {
		return
	}

	session, err := h.Gate.Authenticate(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Info("login rejected", "user", strings.TrimSpace(payload.Username), "requestId", requestID)
		}
		shared.WriteError(w, r, err)
		return
	}

	expiresAt := time.Now().Add(h.TokenTTL).UTC()
	token, err := auth.GenerateToken(h.Secret, session, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestID)
		return
	}
	h.Activity.Record(r.Context(), session.Username, audit.ActionLogin)
	api.Success(w, loginResponse{Token: token, ExpiresAt: expiresAt, Session: session}, requestID)
}

// Tokens are stateless; logout only records the event.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSession(r.Context())
	h.Activity.Record(r.Context(), session.Username, audit.ActionLogout)
	api.Success(w, map[string]bool{"loggedOut": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSession(r.Context())
	api.Success(w, map[string]any{
		"session":     session,
		"permissions": auth.RolePermissions[session.Role],
	}, middleware.GetRequestID(r.Context()))
}
