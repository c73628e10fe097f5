package middleware

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/httplog/v3"
)

// RequestLogger emits one ECS formatted record per request and tags it with
// the request id and, when signed in, the username.
func RequestLogger(logger *slog.Logger, level slog.Level) func(http.Handler) http.Handler {
	logRequest := httplog.RequestLogger(logger, &httplog.Options{
		Level:  level,
		Schema: httplog.SchemaECS,
		Skip: func(r *http.Request, status int) bool {
			return status < http.StatusBadRequest && (r.URL.Path == "/healthz" || r.URL.Path == "/readyz")
		},
	})
	return func(next http.Handler) http.Handler {
		tag := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attrs := []slog.Attr{slog.String("requestId", GetRequestID(r.Context()))}
			if session, ok := GetSession(r.Context()); ok {
				attrs = append(attrs, slog.String("user", session.Username))
			}
			httplog.SetAttrs(r.Context(), attrs...)
			next.ServeHTTP(w, r)
		})
		return logRequest(tag)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
