package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"goldlink-backend/internal/authz"
	"goldlink-backend/internal/logger"
	"goldlink-backend/internal/security"
)

type contextKey string

const actorKey contextKey = "actor"

// actorFrom returns the authenticated actor, if any.
func actorFrom(ctx context.Context) (authz.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(authz.Actor)
	return actor, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		// Browsers cannot set headers on websocket upgrades.
		return r.URL.Query().Get("token")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// requireAuth rejects requests without a valid access token and stores the
// actor in the request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authorization required"})
			return
		}

		claims, err := s.tokens.ValidateToken(token)
		if err != nil {
			writeError(w, err)
			return
		}
		if claims.Type != security.TokenTypeAccess {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "access token required"})
			return
		}

		actor := authz.Actor{ID: claims.UserID, Role: claims.Role}
		next(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
	}
}

// optionalAuth attaches an actor when a valid token is present but lets
// anonymous requests through.
func (s *Server) optionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if claims, err := s.tokens.ValidateToken(token); err == nil && claims.Type == security.TokenTypeAccess {
				actor := authz.Actor{ID: claims.UserID, Role: claims.Role}
				r = r.WithContext(context.WithValue(r.Context(), actorKey, actor))
			}
		}
		next(w, r)
	}
}

// logRequests emits one line per request with method, path and latency.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("http request",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
