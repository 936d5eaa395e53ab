package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/reading-copilot/internal/auth"
	"github.com/heartmarshall/reading-copilot/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (auth.Identity, error)
}

// Auth resolves the bearer token into a user ID on the request context.
// Requests without a token pass through anonymously, or as devUser when it
// is not uuid.Nil. An invalid token is rejected with 401.
func Auth(validator tokenValidator, devUser uuid.UUID, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				if devUser != uuid.Nil {
					ctx := ctxutil.WithUserID(r.Context(), devUser)
					r = r.WithContext(ctx)
					reportUser(w, devUser.String())
				}
				next.ServeHTTP(w, r)
				return
			}

			id, err := validator.ValidateAccessToken(token)
			if err != nil {
				logger.DebugContext(r.Context(), "rejected access token", slog.String("error", err.Error()))
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := ctxutil.WithUserID(r.Context(), id.UserID)
			reportUser(w, id.UserID.String())
			if id.Role != "" {
				ctx = ctxutil.WithRole(ctx, id.Role)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
