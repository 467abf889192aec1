package middleware

import (
	"context"
	"net/http"
	"strings"

	"sentimark/internal/service"
)

type contextKey string

const EditorIDKey contextKey = "editorId"

// AuthMiddleware attaches an editor identity from a bearer token when one is
// present. The console is a single-operator tool, so requests without a
// token are served anonymously rather than rejected.
type AuthMiddleware struct {
	authSvc *service.AuthService
}

func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// Identify resolves the editor id from the Authorization header, if any.
func (m *AuthMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, `{"detail":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), EditorIDKey, claims.EditorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetEditorID extracts the editor id from context, empty when anonymous.
func GetEditorID(ctx context.Context) string {
	if v := ctx.Value(EditorIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
