package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/vacinafacil/api/internal/auth"
)

type contextKey string

const (
	ContextKeySubject contextKey = "subject"
	ContextKeyName    contextKey = "name"
	ContextKeyRole    contextKey = "role"
)

// Auth valida o bearer token contra o papel exigido pela rota e injeta a
// identidade resolvida no contexto. As mensagens distinguem token ausente,
// expirado, inválido e papel incorreto.
func Auth(tm *auth.TokenManager, role auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := tm.RequireRole(bearerToken(r), role)
			if err != nil {
				writeAuthError(w, role, err)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySubject, identity.Subject)
			ctx = context.WithValue(ctx, ContextKeyName, identity.Name)
			ctx = context.WithValue(ctx, ContextKeyRole, identity.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthAny aceita token válido de qualquer um dos dois papéis (rotas de
// leitura compartilhadas).
func AuthAny(tm *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := tm.Classify(bearerToken(r))
			if err != nil {
				writeAuthError(w, "", err)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySubject, identity.Subject)
			ctx = context.WithValue(ctx, ContextKeyName, identity.Name)
			ctx = context.WithValue(ctx, ContextKeyRole, identity.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubject recupera o id do sujeito autenticado do contexto.
func GetSubject(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeySubject).(string)
	return val
}

// GetName recupera o nome exibido do sujeito autenticado.
func GetName(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeyName).(string)
	return val
}

// GetRole recupera o papel resolvido do contexto.
func GetRole(ctx context.Context) auth.Role {
	val, _ := ctx.Value(ContextKeyRole).(auth.Role)
	return val
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeAuthError(w http.ResponseWriter, role auth.Role, err error) {
	message := "Invalid token"
	switch {
	case errors.Is(err, auth.ErrTokenMissing):
		message = "Restricted access - Token missing"
	case errors.Is(err, auth.ErrTokenExpired):
		message = "Token expired"
	case errors.Is(err, auth.ErrWrongRole):
		if role == auth.RoleAdmin {
			message = "Restricted access - Admin only"
		} else {
			message = "Restricted access - User only"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
