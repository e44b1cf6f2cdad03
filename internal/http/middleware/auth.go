package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/muniatiende/reportes/internal/auth"
	"github.com/muniatiende/reportes/internal/http/respuesta"
)

type contextKey string

const (
	ContextKeyIdentity contextKey = "identity"
)

// Auth valida el JWT de acceso y deja la identidad resuelta en el contexto.
// La emisión del token vive en el proveedor de identidad externo; aquí solo
// se valida firma, vigencia y forma de los claims.
func Auth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeAuthError(w, http.StatusUnauthorized, "AUTH", "token ausente")
				return
			}

			claims, err := jwtManager.ParseAndValidate(parts[1])
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "AUTH", "token inválido")
				return
			}

			identity, err := auth.IdentityFromClaims(claims)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "AUTH", "claims inválidos")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity recupera la identidad del contexto.
func GetIdentity(ctx context.Context) (auth.Identity, bool) {
	val, ok := ctx.Value(ContextKeyIdentity).(auth.Identity)
	return val, ok
}

// WithIdentity inyecta una identidad en el contexto. Lo usan las pruebas.
func WithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, ContextKeyIdentity, identity)
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	respuesta.Error(w, status, code, message, nil)
}
