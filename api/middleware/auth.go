package middleware

import (
	"net/http"
	"strings"

	"github.com/luminaretail/orders-backend/api/responses"
	pkgauth "github.com/luminaretail/orders-backend/pkg/auth"
	"github.com/luminaretail/orders-backend/pkg/config"
	pkgerrors "github.com/luminaretail/orders-backend/pkg/errors"
	"github.com/luminaretail/orders-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// claims. Session lifecycle itself is owned by the upstream auth service;
// only the token shape and signature are checked here.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithAdminID(r.Context(), claims.AdminID.String())
			ctx = WithBranch(ctx, claims.Branch)
			ctx = WithRole(ctx, string(claims.Role))

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"admin_id":   claims.AdminID.String(),
					"branch":     claims.Branch,
					"actor_role": string(claims.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
