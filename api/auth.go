package api

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/showcasehub/backend/errs"
	"github.com/showcasehub/backend/services"
)

type authMiddleware struct {
	responder Responder
	tokens    *services.TokenService
}

func newAuthMiddleware(tokens *services.TokenService) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		responder: NewResponder(logger),
		tokens:    tokens,
	}
}

// authenticate verifies the bearer access token and puts its claims on the
// request context.
func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			m.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := m.tokens.ParseAccess(tokenStr)
		if err != nil {
			m.responder.WriteError(w, err)
			return
		}

		updatedReq := r.WithContext(ctxWithClaims(r.Context(), claims))
		next.ServeHTTP(w, updatedReq)
	})
}

// requireRole gates a route on the token's role claim being in the allowed
// set. Must run after authenticate.
func (m authMiddleware) requireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := ctxGetClaims(r.Context())
			if err != nil {
				m.responder.WriteError(w, errs.Unauthorized)
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			m.responder.WriteError(w, errs.NewInsufficientRoleError())
		})
	}
}
