package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/showcasehub/backend/database"
	"github.com/showcasehub/backend/errs"
)

type userHandler struct {
	responder     Responder
	logger        zerolog.Logger
	userRepo      *database.UserRepo
	secureCookies bool
}

func newUserHandler(userRepo *database.UserRepo, secureCookies bool) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		userRepo:      userRepo,
		secureCookies: secureCookies,
	}
}

// me returns the authenticated caller's account.
func (h userHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := ctxGetClaims(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		user, err := h.userRepo.FindByID(claims.UserID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Current user fetched successfully",
			"user":    user,
		})
	}
}

// logout expires the session cookies. Tokens themselves stay valid until
// expiry; there is no server-side revocation.
func (h userHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     refreshCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteStrictMode,
		})
		http.SetCookie(w, &http.Cookie{
			Name:     loggedInCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: false,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteStrictMode,
		})

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "Successfully logged out",
		})
	}
}
