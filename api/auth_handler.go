package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/showcasehub/backend/database"
	"github.com/showcasehub/backend/errs"
	"github.com/showcasehub/backend/models"
	"github.com/showcasehub/backend/services"
)

const (
	refreshCookieName  = "refreshToken"
	loggedInCookieName = "isLoggedIn"
)

type authHandler struct {
	responder     Responder
	logger        zerolog.Logger
	userRepo      *database.UserRepo
	tokens        *services.TokenService
	secureCookies bool
}

func newAuthHandler(userRepo *database.UserRepo, tokens *services.TokenService, secureCookies bool) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		userRepo:      userRepo,
		tokens:        tokens,
		secureCookies: secureCookies,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// register creates a new account. Self-registration always yields a student;
// only a caller bearing a valid admin token may pick the role.
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("register payload"))
			return
		}

		if req.Name == "" || req.Username == "" || req.Password == "" {
			h.responder.WriteError(w, errs.BadRequest("name, username and password are required"))
			return
		}

		role := req.Role
		if role == "" {
			role = models.RoleStudent
		}
		if !models.ValidRole(role) {
			h.responder.WriteError(w, errs.BadRequest("invalid role, must be admin or student"))
			return
		}
		if role != models.RoleStudent && !h.callerIsAdmin(r) {
			role = models.RoleStudent
		}

		existing, err := h.userRepo.FindByUsername(req.Username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.BadRequest("username already exists"))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user := models.User{
			Name:         req.Name,
			Username:     req.Username,
			PasswordHash: string(hash),
			Role:         role,
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create user", "user", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]any{
			"message": "User registered successfully",
			"user":    user,
		})
	}
}

// callerIsAdmin reports whether the request carries a valid access token with
// the admin role. Registration stays open to anonymous callers, so a missing
// or invalid token is not an error here.
func (h authHandler) callerIsAdmin(r *http.Request) bool {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return false
	}
	claims, err := h.tokens.ParseAccess(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return false
	}
	return claims.Role == models.RoleAdmin
}

// refresh mints a new access token from a valid refresh-token cookie. The
// account must still exist; deleted users cannot keep refreshing.
func (h authHandler) refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(refreshCookieName)
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		claims, err := h.tokens.ParseRefresh(cookie.Value)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByID(claims.UserID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("user no longer exists"))
			return
		}

		accessToken, err := h.tokens.IssueAccess(user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"accessToken": accessToken,
		})
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login verifies credentials, returns the access token in the body and sets
// the refresh-token and logged-in-flag cookies. No cookies are set on
// failure.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("login payload"))
			return
		}

		user, err := h.userRepo.FindByUsername(req.Username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("user not found"))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		accessToken, err := h.tokens.IssueAccess(user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		refreshToken, err := h.tokens.IssueRefresh(user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		maxAge := int(h.tokens.RefreshTTL().Seconds())
		http.SetCookie(w, &http.Cookie{
			Name:     refreshCookieName,
			Value:    refreshToken,
			Path:     "/",
			MaxAge:   maxAge,
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteStrictMode,
		})
		// Readable by the client for UI branching, so deliberately not
		// HttpOnly. Carries no secret.
		http.SetCookie(w, &http.Cookie{
			Name:     loggedInCookieName,
			Value:    "true",
			Path:     "/",
			MaxAge:   maxAge,
			HttpOnly: false,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteStrictMode,
		})

		h.responder.WriteJSON(w, map[string]any{
			"message":     "Login successful",
			"userData":    user,
			"accessToken": accessToken,
		})
	}
}
