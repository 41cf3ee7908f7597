package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/showcasehub/backend/errs"
	"github.com/showcasehub/backend/models"
)

// Claims is the payload embedded in both access and refresh tokens.
type Claims struct {
	UserID   uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the short-lived access token and the
// longer-lived refresh token. Both are stateless signed JWTs; there is no
// server-side token store and no revocation list.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *TokenService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

func (s *TokenService) sign(user *models.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// IssueAccess signs a short-lived access token for the user.
func (s *TokenService) IssueAccess(user *models.User) (string, error) {
	return s.sign(user, s.accessSecret, s.accessTTL)
}

// IssueRefresh signs a long-lived refresh token for the user.
func (s *TokenService) IssueRefresh(user *models.User) (string, error) {
	return s.sign(user, s.refreshSecret, s.refreshTTL)
}

func (s *TokenService) parse(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errs.NewExpiredTokenError()
		}
		return nil, errs.NewInvalidTokenError()
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errs.NewInvalidTokenError()
	}
	return claims, nil
}

// ParseAccess verifies an access token and returns its claims.
func (s *TokenService) ParseAccess(tokenStr string) (*Claims, error) {
	return s.parse(tokenStr, s.accessSecret)
}

// ParseRefresh verifies a refresh token and returns its claims.
func (s *TokenService) ParseRefresh(tokenStr string) (*Claims, error) {
	return s.parse(tokenStr, s.refreshSecret)
}
