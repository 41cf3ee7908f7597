package api

import (
	"context"
	"errors"

	"github.com/showcasehub/backend/services"
)

type keyType string

const claimsKey keyType = "claims"

// ctxWithClaims adds verified token claims to the context
func ctxWithClaims(ctx context.Context, claims *services.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ctxGetClaims retrieves verified token claims from the context
func ctxGetClaims(ctx context.Context) (*services.Claims, error) {
	ctxValue := ctx.Value(claimsKey)
	if ctxValue == nil {
		return nil, errors.New("claims not found in context")
	}
	claims, ok := ctxValue.(*services.Claims)
	if !ok {
		return nil, errors.New("value is not of type `*services.Claims`")
	}
	return claims, nil
}
