package service

import (
	"context"

	"github.com/carspot/backend/internal/model"
)

type identityKey struct{}

// WithIdentity attaches the resolved user to a request context.
func WithIdentity(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, identityKey{}, user)
}

func IdentityFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(identityKey{}).(*model.User)
	return user, ok && user != nil
}

// RequireRole passes when the identity holds one of roles.
func RequireRole(user *model.User, roles ...model.Role) error {
	if user == nil {
		return ErrUnauthenticated
	}
	for _, role := range roles {
		if user.Role == role {
			return nil
		}
	}
	return ErrInsufficientRole
}

// RequireOwner passes when the identity created the resource.
func RequireOwner(user *model.User, ownerID int64) error {
	if user == nil {
		return ErrUnauthenticated
	}
	if user.ID != ownerID {
		return ErrNotOwner
	}
	return nil
}
