package middleware

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
)

// ContextKey is a private type for request context keys.
type ContextKey string

// AccountCtxKey holds the *entity.Account resolved by JWTAuth.
const AccountCtxKey = ContextKey("account")

func WithAccount(ctx context.Context, acc *entity.Account) context.Context {
	return context.WithValue(ctx, AccountCtxKey, acc)
}

// AccountFromContext returns the authenticated account, if any.
func AccountFromContext(ctx context.Context) (*entity.Account, bool) {
	acc, ok := ctx.Value(AccountCtxKey).(*entity.Account)
	return acc, ok && acc != nil
}
