package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/pechorka/tokenkeeper/internal/handler/internal/respond"
)

type ctxKey int

const (
	ctxKeyAccess ctxKey = iota
	ctxKeyRefresh
)

const (
	bearerPrefix  = "Bearer "
	RefreshHeader = "refresh"
)

// Tokens requires a bearer access token and a refresh header and puts both
// into the request context.
func Tokens(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) || len(authHeader) == len(bearerPrefix) {
			respond.ErrorWithMessage(w, http.StatusUnauthorized, respond.CODE_UNAUTHORIZED, "missing bearer token")
			return
		}
		refresh := r.Header.Get(RefreshHeader)
		if refresh == "" {
			respond.ErrorWithMessage(w, http.StatusUnauthorized, respond.CODE_UNAUTHORIZED, "missing refresh token")
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyAccess, authHeader[len(bearerPrefix):])
		ctx = context.WithValue(ctx, ctxKeyRefresh, refresh)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func AccessToken(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyAccess).(string)
	return v
}

func RefreshToken(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRefresh).(string)
	return v
}
