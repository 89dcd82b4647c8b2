package middleware

import (
	"bizdash/internal/logger"
	"bizdash/internal/models"
	"bizdash/internal/reqctx"
	"bizdash/internal/utils"
	"bizdash/internal/utils/helpers"
	"context"
	"net/http"

	"go.uber.org/zap"
)

// SessionResolver — резолвер текущего пользователя по сессионному токену.
type SessionResolver interface {
	ResolveUser(ctx context.Context, token string) (*models.User, error)
}

// SessionAuth читает cookie `auth`, проверяет подпись токена и наличие
// пользователя в базе. Проверка только на присутствие cookie не годится —
// такую cookie тривиально подделать.
func SessionAuth(resolver SessionResolver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		cookie, err := r.Cookie(utils.AuthCookieName)
		if err != nil || cookie.Value == "" {
			logger.WithCtx(r.Context()).Warn("SessionAuth: отсутствует auth cookie")
			helpers.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		user, err := resolver.ResolveUser(r.Context(), cookie.Value)
		if err != nil {
			logger.WithCtx(r.Context()).Warn("SessionAuth: невалидная сессия", zap.Error(err))
			helpers.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), ContextUserID, user.ID)
		ctx = reqctx.WithUserID(ctx, user.ID)

		logger.WithCtx(ctx).Debug("SessionAuth: сессия валидна", zap.Int("user_id", user.ID))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
