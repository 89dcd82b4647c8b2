package middleware

import "context"

type ctxKey string

const (
	ContextUserID    ctxKey = "user_id"
	ContextRequestID ctxKey = "request_id"
)

// UserIDFromContext достаёт ID текущего пользователя, положенный SessionAuth.
func UserIDFromContext(ctx context.Context) (int, bool) {
	v, ok := ctx.Value(ContextUserID).(int)
	return v, ok
}
