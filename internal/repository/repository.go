package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Общие ошибки репозиториев.
var (
	ErrNotFound       = errors.New("запись не найдена")
	ErrUsernameExists = errors.New("имя пользователя уже занято")
	ErrEmailExists    = errors.New("email уже зарегистрирован")
)

// Querier — подмножество pgxpool.Pool, достаточное для репозиториев.
// Позволяет подменять пул на pgxmock в тестах.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
