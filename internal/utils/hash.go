package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost 10 — баланс между стойкостью и задержкой ответа.
const passwordHashCost = 10

// HashPassword хеширует пароль (соль генерируется внутри bcrypt).
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("пустой пароль")
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash сверяет пароль с хешем. Несовпадение — это false, не ошибка.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
