package utils

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("mysecret", 42, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}

	userID, err := ParseSessionToken("mysecret", token)
	if err != nil {
		t.Fatalf("ошибка разбора токена: %v", err)
	}
	if userID != 42 {
		t.Fatalf("ожидался user_id=42, получен %d", userID)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := GenerateSessionToken("mysecret", 1, time.Hour)
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}

	if _, err := ParseSessionToken("othersecret", token); err == nil {
		t.Fatal("токен с чужой подписью принят")
	}
}

func TestSessionTokenExpired(t *testing.T) {
	// Отрицательная длительность — exp уже в прошлом
	token, err := GenerateSessionToken("mysecret", 1, -time.Minute)
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}

	if _, err := ParseSessionToken("mysecret", token); err == nil {
		t.Fatal("просроченный токен принят")
	}
}

func TestSessionTokenGarbage(t *testing.T) {
	if _, err := ParseSessionToken("mysecret", "not-a-jwt"); err == nil {
		t.Fatal("мусорная строка принята как токен")
	}
}
