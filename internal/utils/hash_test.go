package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("ошибка хеширования: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("пароль сохранён открытым текстом")
	}

	if !CheckPasswordHash("secret123", hash) {
		t.Fatal("верный пароль не прошёл проверку")
	}
	if CheckPasswordHash("wrongpass", hash) {
		t.Fatal("неверный пароль прошёл проверку")
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatal("ожидалась ошибка для пустого пароля")
	}
}
