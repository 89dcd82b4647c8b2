package services

import (
	"bizdash/internal/config"
	"bizdash/internal/logger"
	"bizdash/internal/models"
	"bizdash/internal/repository"
	"bizdash/internal/utils"
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	m.Run()
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "testsecret",
		SessionTTL:       "168h",
		ResetTokenTTLMin: "30",
	}
}

// Мок-репозиторий (заглушка)
type mockUserRepo struct {
	users  map[string]*models.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User), nextID: 1}
}

func (m *mockUserRepo) IsUsernameTaken(_ context.Context, username string) (bool, error) {
	_, exists := m.users[username]
	return exists, nil
}

func (m *mockUserRepo) IsEmailTaken(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *models.User) error {
	if _, exists := m.users[user.Username]; exists {
		return repository.ErrUsernameExists
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) GetByResetToken(_ context.Context, token string) (*models.User, error) {
	for _, u := range m.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) SetResetToken(_ context.Context, userID int, token string, expiry time.Time) error {
	for _, u := range m.users {
		if u.ID == userID {
			u.ResetToken = &token
			u.ResetTokenExpiry = &expiry
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockUserRepo) UpdatePasswordAndClearReset(_ context.Context, userID int, passwordHash string) error {
	for _, u := range m.users {
		if u.ID == userID {
			u.PasswordHash = passwordHash
			u.ResetToken = nil
			u.ResetTokenExpiry = nil
			return nil
		}
	}
	return repository.ErrNotFound
}

func TestRegister(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo, testConfig())

	user, token, err := service.Register(context.Background(), "alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("пользователю не присвоен ID")
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret123" {
		t.Fatal("пароль не захеширован")
	}

	// Выданный токен должен быть валидной сессией
	userID, err := utils.ParseSessionToken("testsecret", token)
	if err != nil {
		t.Fatalf("сессионный токен не разбирается: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("токен выдан на user_id=%d, ожидался %d", userID, user.ID)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo, testConfig())

	if _, _, err := service.Register(context.Background(), "alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	// Тот же username с другим email — конфликт по username
	_, _, err := service.Register(context.Background(), "alice", "other@example.com", "secret123")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("ожидалась ErrUsernameTaken, получено: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo, testConfig())

	if _, _, err := service.Register(context.Background(), "alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	_, _, err := service.Register(context.Background(), "bob", "alice@example.com", "secret123")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("ожидалась ErrEmailTaken, получено: %v", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo, testConfig())

	if _, _, err := service.Register(context.Background(), "alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	user, token, err := service.Login(context.Background(), "alice", "secret123")
	if err != nil {
		t.Fatalf("ошибка логина: %v", err)
	}
	if user.Username != "alice" || token == "" {
		t.Fatal("логин не вернул пользователя и токен")
	}
}

// Неизвестный логин и неверный пароль снаружи неразличимы.
func TestLoginInvalidCredentials(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo, testConfig())

	if _, _, err := service.Register(context.Background(), "alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	_, _, errUnknown := service.Login(context.Background(), "nobody", "secret123")
	_, _, errWrongPass := service.Login(context.Background(), "alice", "wrongpass")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("неизвестный логин: ожидалась ErrInvalidCredentials, получено %v", errUnknown)
	}
	if !errors.Is(errWrongPass, ErrInvalidCredentials) {
		t.Fatalf("неверный пароль: ожидалась ErrInvalidCredentials, получено %v", errWrongPass)
	}
	if errUnknown.Error() != errWrongPass.Error() {
		t.Fatal("ответы для неизвестного логина и неверного пароля различаются")
	}
}

func TestResolveUser(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo, testConfig())

	user, token, err := service.Register(context.Background(), "alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	resolved, err := service.ResolveUser(context.Background(), token)
	if err != nil {
		t.Fatalf("валидная сессия не разрешилась: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("разрешился не тот пользователь: %d", resolved.ID)
	}

	if _, err := service.ResolveUser(context.Background(), "garbage"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("мусорный токен: ожидалась ErrUnauthorized, получено %v", err)
	}
}

func TestResolveUserDeleted(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo, testConfig())

	user, token, err := service.Register(context.Background(), "alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	// Пользователь удалён после выдачи токена
	delete(repo.users, user.Username)

	if _, err := service.ResolveUser(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("токен удалённого пользователя: ожидалась ErrUnauthorized, получено %v", err)
	}
}
