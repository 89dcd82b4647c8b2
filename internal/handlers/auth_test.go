package handlers

import (
	"bizdash/internal/config"
	"bizdash/internal/logger"
	"bizdash/internal/models"
	"bizdash/internal/repository"
	"bizdash/internal/services"
	"bizdash/internal/utils"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	m.Run()
}

type memUserRepo struct {
	users  map[string]*models.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User), nextID: 1}
}

func (m *memUserRepo) IsUsernameTaken(_ context.Context, username string) (bool, error) {
	_, exists := m.users[username]
	return exists, nil
}

func (m *memUserRepo) IsEmailTaken(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.Username] = user
	return nil
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) GetUserByID(_ context.Context, id int) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) GetByResetToken(_ context.Context, _ string) (*models.User, error) {
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) SetResetToken(_ context.Context, _ int, _ string, _ time.Time) error {
	return nil
}

func (m *memUserRepo) UpdatePasswordAndClearReset(_ context.Context, _ int, _ string) error {
	return nil
}

func newTestAuthHandler() *AuthHandler {
	cfg := &config.Config{
		JWTSecret:        "testsecret",
		SessionTTL:       "168h",
		ResetTokenTTLMin: "30",
		Env:              "dev",
	}
	return NewAuthHandler(services.NewAuthService(newMemUserRepo(), cfg), cfg)
}

func authCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == utils.AuthCookieName {
			return c
		}
	}
	return nil
}

func TestRegisterLoginFlow(t *testing.T) {
	handler := newTestAuthHandler()

	// Регистрация
	rec := httptest.NewRecorder()
	body := `{"username":"alice","email":"alice@example.com","password":"secret123"}`
	handler.Register(rec, httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("регистрация: ожидался 201, получен %d (%s)", rec.Code, rec.Body.String())
	}
	cookie := authCookie(t, rec)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("регистрация не выставила сессионную cookie")
	}
	if !cookie.HttpOnly {
		t.Fatal("сессионная cookie должна быть HttpOnly")
	}

	var regResp struct {
		Data models.PublicUser `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &regResp); err != nil {
		t.Fatalf("невалидный JSON ответа: %v", err)
	}
	if regResp.Data.Username != "alice" || regResp.Data.ID == 0 {
		t.Fatalf("неожиданное тело ответа: %+v", regResp.Data)
	}

	// Вход с неверным паролем
	rec = httptest.NewRecorder()
	handler.Login(rec, httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"username":"alice","password":"wrongpass"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("неверный пароль: ожидался 401, получен %d", rec.Code)
	}

	// Вход с верным паролем
	rec = httptest.NewRecorder()
	handler.Login(rec, httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"username":"alice","password":"secret123"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("вход: ожидался 200, получен %d (%s)", rec.Code, rec.Body.String())
	}
	if c := authCookie(t, rec); c == nil || c.Value == "" {
		t.Fatal("вход не выставил сессионную cookie")
	}

	var loginResp struct {
		Data loginResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("невалидный JSON ответа: %v", err)
	}
	if loginResp.Data.ID != regResp.Data.ID || loginResp.Data.Username != "alice" {
		t.Fatalf("тело входа не совпало с регистрацией: %+v", loginResp.Data)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	handler := newTestAuthHandler()

	rec := httptest.NewRecorder()
	handler.Register(rec, httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"username":"alice"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("ожидался 400, получен %d", rec.Code)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	handler := newTestAuthHandler()

	body := `{"username":"alice","email":"alice@example.com","password":"secret123"}`
	rec := httptest.NewRecorder()
	handler.Register(rec, httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("первая регистрация: ожидался 201, получен %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.Register(rec, httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("повторная регистрация: ожидался 409, получен %d", rec.Code)
	}
}

func TestLogout(t *testing.T) {
	handler := newTestAuthHandler()

	rec := httptest.NewRecorder()
	handler.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/logout", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получен %d", rec.Code)
	}
	c := authCookie(t, rec)
	if c == nil || c.Value != "" || c.MaxAge >= 0 {
		t.Fatal("выход не очистил сессионную cookie")
	}
}
