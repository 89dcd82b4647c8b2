package middleware

import (
	"bizdash/internal/logger"
	"bizdash/internal/models"
	"bizdash/internal/utils"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	m.Run()
}

type fakeResolver struct {
	user *models.User
	err  error
	seen string
}

func (f *fakeResolver) ResolveUser(_ context.Context, token string) (*models.User, error) {
	f.seen = token
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func TestSessionAuthNoCookie(t *testing.T) {
	called := false
	handler := SessionAuth(&fakeResolver{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/checkins", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("без cookie ожидался 401, получен %d", rec.Code)
	}
	if called {
		t.Fatal("следующий хендлер не должен вызываться")
	}
}

func TestSessionAuthInvalidToken(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("unauthorized")}
	handler := SessionAuth(resolver, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("следующий хендлер не должен вызываться")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/checkins", nil)
	req.AddCookie(&http.Cookie{Name: utils.AuthCookieName, Value: "forged"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("с невалидным токеном ожидался 401, получен %d", rec.Code)
	}
	if resolver.seen != "forged" {
		t.Fatalf("резолвер получил не тот токен: %q", resolver.seen)
	}
}

func TestSessionAuthValid(t *testing.T) {
	resolver := &fakeResolver{user: &models.User{ID: 7, Username: "alice"}}

	var gotID int
	var ok bool
	handler := SessionAuth(resolver, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, ok = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/checkins", nil)
	req.AddCookie(&http.Cookie{Name: utils.AuthCookieName, Value: "valid-token"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("с валидной сессией ожидался 200, получен %d", rec.Code)
	}
	if !ok || gotID != 7 {
		t.Fatalf("user_id не попал в контекст: %d (%v)", gotID, ok)
	}
}

func TestSessionAuthOptionsPassthrough(t *testing.T) {
	handler := SessionAuth(&fakeResolver{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight не должен доходить до хендлера")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/checkins", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("для OPTIONS ожидался 204, получен %d", rec.Code)
	}
}
