package handlers

import (
	"bizdash/internal/config"
	"bizdash/internal/logger"
	"bizdash/internal/services"
	"bizdash/internal/utils"
	helpers "bizdash/internal/utils/helpers"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
	env         string
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		env:         cfg.Env,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Description Создаёт пользователя и сразу выставляет сессионную cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param input body registerRequest true "Данные регистрации"
// @Success 201 {object} models.PublicUser
// @Failure 400 {object} helpers.Response
// @Failure 409 {object} helpers.Response
// @Router /api/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в Register", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		log.Warn("Неполные данные в Register")
		helpers.Error(w, http.StatusBadRequest, "missing username, email, or password")
		return
	}

	user, token, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken):
			log.Warn("Конфликт при регистрации", zap.String("username", req.Username), zap.Error(err))
			helpers.Error(w, http.StatusConflict, err.Error())
		default:
			log.Error("Ошибка регистрации пользователя", zap.Error(err))
			helpers.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	utils.SetAuthCookie(w, token, h.authService.SessionTTL(), h.env)

	log.Info("Пользователь зарегистрирован", zap.Int("user_id", user.ID), zap.String("username", user.Username))
	helpers.JSON(w, http.StatusCreated, user.Public())
}

// Login godoc
// @Summary Вход по логину и паролю
// @Description Неизвестный логин и неверный пароль дают одинаковый ответ.
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Данные для входа"
// @Success 200 {object} loginResponse
// @Failure 400 {object} helpers.Response
// @Failure 401 {object} helpers.Response
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в Login", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Username == "" || req.Password == "" {
		log.Warn("Неполные данные в Login")
		helpers.Error(w, http.StatusBadRequest, "missing username or password")
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn("Неудачный вход", zap.String("username", req.Username))
			helpers.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		log.Error("Ошибка входа", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.SetAuthCookie(w, token, h.authService.SessionTTL(), h.env)

	log.Info("Вход выполнен", zap.Int("user_id", user.ID), zap.String("username", user.Username))
	helpers.JSON(w, http.StatusOK, loginResponse{ID: user.ID, Username: user.Username})
}

// Logout godoc
// @Summary Выход (очистка сессионной cookie)
// @Description Идемпотентен: повторный вызов тоже вернёт 200.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	utils.ClearAuthCookie(w, h.env)
	logger.WithCtx(r.Context()).Info("Выход выполнен")
	helpers.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
