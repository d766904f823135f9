package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"passauth/internal/apperrors"
	"passauth/internal/config"
	"passauth/internal/logger"
	"passauth/internal/middleware"
	"passauth/internal/models"
	"passauth/internal/repository"
	"passauth/internal/services"
	"passauth/internal/utils"
	helpers "passauth/internal/utils/helpers"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService  *services.AuthService
	tokenService *services.TokenService
	sessions     *repository.SessionRepository
	cfg          *config.Config

	resendMu   sync.Mutex
	lastResend map[string]time.Time
}

func NewAuthHandler(
	authService *services.AuthService,
	tokenService *services.TokenService,
	sessions *repository.SessionRepository,
	cfg *config.Config,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
		sessions:     sessions,
		cfg:          cfg,
		lastResend:   make(map[string]time.Time),
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	SessionToken string                      `json:"session_token"`
	User         *models.UserProfileResponse `json:"user"`
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Description Создаёт неподтверждённый аккаунт и отправляет письмо со ссылкой подтверждения.
// @Tags auth
// @Accept json
// @Produce json
// @Param input body registerRequest true "Данные регистрации"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 409 {object} map[string]string "Email уже зарегистрирован"
// @Router /api/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка декодирования JSON в Register", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	logger.WithCtx(r.Context()).Info("Регистрация пользователя", zap.String("email_masked", maskEmail(req.Email)))

	user, err := h.authService.RegisterUser(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка регистрации пользователя", zap.Error(err))
		helpers.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	_ = h.SendVerificationEmail(r.Context(), user)

	helpers.JSON(w, http.StatusCreated, map[string]string{
		"message": "Пользователь успешно зарегистрирован. Проверьте вашу почту для подтверждения.",
	})
}

// Login godoc
// @Summary Вход по e-mail и паролю
// @Description Проверяет учётные данные (включая гейт подтверждения почты) и устанавливает сессию.
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Данные для входа"
// @Success 200 {object} loginResponse
// @Failure 401 {object} map[string]string "Неверные учётные данные"
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка декодирования JSON в Login", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	logger.WithCtx(r.Context()).Info("Попытка входа", zap.String("email_masked", maskEmail(req.Email)))

	user, err := h.authService.VerifyLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		helpers.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	sessionTTL, parseErr := time.ParseDuration(h.cfg.SessionTTL)
	if parseErr != nil {
		sessionTTL = 24 * time.Hour
	}

	sid := uuid.New().String()
	if err := h.sessions.SaveSession(r.Context(), sid, user.ID, sessionTTL); err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка сохранения сессии", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	sessionToken, err := utils.GenerateSessionToken(h.cfg.SessionSecret, user.ID, sid, sessionTTL)
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка генерации токена сессии", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sessionToken,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	logger.WithCtx(r.Context()).Info("Вход выполнен", zap.String("user_id", user.ID))
	helpers.JSON(w, http.StatusOK, loginResponse{
		SessionToken: sessionToken,
		User:         user.Profile(),
	})
}

// Logout godoc
// @Summary Выход (инвалидация сессии)
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string "Невалидная сессия"
// @Router /api/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sid, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Невалидная сессия")
		return
	}

	if err := h.sessions.DeleteSession(r.Context(), sid); err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка удаления сессии", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	logger.WithCtx(r.Context()).Info("Выход пользователя")
	helpers.JSON(w, http.StatusOK, map[string]string{"message": "Выход выполнен"})
}

// Profile godoc
// @Summary Профиль текущего пользователя
// @Tags profile
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.UserProfileResponse
// @Failure 401 {object} map[string]string "Нет доступа"
// @Router /api/profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		helpers.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	helpers.JSON(w, http.StatusOK, user.Profile())
}

// SendVerificationEmail выпускает токен подтверждения и ставит письмо в очередь.
// Сбой доставки не откатывает токен: ссылка останется рабочей.
func (h *AuthHandler) SendVerificationEmail(ctx context.Context, user *models.User) error {
	issued, err := h.tokenService.Issue(ctx, models.PurposeVerification, user.ID, user.Email, h.cfg.VerifyTokenTTL())
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка выпуска токена подтверждения", zap.Error(err), zap.String("user_id", user.ID))
		return err
	}

	link := fmt.Sprintf("%s/api/verify-email?token=%s", h.cfg.BaseURL, issued.Raw)
	services.EmailQueue <- services.EmailJob{
		To:           []string{user.Email},
		Subject:      "Подтверждение почты",
		Body:         helpers.BuildVerificationHTML(user.Name, link),
		IsHTML:       true,
		FallbackLink: link,
	}

	return nil
}

func maskEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 1 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
