package app

import (
	"context"
	"time"

	"passauth/internal/config"
	"passauth/internal/handlers"
	"passauth/internal/repository"
	"passauth/internal/routes"
	"passauth/internal/services"

	"github.com/gorilla/mux"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	// Реестры в памяти: сбрасываются при рестарте, персистентности нет
	userRepo := repository.NewUserRepository()
	tokenRepo := repository.NewTokenRepository()
	sessionRepo := repository.NewSessionRepository()

	// Сервисы
	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(tokenRepo)
	passwordService := services.NewPasswordService(userRepo, tokenService, cfg.ResetTokenTTL())
	emailService := services.NewEmailService(cfg)

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService, tokenService, sessionRepo, cfg)
	emailHandler := handlers.NewEmailHandler(authService, tokenService)
	passwordHandler := handlers.NewPasswordHandler(passwordService, cfg)

	// ▶️ Периодическая чистка просроченных токенов
	StartTokenSweeper(tokenService, cfg)

	// Запуск воркеров email
	for i := 0; i < 3; i++ {
		services.StartEmailWorker(emailService)
	}

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, cfg, sessionRepo, authHandler, emailHandler, passwordHandler)

	return router, nil
}

// StartTokenSweeper запускает тикер чистки. Для корректности чистка
// не обязательна (просрочка проверяется при каждом обращении),
// она лишь ограничивает рост стора.
func StartTokenSweeper(tokens *services.TokenService, cfg *config.Config) {
	interval, err := time.ParseDuration(cfg.SweepInterval)
	if err != nil || interval <= 0 {
		interval = time.Hour
	}

	t := time.NewTicker(interval)
	go func() {
		for range t.C {
			tokens.Sweep(context.Background())
		}
	}()
}
