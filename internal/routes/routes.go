package routes

import (
	"time"

	"passauth/internal/config"
	"passauth/internal/handlers"
	"passauth/internal/middleware"
	"passauth/internal/repository"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	cfg *config.Config,
	sessions *repository.SessionRepository,
	authHandler *handlers.AuthHandler,
	emailHandler *handlers.EmailHandler,
	passwordHandler *handlers.PasswordHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты (с лимитом частоты) ---
	authLimiter := middleware.NewRateLimiter(10, time.Minute)
	public := api.PathPrefix("").Subrouter()
	public.Use(authLimiter.Middleware)

	public.HandleFunc("/register", authHandler.Register).Methods("POST")
	public.HandleFunc("/login", authHandler.Login).Methods("POST")
	public.HandleFunc("/resend-verification", authHandler.ResendVerificationEmail).Methods("POST")
	public.HandleFunc("/password/forgot", passwordHandler.Forgot).Methods("POST")
	public.HandleFunc("/password/reset", passwordHandler.Reset).Methods("POST")

	api.HandleFunc("/verify-email", emailHandler.VerifyEmail).Methods("GET")

	// --- Защищённые сессией ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.SessionAuth(cfg.SessionSecret, sessions))

	protected.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	protected.HandleFunc("/profile", authHandler.Profile).Methods("GET")
	protected.HandleFunc("/password/change", passwordHandler.Change).Methods("POST")
}
