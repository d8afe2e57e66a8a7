package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"ROBOTICS-BOOK_BACK-END/internal/config"
	"ROBOTICS-BOOK_BACK-END/internal/handlers"
	"ROBOTICS-BOOK_BACK-END/internal/middleware"
)

// SetupRoutes configures all application routes on the given mux
func SetupRoutes(
	mux *http.ServeMux,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	googleAuthHandler *handlers.GoogleAuthHandler,
	chatHandler *handlers.ChatHandler,
	jwtCfg *config.JWTConfig,
) {
	// Health check routes
	mux.HandleFunc("/healthz", healthHandler.HealthCheck)
	mux.HandleFunc("/livez", healthHandler.LivenessCheck)
	mux.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Authentication routes
	mux.HandleFunc("/api/auth/signup", authHandler.Signup)
	mux.HandleFunc("/api/auth/signin", authHandler.Signin)
	// Signout stays outside the middleware: the cookie must be cleared even
	// when the presented token is expired or missing
	mux.HandleFunc("/api/auth/signout", authHandler.Signout)
	mux.HandleFunc("/api/auth/me", middleware.AuthMiddleware(authHandler.Me, jwtCfg))
	mux.HandleFunc("/api/auth/profile", middleware.AuthMiddleware(authHandler.UpdateProfile, jwtCfg))

	// Google OAuth routes
	mux.HandleFunc("/api/auth/google/login", googleAuthHandler.GoogleLogin)
	mux.HandleFunc("/api/auth/google/callback", googleAuthHandler.GoogleCallback)

	// Chatbot proxy
	mux.HandleFunc("/api/chat", chatHandler.Chat)

	// Swagger UI
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Root route
	mux.HandleFunc("/", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Robotics book backend is running."))
}
