// @title Robotics Book Backend API
// @version 1.0
// @description Authentication and chatbot proxy backend for the robotics textbook site

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/cors"

	_ "ROBOTICS-BOOK_BACK-END/docs" // swagger docs registration
	"ROBOTICS-BOOK_BACK-END/internal/auth"
	"ROBOTICS-BOOK_BACK-END/internal/config"
	"ROBOTICS-BOOK_BACK-END/internal/handlers"
	"ROBOTICS-BOOK_BACK-END/internal/migrations"
	"ROBOTICS-BOOK_BACK-END/internal/routes"
	"ROBOTICS-BOOK_BACK-END/internal/service"
	"ROBOTICS-BOOK_BACK-END/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Run schema migrations over a short-lived database/sql handle
	{
		migDB, err := sql.Open("pgx", cfg.GetDSN())
		if err != nil {
			log.Fatalf("open migration connection: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnTimeout)
		if err := migrations.Run(ctx, migDB); err != nil {
			log.Fatalf("run migrations: %v", err)
		}
		cancel()
		migDB.Close()
	}

	// Connection pool
	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		log.Fatalf("parse dsn: %v", err)
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "robotics-book-backend"
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnTimeout)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("ping: %v", err)
		}
	}

	// Wire components
	users := store.NewPostgresUserStore(pool)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	authService := service.NewAuthService(users, hasher, &cfg.JWT)

	authHandler := handlers.NewAuthHandler(authService, &cfg.JWT, cfg.Auth.CookieSecure)
	healthHandler := handlers.NewHealthHandler(pool)
	googleAuthHandler := handlers.NewGoogleAuthHandler(users, cfg)
	chatHandler := handlers.NewChatHandler(&cfg.Chatbot)

	mux := http.NewServeMux()
	routes.SetupRoutes(mux, authHandler, healthHandler, googleAuthHandler, chatHandler, &cfg.JWT)

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(mux),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped.")
}
