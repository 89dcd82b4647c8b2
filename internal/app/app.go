package app

import (
	"bizdash/internal/config"
	"bizdash/internal/db"
	"bizdash/internal/handlers"
	"bizdash/internal/repository"
	"bizdash/internal/routes"
	"bizdash/internal/services"
	"context"

	"github.com/gorilla/mux"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	if err := db.RunMigrations(context.Background(), cfg); err != nil {
		return nil, err
	}

	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	// Репозитории
	userRepo := repository.NewUserRepository(conn)
	checkInRepo := repository.NewCheckInRepository(conn)
	docRepo := repository.NewDocumentRepository(conn)
	statsRepo := repository.NewStatsRepository(conn)

	// Сервисы
	authService := services.NewAuthService(userRepo, cfg)
	passwordService := services.NewPasswordService(userRepo, cfg)
	checkInService := services.NewCheckInService(checkInRepo)
	docService := services.NewDocumentService(docRepo)
	statsService := services.NewStatsService(statsRepo)
	insightService := services.NewInsightService(checkInRepo, docRepo)

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService, cfg)
	passwordHandler := handlers.NewPasswordHandler(passwordService, cfg)
	checkInHandler := handlers.NewCheckInHandler(checkInService)
	docHandler := handlers.NewDocumentHandler(docService, cfg)
	statsHandler := handlers.NewStatsHandler(statsService)
	insightHandler := handlers.NewInsightHandler(insightService)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, authHandler, passwordHandler, checkInHandler, docHandler, statsHandler, insightHandler, authService)

	return router, nil
}
