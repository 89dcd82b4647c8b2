package main

import (
	_ "bizdash/docs"
	"bizdash/internal/app"
	"bizdash/internal/config"
	"bizdash/internal/logger"
	"net/http"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Bizdash API
// @version 1.0
// @description Документация API Bizdash (аутентификация, чек-ины, документы, дашборд).
// @BasePath /
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("не удалось загрузить конфиг: " + err.Error())
	}

	logger.InitLogger(cfg.Log, cfg.LogLevel)
	defer logger.Log.Sync()

	warnings, err := cfg.Validate()
	for _, warn := range warnings {
		logger.Log.Warn("Конфигурация", zap.String("warning", warn))
	}
	if err != nil {
		logger.Log.Fatal("Невалидная конфигурация", zap.Error(err))
	}

	router, err := app.InitApp(cfg)
	if err != nil {
		logger.Log.Fatal("Ошибка инициализации приложения", zap.Error(err))
	}

	logger.Log.Info("Сервер запущен", zap.String("port", cfg.Port))

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
	})

	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	if err := http.ListenAndServe(":"+cfg.Port, corsMiddleware.Handler(router)); err != nil {
		logger.Log.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}
