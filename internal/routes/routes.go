package routes

import (
	"bizdash/internal/handlers"
	"bizdash/internal/middleware"
	"net/http"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	authHandler *handlers.AuthHandler,
	passwordHandler *handlers.PasswordHandler,
	checkInHandler *handlers.CheckInHandler,
	documentHandler *handlers.DocumentHandler,
	statsHandler *handlers.StatsHandler,
	insightHandler *handlers.InsightHandler,
	resolver middleware.SessionResolver,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging)
	router.Use(middleware.Recoverer)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	api.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	api.HandleFunc("/forgot", passwordHandler.Forgot).Methods(http.MethodPost)
	api.HandleFunc("/reset", passwordHandler.Reset).Methods(http.MethodPost)

	// --- Защищённые сессионной cookie ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(func(next http.Handler) http.Handler {
		return middleware.SessionAuth(resolver, next)
	})

	protected.HandleFunc("/checkins", checkInHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/checkins", checkInHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/checkins/{id:[0-9]+}", checkInHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/checkins/{id:[0-9]+}", checkInHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/documents", documentHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/documents", documentHandler.Upload).Methods(http.MethodPost)
	protected.HandleFunc("/documents/{id:[0-9]+}/download", documentHandler.Download).Methods(http.MethodGet)
	protected.HandleFunc("/documents/{id:[0-9]+}", documentHandler.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/documents/{id:[0-9]+}", documentHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/stats", statsHandler.Dashboard).Methods(http.MethodGet)

	protected.HandleFunc("/genai/categorize", insightHandler.Categorize).Methods(http.MethodPost)
	protected.HandleFunc("/genai/analyze-document", insightHandler.AnalyzeDocument).Methods(http.MethodPost)
	protected.HandleFunc("/genai/suggest-workflow", insightHandler.SuggestWorkflow).Methods(http.MethodPost)
	protected.HandleFunc("/genai/nls", insightHandler.Search).Methods(http.MethodPost)
}
