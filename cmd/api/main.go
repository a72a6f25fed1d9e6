package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"openblog/cmd/app"
	"openblog/internal/config"
	handlers "openblog/internal/handler"
	"openblog/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, _, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, cfg)

	router := mux.NewRouter()

	router.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)
	router.HandleFunc("/v1/stats", handler.StatsHandler).Methods(http.MethodGet)

	router.HandleFunc("/v1/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/v1/login", handler.Login).Methods(http.MethodPost)

	router.HandleFunc("/v1/user", handler.GetCurrentUser).Methods(http.MethodGet)
	router.HandleFunc("/v1/user/password", handler.ChangePassword).Methods(http.MethodPut)

	router.HandleFunc("/v1/blogposts", handler.GetPosts).Methods(http.MethodGet)
	router.HandleFunc("/v1/blogposts", handler.CreatePost).Methods(http.MethodPost)
	router.HandleFunc("/v1/blogposts/{id}", handler.GetPost).Methods(http.MethodGet)
	router.HandleFunc("/v1/blogposts/{id}", handler.UpdatePost).Methods(http.MethodPut)
	router.HandleFunc("/v1/blogposts/{id}", handler.DeletePost).Methods(http.MethodDelete)

	router.HandleFunc("/v1/blogposts/{id}/attachments", handler.AddAttachment).Methods(http.MethodPost)
	router.HandleFunc("/v1/blogposts/{id}/attachments/{attachmentID}", handler.DeleteAttachment).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		router,
		middleware.IdentityMiddleware(cfg),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Сервер запущен на %s", addr)
	log.Printf("База данных: %s", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
