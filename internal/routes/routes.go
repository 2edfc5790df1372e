package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"articleboard/internal/config"
	"articleboard/internal/handlers"
	"articleboard/internal/middleware"
)

func InitRoutes(
	router *mux.Router,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	articleHandler *handlers.ArticleHandler,
	jsonHandler *handlers.JSONHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	// --- Legacy routes, paths preserved verbatim ---
	router.HandleFunc("/showArticleDetail", articleHandler.ShowArticleDetail).Methods(http.MethodGet)
	router.HandleFunc("/judge", jsonHandler.Judge).Methods(http.MethodGet)
	router.HandleFunc("/good", jsonHandler.Good).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// --- Public ---
	api.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/refresh", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	api.HandleFunc("/articles", articleHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/articles/search", articleHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/articles/{id:[0-9]+}", articleHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/articles/{id:[0-9]+}/likes", articleHandler.GetLikes).Methods(http.MethodGet)
	api.HandleFunc("/articles/{id:[0-9]+}/likes", articleHandler.AddLike).Methods(http.MethodPost)

	// --- JWT protected ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.JWTAuth(cfg.JWTSecret))
	protected.Use(middleware.OnlyRole("user"))

	protected.HandleFunc("/articles", articleHandler.Create).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/articles/{id:[0-9]+}", articleHandler.Update).Methods(http.MethodPut, http.MethodOptions)
	protected.HandleFunc("/articles/{id:[0-9]+}", articleHandler.Delete).Methods(http.MethodDelete, http.MethodOptions)
}
