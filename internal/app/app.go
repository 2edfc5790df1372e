package app

import (
	"context"

	"github.com/gorilla/mux"

	"articleboard/internal/config"
	"articleboard/internal/db"
	"articleboard/internal/handlers"
	"articleboard/internal/repository"
	"articleboard/internal/routes"
	"articleboard/internal/services"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	if err := db.RunMigrations(context.Background(), cfg); err != nil {
		return nil, err
	}

	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	// repositories
	userRepo := repository.NewUserRepository(conn)
	articleRepo := repository.NewArticleRepo(conn)

	// services
	authService := services.NewAuthService(userRepo)
	lookupService := services.NewUserLookupService(userRepo)
	articleService := services.NewArticleService(articleRepo)
	likeService := services.NewLikeCounterService()

	// handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	articleHandler := handlers.NewArticleHandler(articleService, likeService)
	jsonHandler := handlers.NewJSONHandler(lookupService, likeService)

	router := mux.NewRouter()
	routes.InitRoutes(router, cfg, authHandler, articleHandler, jsonHandler)

	return router, nil
}
