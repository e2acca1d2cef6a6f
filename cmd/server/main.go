package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/plateful/recipe-backend/internal/config"
	"github.com/plateful/recipe-backend/internal/database"
	"github.com/plateful/recipe-backend/internal/handlers"
	"github.com/plateful/recipe-backend/internal/middleware"
	"github.com/plateful/recipe-backend/internal/repository"
	"github.com/plateful/recipe-backend/internal/routes"
	"github.com/plateful/recipe-backend/internal/services"
)

func main() {
	commandFlag := flag.String("command", "serve", "Command to run: serve, createsuperuser")
	emailFlag := flag.String("email", "", "Email for createsuperuser")
	passwordFlag := flag.String("password", "", "Password for createsuperuser")
	flag.Parse()

	// Running without a .env file is fine; env vars still apply
	_ = godotenv.Load()
	cfg := config.Load()

	var logger *zap.Logger
	if cfg.IsProduction() {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// Startup gate: wait for Postgres before doing anything else
	if err := database.ConnectPostgres(cfg.PostgresURI, cfg.DBWaitTimeout, logger); err != nil {
		logger.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer database.DisconnectPostgres()

	userRepo := repository.NewUserRepo(database.PostgresDB)
	userService := services.NewUserService(userRepo)

	switch *commandFlag {
	case "serve":
		serve(cfg, logger, userService, userRepo)
	case "createsuperuser":
		user, err := userService.CreateSuperuser(context.Background(), *emailFlag, *passwordFlag)
		if err != nil {
			logger.Fatal("failed to create superuser", zap.Error(err))
		}
		logger.Info("superuser created", zap.String("email", user.Email))
	default:
		logger.Error("unknown command", zap.String("command", *commandFlag))
		os.Exit(1)
	}
}

func serve(cfg *config.Config, logger *zap.Logger, userService *services.UserService, userRepo *repository.UserRepo) {
	// Redis is optional: without it token resolution hits Postgres every
	// time and rate limiting is disabled.
	redisAvailable := true
	if err := database.ConnectRedis(cfg.RedisURI, logger); err != nil {
		logger.Warn("Redis unavailable, continuing without token cache and rate limiting", zap.Error(err))
		redisAvailable = false
	} else {
		defer database.DisconnectRedis()
	}

	tokenRepo := repository.NewTokenRepo(database.PostgresDB)
	tagRepo := repository.NewTagRepo(database.PostgresDB)
	ingredientRepo := repository.NewIngredientRepo(database.PostgresDB)
	recipeRepo := repository.NewRecipeRepo(database.PostgresDB)

	var tokenService *services.TokenService
	if redisAvailable {
		tokenService = services.NewTokenService(tokenRepo, userRepo, database.RedisClient)
	} else {
		tokenService = services.NewTokenService(tokenRepo, userRepo, nil)
	}

	userHandler := handlers.NewUserHandler(userService, tokenService, logger)
	tagHandler := handlers.NewTagHandler(tagRepo, logger)
	ingredientHandler := handlers.NewIngredientHandler(ingredientRepo, logger)
	recipeHandler := handlers.NewRecipeHandler(recipeRepo, logger)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.IsProduction() {
		r.Use(middleware.SecurityHeaders)
	}
	if redisAvailable {
		r.Use(middleware.RateLimit)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, userHandler, tagHandler, ingredientHandler, recipeHandler, tokenService)

	logger.Info("recipe backend listening", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
