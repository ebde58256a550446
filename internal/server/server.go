package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/migrations"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	cache  *cache.UserCache
}

// Stores are the persistence dependencies behind the API routes.
type Stores struct {
	Boards repository.BoardRepositoryInterface
	Lists  repository.ListRepositoryInterface
	Cards  repository.CardRepositoryInterface
	Users  middleware.UserStore
}

func Init(cfg *config.Config) (*Server, error) {
	if cfg.AutoMigrate {
		if err := migrations.Up(cfg.MigrateURL()); err != nil {
			return nil, fmt.Errorf("❌ failed to migrate DB: %w", err)
		}
	}

	// Setup GORM
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	s := &Server{DB: db, Config: cfg}

	// known stays a nil interface without Redis so EnsureUser skips the cache.
	var known middleware.KnownUsers
	if cfg.RedisURL != "" {
		userCache, err := cache.NewUserCache(cfg.RedisURL, cfg.KnownUserTTL)
		if err != nil {
			return nil, fmt.Errorf("❌ failed to connect to Redis: %w", err)
		}
		log.Println("✅ Connected to Redis")
		s.cache = userCache
		known = userCache
	}

	s.Engine = gin.Default()
	registerRoutes(s.Engine, cfg.JWTSecret, Stores{
		Boards: repository.NewBoardRepository(db),
		Lists:  repository.NewListRepository(db),
		Cards:  repository.NewCardRepository(db),
		Users:  repository.NewUserRepository(db),
	}, known)

	return s, nil
}

func registerRoutes(r *gin.Engine, jwtSecret string, stores Stores, known middleware.KnownUsers) {
	boardHandler := handler.NewBoardHandler(stores.Boards)
	listHandler := handler.NewListHandler(stores.Lists)
	cardHandler := handler.NewCardHandler(stores.Cards)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Every API route needs a verified identity
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(jwtSecret), middleware.EnsureUser(stores.Users, known))
	{
		api.GET("/boards", boardHandler.GetAll)
		api.POST("/boards", boardHandler.Create)
		api.GET("/boards/:id", boardHandler.GetByID)

		api.GET("/lists", listHandler.GetByBoard)
		api.POST("/lists", listHandler.Create)

		api.GET("/cards", cardHandler.GetByList)
		api.POST("/cards", cardHandler.Create)
		api.PATCH("/cards/:id/move", cardHandler.Move)
	}
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			log.Printf("⚠️  Closing Redis: %v", err)
		}
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("✅ Server exited properly")
}
