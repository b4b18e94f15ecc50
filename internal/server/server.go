package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
	"taskboard/internal/seed"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(&cfg.Database)
	if err != nil {
		return nil, err
	}
	log.Println("✅ Connected to database")

	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	log.Println("✅ Migrations applied")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	memberRepo := repository.NewBoardMemberRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	cardRepo := repository.NewCardRepository(db)

	// Services
	access := service.NewAccessGate(memberRepo)
	columnService := service.NewColumnService(columnRepo, access)
	cardService := service.NewCardService(cardRepo, columnRepo, access)
	boardService := service.NewBoardService(boardRepo, memberRepo, userRepo, columnService, cardService, access)
	userService := service.NewUserService(userRepo)

	// Handlers
	demoSeeder := seed.NewDemoSeeder(boardService, cardService)
	userHandler := handler.NewUserHandler(userRepo, userService, demoSeeder, cfg.JWT)
	boardHandler := handler.NewBoardHandler(boardService)
	memberHandler := handler.NewMemberHandler(boardService)
	columnHandler := handler.NewColumnHandler(columnService)
	cardHandler := handler.NewCardHandler(cardService)

	limiter := newLimiter(cfg)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes, throttled by client IP
	public := r.Group("/")
	public.Use(middleware.RateLimit(limiter))
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
	}

	// Protected routes - authentication runs first so the limiter keys on
	// the resolved user instead of the client IP
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWT.Secret), middleware.RateLimit(limiter))
	{
		// Profile routes
		authorized.GET("/me", userHandler.Me)
		authorized.PATCH("/me", userHandler.UpdateMe)

		// Board routes
		authorized.GET("/boards", boardHandler.List)
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards/:id", boardHandler.Get)
		authorized.PUT("/boards/:id", boardHandler.Update)
		authorized.DELETE("/boards/:id", boardHandler.Delete)
		authorized.POST("/boards/:id/archive", boardHandler.Archive)
		authorized.POST("/boards/:id/duplicate", boardHandler.Duplicate)

		// Member routes
		authorized.GET("/boards/:id/members", memberHandler.List)
		authorized.POST("/boards/:id/members", memberHandler.Add)
		authorized.PUT("/boards/:id/members/:userId", memberHandler.UpdateRole)
		authorized.DELETE("/boards/:id/members/:userId", memberHandler.Remove)

		// Column routes
		authorized.GET("/boards/:id/columns", columnHandler.List)
		authorized.POST("/boards/:id/columns", columnHandler.CreateDisabled)
		authorized.POST("/boards/:id/columns/reorder", columnHandler.Reorder)
		authorized.PUT("/columns/:id", columnHandler.Rename)
		authorized.PATCH("/columns/:id/collapse", columnHandler.Collapse)
		authorized.DELETE("/columns/:id", columnHandler.DeleteDisabled)

		// Card routes
		authorized.GET("/columns/:id/cards", cardHandler.List)
		authorized.POST("/columns/:id/cards", cardHandler.Create)
		authorized.POST("/columns/:id/cards/reorder", cardHandler.Reorder)
		authorized.GET("/cards/:id", cardHandler.Get)
		authorized.PUT("/cards/:id", cardHandler.Update)
		authorized.DELETE("/cards/:id", cardHandler.Delete)
		authorized.POST("/cards/:id/move", cardHandler.Move)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func newLimiter(cfg *config.Config) middleware.Limiter {
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		log.Printf("✅ Rate limiting backed by redis at %s", cfg.Redis.Addr)
		return middleware.NewRedisLimiter(client, cfg.RateLimit.Requests, cfg.RateLimit.Window())
	}
	return middleware.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window())
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    s.Config.Server.Addr(),
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on %s\n", s.Config.Server.Addr())
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

	log.Println("✅ Server exited properly")
}
