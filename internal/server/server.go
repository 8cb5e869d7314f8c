package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"questboard/internal/config"
	"questboard/internal/handler"
	"questboard/internal/logger"
	"questboard/internal/model"
	"questboard/internal/repository"

	"github.com/gin-contrib/cors"
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
	Log    *logger.Logger
}

func Init(cfg *config.Config, log *logger.Logger) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	log.Info("connected to database", "host", cfg.DBHost, "db", cfg.DBName)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.Material{},
		&model.QuestLine{},
		&model.Quest{},
		&model.QuestProgress{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("schema migrated")

	// Setup Gin
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	questRepo := repository.NewQuestRepository(db)
	questLineRepo := repository.NewQuestLineRepository(db)
	progressRepo := repository.NewQuestProgressRepository(db)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo)
	taskHandler := handler.NewTaskHandler(taskRepo)
	materialHandler := handler.NewMaterialHandler(materialRepo, taskRepo)
	questHandler := handler.NewQuestHandler(questRepo, progressRepo, userRepo)
	questLineHandler := handler.NewQuestLineHandler(questLineRepo)

	// Task routes
	r.GET("/tasks", taskHandler.GetAll)
	r.POST("/tasks", taskHandler.Create)
	r.PUT("/tasks/:id", taskHandler.Update)
	r.DELETE("/tasks/:id", taskHandler.Delete)

	// Material routes
	r.POST("/tasks/:id/materials", materialHandler.AddToTask)
	r.GET("/tasks/:id/materials", materialHandler.GetByTask)
	r.PUT("/materials/:id", materialHandler.Update)
	r.DELETE("/materials/:id", materialHandler.Delete)

	// User routes
	r.POST("/users", userHandler.GetOrCreate)
	r.GET("/users", userHandler.GetAll)
	r.DELETE("/users/:id", userHandler.Delete)
	r.GET("/users/:id/stats", questHandler.GetStats)
	r.GET("/users/:id/progress", questHandler.GetProgress)
	r.GET("/users/:id/questlines", questLineHandler.GetWithProgress)

	// Sync routes - called by the Minecraft mod
	r.POST("/sync/quest", questHandler.SyncQuest)
	r.POST("/sync/questline", questLineHandler.Sync)

	// Quest and quest line read routes
	r.GET("/quests", questHandler.GetAll)
	r.GET("/quests/:quest_id", questHandler.GetByID)
	r.GET("/questlines", questLineHandler.GetAll)
	r.GET("/questlines/:id", questLineHandler.GetByID)
	r.GET("/questlines/:id/quests", questHandler.GetByLine)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		Log:    log,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Log.Info("server running", "port", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Log.Fatal("failed to listen", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Log.Fatal("server forced to shutdown", "error", err)
	}

	s.Log.Info("server exited properly")
}
