package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sagewell/backend/internal/config"
	"github.com/sagewell/backend/internal/handlers"
	"github.com/sagewell/backend/internal/llm"
	"github.com/sagewell/backend/internal/logger"
	"github.com/sagewell/backend/internal/middleware"
	"github.com/sagewell/backend/internal/repository"
	"github.com/sagewell/backend/internal/scheduler"
	"github.com/sagewell/backend/internal/service"
	"github.com/sagewell/backend/pkg/supabase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and the weekly summary scheduler.`,
	RunE:  runServe,
}

var port string

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// A local .env is optional; real deployments use the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if port != "" {
		cfg.Server.Port = port
	}

	logger.SetDefault(logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	}))
	log := logger.Default()

	log.Info("starting Sagewell API server",
		logger.String("env", cfg.Server.Env),
		logger.String("supabase_url", cfg.Supabase.URL),
	)

	supabaseClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)

	// Repositories
	moodRepo := repository.NewMoodLogRepository(supabaseClient)
	healthRepo := repository.NewHealthLogRepository(supabaseClient)
	financeRepo := repository.NewFinanceLogRepository(supabaseClient)
	goalRepo := repository.NewGoalRepository(supabaseClient)
	summaryRepo := repository.NewSummaryRepository(supabaseClient)
	chatRepo := repository.NewChatRepository(supabaseClient)

	// Optional remote completion backend
	var completer llm.Completer
	if cfg.OpenAI.APIKey != "" {
		completer = llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Timeout)
		log.Info("completion backend enabled", logger.String("model", cfg.OpenAI.Model))
	} else {
		log.Info("no completion backend configured, using rule-based generation")
	}

	// Services
	summaryService := service.NewSummaryService(
		moodRepo, healthRepo, financeRepo, summaryRepo,
		completer, service.NewLogNotifier(),
	)
	chatService := service.NewChatService(chatRepo, completer)
	moodService := service.NewMoodService(moodRepo)
	healthService := service.NewHealthService(healthRepo)
	financeService := service.NewFinanceService(financeRepo)
	goalService := service.NewGoalService(goalRepo)

	// Handlers
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	chatHandler := handlers.NewChatHandler(chatService)
	moodHandler := handlers.NewMoodHandler(moodService)
	healthHandler := handlers.NewHealthHandler(healthService)
	financeHandler := handlers.NewFinanceHandler(financeService)
	goalHandler := handlers.NewGoalHandler(goalService)

	// Weekly cadence
	sched := scheduler.New(summaryService, moodRepo)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimit())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Summary and chat routes take an explicit userId and fan out to the
		// completion backend, so they carry the stricter limiter.
		completion := v1.Group("")
		completion.Use(middleware.RateLimitChat())
		{
			completion.POST("/summaries/generate", summaryHandler.GenerateSummary)
			completion.POST("/chat/messages", chatHandler.SendMessage)
		}

		v1.GET("/summaries", summaryHandler.ListSummaries)
		v1.GET("/summaries/latest", summaryHandler.GetLatestSummary)

		// Log routes resolve the user from the verified token.
		protected := v1.Group("")
		protected.Use(middleware.Auth(supabaseClient))
		{
			protected.POST("/mood-logs", moodHandler.CreateMoodLog)
			protected.GET("/mood-logs", moodHandler.GetMoodLogs)

			protected.PUT("/health-logs", healthHandler.UpsertHealthLog)
			protected.GET("/health-logs", healthHandler.GetHealthLogs)

			protected.POST("/finance-logs", financeHandler.CreateFinanceLog)
			protected.GET("/finance-logs", financeHandler.GetFinanceLogs)

			protected.POST("/goals", goalHandler.CreateGoal)
			protected.GET("/goals", goalHandler.ListGoals)
			protected.PATCH("/goals/:id", goalHandler.UpdateGoal)
			protected.DELETE("/goals/:id", goalHandler.DeleteGoal)
		}
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
