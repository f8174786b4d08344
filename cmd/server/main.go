package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"fitmyphone-backend-go/internal/api"
	"fitmyphone-backend-go/internal/config"
	"fitmyphone-backend-go/internal/core"
	"fitmyphone-backend-go/internal/db"
	"fitmyphone-backend-go/internal/llm"
	"fitmyphone-backend-go/internal/middleware"
)

func main() {
	// Load .env file. In production, environment variables should be set directly.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: Error loading .env file:", err)
		}
	}

	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to load configuration: %v", err)
	}

	var logger *zap.Logger
	if appConfig.GinMode == "release" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	if err := db.InitFirebase(ctx, appConfig); err != nil {
		logger.Fatal("Failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	fsClient := db.GetFirestoreClient()
	defer fsClient.Close()

	// Repositories.
	accessoryRepo := db.NewFirestoreAccessoryRepository(fsClient)
	contributionRepo := db.NewFirestoreContributionRepository(fsClient)
	userRepo := db.NewFirestoreUserRepository(fsClient)
	categoryRepo := db.NewFirestoreCategoryRepository(fsClient)
	masterModelRepo := db.NewFirestoreMasterModelRepository(fsClient)
	searchLogRepo := db.NewFirestoreSearchLogRepository(fsClient)
	reconciliationStore := db.NewFirestoreReconciliationStore(fsClient)

	// The LLM fallback is optional: without an API key, searches that match
	// nothing simply return empty results.
	var suggester core.Suggester
	if appConfig.LLMAPIKey != "" {
		suggestionClient, llmErr := llm.NewSuggestionClient(llm.Config{
			APIURL: appConfig.LLMAPIURL,
			APIKey: appConfig.LLMAPIKey,
			Model:  appConfig.LLMModel,
		})
		if llmErr != nil {
			logger.Fatal("Failed to initialize LLM suggestion client", zap.Error(llmErr))
		}
		suggester = suggestionClient
	} else {
		logger.Warn("LLM_API_KEY not set; fuzzy search suggestions are disabled")
	}

	// Services.
	userService := core.NewUserService(userRepo)
	contributionService := core.NewContributionService(contributionRepo, userRepo)
	notificationService := core.NewNotificationService(db.GetMessagingClient(), appConfig.ClientURL, logger)
	reconciliationService := core.NewReconciliationService(
		reconciliationStore,
		contributionRepo,
		notificationService,
		appConfig.ContributionRewardPoints,
		logger,
	)
	searchService := core.NewSearchService(accessoryRepo, searchLogRepo, suggester, logger)
	importService := core.NewImportService(accessoryRepo, masterModelRepo, appConfig.ImportBatchSize)
	categoryService := core.NewCategoryService(categoryRepo)
	masterModelService := core.NewMasterModelService(masterModelRepo)

	gin.SetMode(appConfig.GinMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CORSMiddleware(appConfig))

	authMW := middleware.NewAuthMiddleware(db.GetFirebaseAuthClient(), userService)

	handlers := api.Handlers{
		Auth:         api.NewAuthHandler(userService),
		User:         api.NewUserHandler(userService, logger),
		Accessory:    api.NewAccessoryHandler(searchService, logger),
		Contribution: api.NewContributionHandler(contributionService, reconciliationService, logger),
		Category:     api.NewCategoryHandler(categoryService, logger),
		MasterModel:  api.NewMasterModelHandler(masterModelService, logger),
		Import:       api.NewImportHandler(importService, logger),
		Static:       api.NewStaticHandler(categoryService, searchService, appConfig.ClientURL, logger),
	}
	api.SetupRoutes(router, handlers, authMW)

	httpServer := &http.Server{
		Addr:    ":" + appConfig.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", appConfig.Port), zap.String("mode", gin.Mode()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	// Graceful shutdown: finish in-flight requests before exiting.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shut down", zap.Error(err))
	}
	logger.Info("Server exited")
}
