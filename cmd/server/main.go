package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sentimark/config"
	"sentimark/internal/cache"
	"sentimark/internal/repository"
	"sentimark/internal/service"
	"sentimark/internal/transport/rest"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.Database)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Repositories
	textRepo := repository.NewTextRepo(db)
	datasetRepo := repository.NewDatasetRepo(db)
	validationRepo := repository.NewValidationRepo(db)
	historyRepo := repository.NewHistoryRepo(db)

	// Caches
	evalCache := cache.NewEvalCache(rdb)

	// Services
	predictor := service.NewPredictor()
	authSvc := service.NewAuthService()
	textSvc := service.NewTextService(textRepo, historyRepo)
	datasetSvc := service.NewDatasetService(textRepo, datasetRepo, validationRepo, predictor, evalCache)
	statsSvc := service.NewStatsService(textRepo)
	evalSvc := service.NewEvalService(validationRepo, predictor, evalCache)
	exportSvc := service.NewExportService(textRepo)

	container := &rest.Container{
		AuthService:    authSvc,
		TextService:    textSvc,
		DatasetService: datasetSvc,
		StatsService:   statsSvc,
		EvalService:    evalSvc,
		ExportService:  exportSvc,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /auth/login")
		log.Println("  POST /upload-dataset")
		log.Println("  POST /upload-validation")
		log.Println("  GET  /datasets")
		log.Println("  GET  /texts")
		log.Println("  PUT  /texts/{id}")
		log.Println("  GET  /texts/{id}/history")
		log.Println("  POST /search")
		log.Println("  GET  /statistics")
		log.Println("  POST /evaluate")
		log.Println("  GET  /export")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
