package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"sentimark/internal/service"
	"sentimark/internal/transport/rest/handler"
	"sentimark/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService    *service.AuthService
	TextService    *service.TextService
	DatasetService *service.DatasetService
	StatsService   *service.StatsService
	EvalService    *service.EvalService
	ExportService  *service.ExportService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(c.AuthService)
	textsHandler := handler.NewTextsHandler(c.TextService)
	datasetsHandler := handler.NewDatasetsHandler(c.DatasetService)
	analyticsHandler := handler.NewAnalyticsHandler(c.StatsService, c.EvalService, c.ExportService)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	r.Use(corsMiddleware)
	r.Use(authMW.Identify)

	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	r.HandleFunc("/upload-dataset", datasetsHandler.UploadDataset).Methods("POST", "OPTIONS")
	r.HandleFunc("/upload-validation", datasetsHandler.UploadValidation).Methods("POST", "OPTIONS")
	r.HandleFunc("/datasets", datasetsHandler.ListDatasets).Methods("GET", "OPTIONS")

	r.HandleFunc("/texts", textsHandler.List).Methods("GET", "OPTIONS")
	r.HandleFunc("/texts/{id}", textsHandler.Correct).Methods("PUT", "OPTIONS")
	r.HandleFunc("/texts/{id}/history", textsHandler.History).Methods("GET", "OPTIONS")
	r.HandleFunc("/search", textsHandler.Search).Methods("POST", "OPTIONS")

	r.HandleFunc("/statistics", analyticsHandler.Statistics).Methods("GET", "OPTIONS")
	r.HandleFunc("/evaluate", analyticsHandler.Evaluate).Methods("POST", "OPTIONS")
	r.HandleFunc("/export", analyticsHandler.Export).Methods("GET", "OPTIONS")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
