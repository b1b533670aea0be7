package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	api "github.com/ggaillard/elea-quiz-generateur/internal/api/http"
	"github.com/ggaillard/elea-quiz-generateur/internal/config"
	"github.com/ggaillard/elea-quiz-generateur/internal/db"
	"github.com/ggaillard/elea-quiz-generateur/internal/grading"
	"github.com/ggaillard/elea-quiz-generateur/internal/logger"
	"github.com/ggaillard/elea-quiz-generateur/internal/quiz"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DB.Driver), cfg.DB.DSN)
	if err != nil {
		zl.Fatal("db open failed", zap.Error(err))
	}
	store := quiz.NewSQLStore(dbh)
	svc := quiz.NewService(store)
	grader := grading.NewGrader()

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	r.Mount("/", api.Routes(svc, grader, zl))

	zl.Info("quiz generator API listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("db_driver", cfg.DB.Driver))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
