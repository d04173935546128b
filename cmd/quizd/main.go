package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/quizdrill/quizdrill/internal/api/http"
	"github.com/quizdrill/quizdrill/internal/catalog"
	"github.com/quizdrill/quizdrill/internal/config"
	"github.com/quizdrill/quizdrill/internal/db"
	"github.com/quizdrill/quizdrill/internal/quiz"
	"github.com/quizdrill/quizdrill/internal/session"
	"github.com/quizdrill/quizdrill/internal/visitor"
)

func main() {
	cfg := config.FromEnv()

	cat, err := catalog.Load(cfg.QuestionsPath)
	if err != nil {
		log.Fatalf("load questions: %v", err)
	}
	if cat.Len() == 0 {
		log.Printf("warning: %s contains no usable questions", cfg.QuestionsPath)
	}

	var sessions session.Store
	if cfg.DBDriver == "memory" {
		sessions = session.NewMemoryStore()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		sessions = session.NewSQLStore(dbh)
	}

	svc := quiz.New(cat, sessions)
	visitors := visitor.NewService(cfg.SessionSecret, cfg.SessionTTL)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(ar chi.Router) {
		ar.Use(visitor.Middleware(visitors))
		api.Mount(ar, svc)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))

	log.Printf("listening on %s (questions=%d, db=%s)", cfg.HTTPAddr, cat.Len(), cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
