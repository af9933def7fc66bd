package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"teacherdash/internal/autofill"
	"teacherdash/internal/clip"
	"teacherdash/internal/config"
	"teacherdash/internal/database"
	"teacherdash/internal/lesson"
	"teacherdash/internal/metrics"
	"teacherdash/internal/notes"
	"teacherdash/internal/schedule"
	"teacherdash/internal/server"
	"teacherdash/internal/session"
	"teacherdash/internal/storage"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Durable storage. When it cannot be set up the dashboard still
	// runs, just without persistence.
	store, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		log.Printf("Warning: running without persistence: %v", err)
		store = nil
	}

	// 3. Stores, restored from the last session
	scheduleStore := schedule.NewStore(store)
	scheduleStore.Restore()
	lessonStore := lesson.NewStore(store)
	lessonStore.Restore()
	noteStore := notes.NewStore(store)
	noteStore.Restore()
	sessionStore := session.NewStore()

	// 4. Metrics database (optional)
	var metricsStore *metrics.Store
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Printf("Warning: running without autofill metrics: %v", err)
	} else {
		defer db.Close()
		metricsStore = metrics.NewStore(db.SQL)
	}

	// 5. Server
	srv := server.New(server.Deps{
		Config:   cfg,
		Schedule: scheduleStore,
		Lessons:  lessonStore,
		Notes:    noteStore,
		Session:  sessionStore,
		Vision:   autofill.NewGeminiVision(),
		Clipper:  clip.NewClipper(),
		Metrics:  metricsStore,
	})

	go func() {
		log.Printf("teacherdash listening on %s", cfg.Addr)
		if err := srv.Listen(); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
