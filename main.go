package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/speech-subs/backend/internal/api"
	"github.com/speech-subs/backend/internal/arbiter"
	"github.com/speech-subs/backend/internal/auth"
	"github.com/speech-subs/backend/internal/config"
	"github.com/speech-subs/backend/internal/db"
	"github.com/speech-subs/backend/internal/engine"
)

func main() {
	cfg := config.Load()

	// Ensure data directory exists
	os.MkdirAll(cfg.DataPath, 0755)

	// Initialize database
	database, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Ensure admin user exists
	if err := database.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Admin user ensured: %s", cfg.AdminUsername)

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// The engine is a process-wide singleton; the arbitrator owns all
	// access to it and serializes inference calls.
	eng := engine.NewWhisperCppClient(cfg.WhisperURL)
	log.Printf("Transcription engine: %s at %s", eng.Name(), cfg.WhisperURL)

	register := arbiter.NewRegister()
	arb := arbiter.New(register, eng)

	// Create router
	router := api.NewRouter(database, jwtService, arb, cfg)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on %s", addr)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		os.Exit(0)
	}()

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
