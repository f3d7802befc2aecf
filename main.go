package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/abelzeko/mionjo/internal/api"
	"github.com/abelzeko/mionjo/internal/app"
	"github.com/abelzeko/mionjo/internal/config"
	"github.com/gin-gonic/gin"
)

func main() {
	// Configure logging
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Starting MIONJO HTTP API...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	server := api.NewHTTPServer(application.Services)
	if err := server.Run(ctx, cfg.HTTPAddr); err != nil {
		log.Printf("HTTP API stopped with error: %v", err)
	}
}
