package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workoutLists/internal/config"
	"workoutLists/internal/db"
	grpcserver "workoutLists/internal/grpc"
	"workoutLists/internal/web"
	"workoutLists/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.Printf("Configuration loaded: %v", cfg)

	// Open DB
	d, err := db.Connect(cfg.Database.Driver, cfg.Database.Source())
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Printf("close db: %v", err)
		}
	}()

	users := repository.NewUserRepository(d)
	lists := repository.ScopedLists(d)

	// Start gRPC
	stopGRPC, err := grpcserver.StartGRPC(cfg, users, lists)
	if err != nil {
		log.Fatalf("start grpc: %v", err)
	}
	log.Printf("gRPC server listening on %s", cfg.GRPC.Address)

	// Start HTTP
	stopHTTP := web.Start(cfg, users, lists)
	log.Printf("HTTP server listening on %s", cfg.HTTP.Address)

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := stopHTTP(ctx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := stopGRPC(ctx); err != nil {
		log.Printf("grpc shutdown error: %v", err)
	}
}
