package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/tnqbao/gau-ticketing-service/config"
	"github.com/tnqbao/gau-ticketing-service/consumer/worker"
	infraPkg "github.com/tnqbao/gau-ticketing-service/infra"
	"github.com/tnqbao/gau-ticketing-service/repository"
	"github.com/tnqbao/gau-ticketing-service/service"
)

func main() {
	err := godotenv.Load("../staging.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	// Initialize context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.NewConfig()
	infra, err := infraPkg.InitInfra(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize infrastructure: %v", err)
	}
	if infra.RabbitMQ == nil {
		log.Fatalf("RabbitMQ is required to run the mirror consumer")
	}

	repo := repository.InitRepository(infra.Database.DB)
	tickets := service.NewTicketService(repo.TicketRepo, infra.ObjectStore, infra.Logger,
		service.WithMeter(infra.Telemetry.Meter()),
		service.WithTracer(infra.Telemetry.Tracer()),
	)

	// Start Mirror Consumer
	mirrorConsumer := worker.NewMirrorConsumer(infra.RabbitMQ.Channel, tickets, infra.Logger)
	if err := mirrorConsumer.Start(ctx); err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "Failed to start Mirror consumer: %v", err)
		log.Fatalf("Failed to start Mirror consumer: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infra.Logger.InfoWithContextf(ctx, "Shutting down consumer...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := infra.Close(shutdownCtx); err != nil {
		log.Printf("Failed to close infrastructure: %v", err)
	}

	log.Println("Consumer exited properly")
}
