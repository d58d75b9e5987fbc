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

	"github.com/joho/godotenv"
	"github.com/tnqbao/gau-ticketing-service/config"
	"github.com/tnqbao/gau-ticketing-service/http/controller"
	"github.com/tnqbao/gau-ticketing-service/http/route"
	infraPkg "github.com/tnqbao/gau-ticketing-service/infra"
	"github.com/tnqbao/gau-ticketing-service/repository"
)

func main() {
	err := godotenv.Load("staging.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.NewConfig()
	infra, err := infraPkg.InitInfra(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize infrastructure: %v", err)
	}

	repo := repository.InitRepository(infra.Database.DB)
	if err := repo.AutoMigrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctrl := controller.NewController(cfg, infra, repo)

	router, err := routes.SetupRouter(ctrl)
	if err != nil {
		log.Fatalf("Failed to set up router: %v", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.EnvConfig.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Printf("HTTP Server started on :%s", cfg.EnvConfig.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
	}()

	select {
	case err := <-srvErr:
		infra.Logger.ErrorWithContextf(ctx, err, "Server error: %v", err)
	case <-ctx.Done():
		infra.Logger.InfoWithContextf(ctx, "Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	if err := infra.Close(shutdownCtx); err != nil {
		log.Printf("Failed to close infrastructure: %v", err)
	}

	log.Println("Server exited properly")
}
