package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evcharge-payment-relay/internal/client"
	"evcharge-payment-relay/internal/config"
	"evcharge-payment-relay/internal/repository"
	"evcharge-payment-relay/internal/server"
	"evcharge-payment-relay/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitSqliteClient(cfg.Database.Path)
	payosClient := client.NewPayOSClient(&cfg.PayOS)
	blynkClient := client.NewBlynkClient(&cfg.Blynk)
	emailClient := client.NewEmailClient(&cfg.Email)

	orderRepo := repository.NewOrderRepository(db)
	notifier := service.NewNotifier(emailClient, blynkClient, &cfg.Blynk)

	paymentService := service.NewPaymentService(
		payosClient,
		orderRepo,
		notifier,
		&cfg.Pricing,
		&cfg.PayOS,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(paymentService)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
