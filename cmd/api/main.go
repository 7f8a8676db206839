package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"myaccount/internal/api"
	"myaccount/internal/config"
	"myaccount/internal/logger"
	"myaccount/internal/smoke"
)

var rootCmd = &cobra.Command{
	Use:   "myaccount-api",
	Short: "Account page API: orders, personal data, payment methods and reviews",
	// Без подкоманды запускаем сервер
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var validateURL string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the account page scenario against a running API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		if err := smoke.NewChecker(validateURL).Run(ctx); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Println("✅ Validation passed")
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateURL, "url", "http://localhost:8081", "Base URL for API validation")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
}

func serve() error {
	// Загружаем конфигурацию
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Создаем и настраиваем сервер
	server, err := api.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Создаем HTTP сервер
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.GetRouter(),
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		slog.Info("Starting server", "port", cfg.Port, "session_store", cfg.SessionStore, "orders_source", cfg.OrdersSource)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Ждем сигнал для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	// Graceful shutdown с таймаутом
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	// Закрываем соединения
	if err := server.Cleanup(); err != nil {
		slog.Error("Error during cleanup", "error", err)
	}

	slog.Info("Server stopped")
	return nil
}

func main() {
	config.LoadDotEnv()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
