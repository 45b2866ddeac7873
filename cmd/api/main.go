// Chile Payments Service
//
// This is the main entry point for the payment HTTP service. It wires the
// payments SDK to a thin REST surface and starts the server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	chilepayments "github.com/CJaimeDev/chile-payments-sdk"
	"github.com/CJaimeDev/chile-payments-sdk/config"
	"github.com/CJaimeDev/chile-payments-sdk/internal/api"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.Server.GinMode)
	defer logger.Sync()

	logger.Info("starting chile-payments service",
		zap.String("port", cfg.Server.Port),
		zap.String("provider", cfg.SDK.Provider),
		zap.String("environment", cfg.SDK.Environment))

	// Wire up dependencies (manual dependency injection)
	sdkConfig := cfg.SDKDomainConfig()
	sdkConfig.Logger = logger

	client, err := chilepayments.New(sdkConfig)
	if err != nil {
		logger.Fatal("SDK configuration error", zap.Error(err))
	}

	handler := api.NewHandler(client, logger)
	router := api.SetupRouter(handler, cfg.Server.GinMode)

	serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)
	go func() {
		logger.Info("server listening", zap.String("addr", serverAddr))
		if err := router.Run(serverAddr); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
}

// newLogger builds a development logger unless the service runs in release
// mode.
func newLogger(ginMode string) *zap.Logger {
	if ginMode == "release" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}
