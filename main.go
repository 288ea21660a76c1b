package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/km-arc/go-genius/framework/app"
	"github.com/km-arc/go-genius/framework/container"
)

func main() {
	application, err := app.New() // loads .env automatically
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}
	if err := application.Boot(); err != nil {
		log.Fatalf("boot: %v", err)
	}

	logger := container.MustResolve[*zap.Logger](application.Container(), "logger")
	defer func() { _ = logger.Sync() }()

	logger.Debug("container ready", zap.Strings("services", application.Container().Names()))

	// Failures are logged per service by Warm.
	if err := application.Warm(); err != nil {
		logger.Error("container has broken definitions")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Fatal("run", zap.Error(err))
	}
}
