package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gestipresence/presence-backend-go/internal/app"
	"github.com/gestipresence/presence-backend-go/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("app", cfg.App.Name)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	go func() {
		sig := <-quit
		slog.Info("Received signal", "signal", sig.String())
		cancel()
	}()

	a, err := app.Build(ctx, cfg)
	if err != nil {
		fmt.Println("Error building application:", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		slog.Error("Server error", "error", err)
		a.Close()
		os.Exit(1)
	}
}
