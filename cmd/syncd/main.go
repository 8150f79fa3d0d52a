package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"scout-data-service/internal/config"
	"scout-data-service/internal/logging"
	"scout-data-service/internal/server"
)

const appVersion = "dev"

func main() {
	once := flag.Bool("once", false, "run a single sync pass and exit")
	date := flag.String("date", "", "start date (YYYY-MM-DD) for -once, defaults to today")
	days := flag.Int("days", 0, "number of days to sync with -once")
	force := flag.Bool("force", false, "bypass cached source reads with -once")
	flag.Parse()

	// Missing .env is fine; production uses real environment variables.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "scout-data-service",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logging.Error(logger, "startup failed", err)
		os.Exit(1)
	}

	if *once {
		if err := srv.RunOnce(ctx, *date, *days, *force); err != nil {
			logging.Error(logger, "sync failed", err)
			os.Exit(1)
		}
		return
	}

	if err := srv.Run(ctx); err != nil {
		logging.Error(logger, "worker exited", err)
		os.Exit(1)
	}
}
