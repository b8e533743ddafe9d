package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sidequest-app/sidequest/sidequest"
	"github.com/sidequest-app/sidequest/sidequest/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting SideQuest engine",
		slog.String("version", version),
		slog.String("commit", commit))

	path := flag.String("config", "config.toml", "path to config")
	userID := flag.Int64("user", 1, "user id to assign a quest to")
	dateStr := flag.String("date", "", "quest date (YYYY-MM-DD, default today)")
	flag.Parse()

	cfg, err := sidequest.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	date := time.Now()
	if *dateStr != "" {
		date, err = time.Parse("2006-01-02", *dateStr)
		if err != nil {
			slog.Error("Invalid date", slog.String("date", *dateStr), slog.Any("error", err))
			os.Exit(-1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	app := sidequest.New(*cfg, version, commit)
	if err := app.Setup(ctx); err != nil {
		slog.Error("Failed to set up application",
			slog.String("type", "sys"),
			slog.Any("error", err))
		os.Exit(-1)
	}
	defer app.Close()

	logger.LogSystem("SideQuest engine ready",
		slog.Int64("user_id", *userID),
		slog.String("date", date.Format("2006-01-02")))

	response, err := app.AssignmentService.GetOrCreate(ctx, *userID, date)
	if err != nil {
		logger.LogError("Failed to get quest", err,
			slog.Int64("user_id", *userID),
			slog.String("date", date.Format("2006-01-02")))
		os.Exit(-1)
	}

	out, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		slog.Error("Failed to encode quest", slog.Any("error", err))
		os.Exit(-1)
	}
	fmt.Println(string(out))
}
