package main

import (
	"log"

	"tutorboard_backend/internal/app"
	"tutorboard_backend/internal/config"
	"tutorboard_backend/pkg/configwatcher"
	"tutorboard_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	application := app.NewApp(cfg)

	go configwatcher.WatchConfig("configs/config.yaml", func(next *config.Config) {
		logger.Log.Info("configuration reloaded",
			zap.String("port", next.Server.Port), zap.String("mode", next.Server.Mode))
	})

	application.Run()
}
