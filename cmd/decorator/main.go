package main

import (
	"log"
	"log/slog"

	"github.com/oakhaus/decorator/internal/advisor"
	claudeadvisor "github.com/oakhaus/decorator/internal/advisor/claude"
	"github.com/oakhaus/decorator/internal/catalog"
	"github.com/oakhaus/decorator/internal/catalog/cache"
	"github.com/oakhaus/decorator/internal/config"
	"github.com/oakhaus/decorator/internal/db"
	"github.com/oakhaus/decorator/internal/logging"
	"github.com/oakhaus/decorator/internal/roomimage/disk"
	"github.com/oakhaus/decorator/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.CatalogCacheDB)
	if err != nil {
		logger.Error("failed to open catalog cache database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	source := cache.New(catalog.NewClient(cfg.CatalogURL), database, cfg.CatalogCacheTTL, logger)

	rooms, err := disk.New(cfg.RoomImagePath)
	if err != nil {
		logger.Error("failed to initialize room image store", "error", err)
		return
	}

	server := web.NewServer(source, rooms, newAdvisor(cfg, logger), cfg.SceneWidth, cfg.SceneHeight, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

func newAdvisor(cfg *config.Config, logger *slog.Logger) advisor.Advisor {
	switch cfg.AdvisorBackend {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			logger.Error("CLAUDE_API_KEY is required when ADVISOR_BACKEND=claude")
			return nil
		}
		logger.Info("furnishing advisor enabled", "model", cfg.ClaudeModel)
		return claudeadvisor.New(cfg.ClaudeAPIKey, cfg.ClaudeModel)
	default:
		return nil
	}
}
