package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr      string
	CatalogURL      string
	CatalogCacheDB  string
	CatalogCacheTTL time.Duration
	RoomImagePath   string
	AdvisorBackend  string
	ClaudeAPIKey    string
	ClaudeModel     string
	SceneWidth      int
	SceneHeight     int
	LogLevel        string
	LogFile         string
}

func Load() *Config {
	return &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		CatalogURL:      getEnv("CATALOG_URL", "http://localhost:5000"),
		CatalogCacheDB:  getEnv("CATALOG_CACHE_DB", "/data/decorator.db"),
		CatalogCacheTTL: getDuration("CATALOG_CACHE_TTL", time.Hour),
		RoomImagePath:   getEnv("ROOM_IMAGE_PATH", "/data/rooms"),
		AdvisorBackend:  getEnv("ADVISOR_BACKEND", "none"),
		ClaudeAPIKey:    getEnv("CLAUDE_API_KEY", ""),
		ClaudeModel:     getEnv("CLAUDE_MODEL", "claude-sonnet-4-5"),
		SceneWidth:      getInt("SCENE_WIDTH", 1120),
		SceneHeight:     getInt("SCENE_HEIGHT", 600),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}
