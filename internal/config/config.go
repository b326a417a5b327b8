package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port        int
	LogLevel    string
	LogFormat   string
	DatabaseURL string

	// Maps
	MapSource string
	MapName   string

	// Client
	ServerURL      string
	PlayerName     string
	ReconnectDelay time.Duration
	ScreenWidth    int
	ScreenHeight   int
	Zoom           float64
	TimeScaled     bool
	FogCone        bool
	Audio          bool
	Seed           int64
}

func Load() *Config {
	return &Config{
		Port:        getEnvInt("PORT", 8080),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		MapSource: getEnv("MAP_SOURCE", "file:maps"),
		MapName:   getEnv("MAP_NAME", "manor"),

		ServerURL:      getEnv("SERVER_URL", ""),
		PlayerName:     getEnv("PLAYER_NAME", "player"),
		ReconnectDelay: getEnvDuration("RECONNECT_DELAY", 3*time.Second),
		ScreenWidth:    getEnvInt("SCREEN_WIDTH", 1280),
		ScreenHeight:   getEnvInt("SCREEN_HEIGHT", 720),
		Zoom:           getEnvFloat("ZOOM", 1.5),
		TimeScaled:     getEnvBool("TIME_SCALED", false),
		FogCone:        getEnvBool("FOG_CONE", false),
		Audio:          getEnvBool("AUDIO", true),
		Seed:           int64(getEnvInt("SEED", 0)),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
