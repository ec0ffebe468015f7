package app

import (
	"strings"

	"github.com/panelgrid/panelgrid-backend/internal/pkg/logger"
	"github.com/panelgrid/panelgrid-backend/internal/utils"
)

type Config struct {
	ServiceName    string
	Environment    string
	Port           string
	JWTSecretKey   string
	AllowedOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	origins := utils.GetEnv("ALLOWED_ORIGINS", "http://localhost:3000", log)
	return Config{
		ServiceName:    utils.GetEnv("SERVICE_NAME", "panelgrid-backend", log),
		Environment:    utils.GetEnv("ENVIRONMENT", "development", log),
		Port:           utils.GetEnv("PORT", "8080", log),
		JWTSecretKey:   utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		AllowedOrigins: splitAndTrim(origins),
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
