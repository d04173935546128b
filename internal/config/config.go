package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr      string
	QuestionsPath string
	StaticDir     string

	DBDriver string // sqlite|postgres|memory
	DBDSN    string

	SessionSecret string
	SessionTTL    time.Duration

	CORSOrigins []string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:      envOr("HTTP_ADDR", ":8000"),
		QuestionsPath: envOr("QUESTIONS_PATH", "./questions.json"),
		StaticDir:     envOr("STATIC_DIR", "./static"),
		DBDriver:      envOr("DB_DRIVER", "sqlite"),
		DBDSN:         envOr("DB_DSN", ""),
		SessionSecret: envOr("SESSION_SECRET", "dev-key"),
		SessionTTL:    time.Duration(envInt("SESSION_TTL_HOURS", 30*24)) * time.Hour,
		CORSOrigins:   csvOr("CORS_ORIGINS", "http://localhost:8000,http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
