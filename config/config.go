package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
}

type Config struct {
	HTTP HTTPServer
	// AllowedOrigins is the browser origin allow-list for HTTP and websocket requests
	AllowedOrigins []string
	LogLevel       slog.Level
	GinMode        string
}

var defaultOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// Load reads the environment, first applying the env file at path. With an empty path a .env in
// the working directory is used if there is one.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("loading env from %s: %w", path, err)
		}
	} else {
		_ = godotenv.Load()
	}

	level, err := parseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	mode, err := parseGinMode(getenv("GIN_MODE", gin.ReleaseMode))
	if err != nil {
		return nil, err
	}

	return &Config{
		HTTP: HTTPServer{
			Host: getenv("HTTP_HOST", "0.0.0.0"),
			Port: getenv("PORT", "3001"),
		},
		AllowedOrigins: origins(),
		LogLevel:       level,
		GinMode:        mode,
	}, nil
}

func (c *Config) Addr() string {
	return c.HTTP.Host + ":" + c.HTTP.Port
}

// LogValue keeps the startup log line readable.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", c.Addr()),
		slog.String("origins", strings.Join(c.AllowedOrigins, ",")),
		slog.String("level", c.LogLevel.String()),
		slog.String("gin", c.GinMode),
	)
}

func origins() []string {
	var list []string
	seen := map[string]bool{}
	add := func(origin string) {
		origin = strings.TrimSuffix(strings.TrimSpace(origin), "/")
		if origin == "" || seen[origin] {
			return
		}
		seen[origin] = true
		list = append(list, origin)
	}

	add(os.Getenv("CLIENT_ORIGIN"))
	for _, origin := range defaultOrigins {
		add(origin)
	}
	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		add(origin)
	}
	return list
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("bad LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

func parseGinMode(s string) (string, error) {
	switch s {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return s, nil
	}
	return "", fmt.Errorf("bad GIN_MODE %q: want %v, %v or %v", s, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
}

func getenv(key, defaultValue string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultValue
}
