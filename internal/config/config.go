package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/pkg/errors"
)

type Config struct {
	Addr           string
	AllowedOrigins []string
	LogLevel       log.Level
	WSBufferSize   int
}

// Load reads flags from args, falling back to CHESS_* environment
// variables and then to defaults.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", envOr("CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("origins", envOr("CHESS_ALLOWED_ORIGINS", "http://localhost:5173"), "comma separated CORS origins")
	level := fs.String("log-level", envOr("CHESS_LOG_LEVEL", "info"), "trace, debug, info, warn or error")
	buffer := fs.String("ws-buffer", envOr("CHESS_WS_BUFFER", "1024"), "websocket read/write buffer size")
	if err := fs.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "parse flags")
	}

	cfg := Config{Addr: *addr}
	for _, origin := range strings.Split(*origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		return Config{}, errors.New("at least one allowed origin is required")
	}

	lvl, err := parseLevel(*level)
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = lvl

	size, err := strconv.Atoi(*buffer)
	if err != nil || size <= 0 {
		return Config{}, errors.Errorf("invalid websocket buffer size %q", *buffer)
	}
	cfg.WSBufferSize = size
	return cfg, nil
}

func parseLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return 0, errors.Errorf("unknown log level %q", s)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
