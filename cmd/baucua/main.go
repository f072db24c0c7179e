package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pterm/pterm"

	"github.com/jakecoffman/baucua"
	"github.com/jakecoffman/baucua/api"
	"github.com/jakecoffman/baucua/config"
	"github.com/jakecoffman/baucua/game"
)

func main() {
	configPath := flag.String("config", "", "path to env file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	logger := slog.New(pterm.NewSlogHandler(pterm.DefaultLogger.WithLevel(ptermLevel(cfg.LogLevel))))
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)
	logger.Info("starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := baucua.NewHub(game.NewRouter(game.NewRegistry(), logger, nil), logger)
	go hub.Run(ctx)

	origins := baucua.Origins(cfg.AllowedOrigins)
	ws := baucua.WsHandler(baucua.ProcessPlayerCommands(hub), origins, logger)
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.New(hub, ws, origins, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdown)
	}()

	logger.Info("serving", "url", "http://localhost:"+cfg.HTTP.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func ptermLevel(level slog.Level) pterm.LogLevel {
	switch {
	case level <= slog.LevelDebug:
		return pterm.LogLevelDebug
	case level <= slog.LevelInfo:
		return pterm.LogLevelInfo
	case level <= slog.LevelWarn:
		return pterm.LogLevelWarn
	default:
		return pterm.LogLevelError
	}
}
