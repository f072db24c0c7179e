package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jakecoffman/baucua"
	"github.com/jakecoffman/baucua/game"
)

type RoomLister interface {
	Rooms(ctx context.Context) ([]game.Summary, error)
}

// New wires the HTTP surface: health check, symbol list, room listing and the websocket.
func New(rooms RoomLister, ws http.Handler, origins baucua.Origins, logger *slog.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger), allowOrigins(origins, logger))

	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	engine.GET("/symbols", func(c *gin.Context) {
		c.JSON(http.StatusOK, game.Symbols)
	})
	engine.GET("/admin/rooms", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		summaries, err := rooms.Rooms(ctx)
		if err != nil {
			logger.Error("listing rooms", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, summaries)
	})
	engine.GET("/ws", gin.WrapH(ws))

	return engine
}

func allowOrigins(origins baucua.Origins, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if !origins.Allows(origin) {
			logger.Warn("origin blocked", "origin", origin, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "CORS blocked: " + origin})
			return
		}
		if origin != "" {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"ip", c.ClientIP(),
			"took", time.Since(start))
	}
}
