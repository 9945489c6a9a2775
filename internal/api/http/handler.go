package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bongibault-romain/trading-game-server/internal/room"
)

const banner = "trading game server is running"

type RoomLister interface {
	Rooms() []room.Summary
}

func BannerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, banner)
	}
}

// RoomsHandler lists live rooms, oldest first.
func RoomsHandler(rl RoomLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms := rl.Rooms()
		if rooms == nil {
			rooms = []room.Summary{}
		}
		c.JSON(http.StatusOK, gin.H{"rooms": rooms})
	}
}

// RequestLogger logs one line per request. WebSocket sessions are logged when
// the connection ends.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"remote", c.ClientIP(),
		)
	}
}
