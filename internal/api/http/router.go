package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bongibault-romain/trading-game-server/internal/api/ws"
)

// NewRouter wires the HTTP surface: liveness banner, WebSocket endpoint,
// room listing and Prometheus exposition.
func NewRouter(rooms RoomLister, hub *ws.Hub, gatherer prometheus.Gatherer, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	r.GET("/", BannerHandler())

	// WebSocket for game sessions
	r.GET("/ws", hub.HandleWS)

	r.GET("/rooms", RoomsHandler(rooms))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return r
}
