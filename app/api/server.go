// Package api exposes an optional read-only status endpoint pair for the
// running monitor. It never touches the watermark store; everything it
// reports comes from the snapshot the monitor publishes.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/tweetwatch/app/cfg"
	"github.com/lysyi3m/tweetwatch/app/monitor"
)

// NewServer creates the status HTTP server.
func NewServer(mon *monitor.Monitor) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	c := cfg.Get()

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"version":   c.Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.GET("/stats", func(ctx *gin.Context) {
		stats := mon.GetStats()
		ctx.JSON(http.StatusOK, gin.H{
			"account": c.Account,
			"source":  c.SourceMode,
			"channel": c.Channel,
			"stats":   stats,
		})
	})

	return &http.Server{
		Addr:         ":" + c.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
