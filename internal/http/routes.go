package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Observe())

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/participants", h.CreateParticipant)
	r.GET("/participants", h.ListParticipants)
	r.POST("/messages", RateLimitMessages(h.rl, h.Redis, h.RateLimitPerMin), h.CreateMessage)
	r.GET("/messages", h.ListMessages)
	r.POST("/status", h.Heartbeat)

	return r
}
