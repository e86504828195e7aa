package services

import (
	"time"

	dtos "github.com/Open-Source-Life/AxolotlIndex/DTOs"
	"github.com/Open-Source-Life/AxolotlIndex/services/audit"
	"github.com/gofiber/fiber/v2"
)

// ConnectionCounter reports the number of live websocket clients.
type ConnectionCounter interface {
	ClientCount() int
}

func HealthCheck(c *fiber.Ctx, recorder *audit.Recorder, sockets ConnectionCounter) error {
	resp := dtos.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  recorder.Status(),
	}
	if sockets != nil {
		resp.WebSocketClients = sockets.ClientCount()
	}
	return c.JSON(resp)
}
