// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController reports liveness of the API and its backing stores.
type HealthController struct {
	dbHealthChecker    func() bool
	redisHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthChecker, redisHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		redisHealthChecker: redisHealthChecker,
	}
}

// Check handles GET /health requests. The endpoint stays 200 even when a
// dependency is down so the response body can say which one.
func (h *HealthController) Check(c *gin.Context) {
	status := func(check func() bool) string {
		if check != nil && check() {
			return "connected"
		}
		return "disconnected"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Database:  status(h.dbHealthChecker),
		Redis:     status(h.redisHealthChecker),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
