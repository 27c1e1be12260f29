package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"agritradehub/internal/core/database"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Mount attaches /health at the engine root, outside /api.
func (h *HealthHandler) Mount(r gin.IRouter) {
	r.GET("/health", h.health)
}

func (h *HealthHandler) health(c *gin.Context) {
	dbStatus := "ok"
	status := http.StatusOK
	if err := database.Ping(c.Request.Context(), h.db); err != nil {
		dbStatus = "error"
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{
		"status":    dbStatus,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
