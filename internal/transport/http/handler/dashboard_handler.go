package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agritradehub/internal/domain"
	"agritradehub/internal/service"
	mdw "agritradehub/internal/transport/http/middleware"
	resp "agritradehub/internal/transport/http/response"
)

type DashboardHandler struct {
	stats *service.StatsService
	auth  mdw.Authenticator
	log   *zap.Logger
}

func NewDashboardHandler(stats *service.StatsService, auth mdw.Authenticator, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{stats: stats, auth: auth, log: log}
}

func (h *DashboardHandler) MountAPI(g *gin.RouterGroup) {
	g.GET("/dashboard", mdw.RequireRole(h.auth, domain.RoleUser), h.dashboard)
}

func (h *DashboardHandler) dashboard(c *gin.Context) {
	p, ok := mdw.PrincipalFrom(c)
	if !ok {
		resp.Fail(c, http.StatusUnauthorized, resp.MsgUnauthorized)
		return
	}
	stats, err := h.stats.Dashboard(c.Request.Context())
	if err != nil {
		h.log.Error("dashboard stats failed", zap.Error(err))
		resp.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": p, "stats": stats})
}
