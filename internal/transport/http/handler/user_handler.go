package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agritradehub/internal/service"
	mdw "agritradehub/internal/transport/http/middleware"
	resp "agritradehub/internal/transport/http/response"
)

type UserHandler struct {
	svc  *service.UserService
	auth mdw.Authenticator
	log  *zap.Logger
}

func NewUserHandler(svc *service.UserService, auth mdw.Authenticator, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, auth: auth, log: log}
}

func (h *UserHandler) MountAPI(g *gin.RouterGroup) {
	// any authenticated principal may list users
	g.GET("/users", mdw.RequireAuth(h.auth), h.list)
}

func (h *UserHandler) list(c *gin.Context) {
	offset := intQuery(c, "offset", 0)
	limit := intQuery(c, "limit", service.DefaultPageLimit)

	users, _, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		h.log.Error("list users failed", zap.Error(err))
		resp.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func intQuery(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
