package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agritradehub/internal/service"
	mdw "agritradehub/internal/transport/http/middleware"
	resp "agritradehub/internal/transport/http/response"
)

type OrderHandler struct {
	svc  *service.OrderService
	auth mdw.Authenticator
	log  *zap.Logger
}

func NewOrderHandler(svc *service.OrderService, auth mdw.Authenticator, log *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, auth: auth, log: log}
}

func (h *OrderHandler) MountAPI(g *gin.RouterGroup) {
	orders := g.Group("/orders", mdw.RequireAuth(h.auth))
	orders.POST("", h.place)
	orders.GET("", h.list)
	orders.POST("/:id/status", h.setStatus)
	orders.GET("/export", h.exportCSV)
}

type placeOrderIn struct {
	ProductID uint    `json:"product_id"`
	Quantity  string  `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Priority  string  `json:"priority"`
	Notes     string  `json:"notes"`
}

func (h *OrderHandler) place(c *gin.Context) {
	var in placeOrderIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FromBindError(c, err)
		return
	}
	o, err := h.svc.Place(c.Request.Context(), in.ProductID, in.Quantity, in.UnitPrice, in.Priority, in.Notes)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully!", "order": o})
}

func (h *OrderHandler) list(c *gin.Context) {
	productID, _ := strconv.ParseUint(c.Query("product_id"), 10, 32)
	os, err := h.svc.List(c.Request.Context(), c.Query("status"), uint(productID),
		intQuery(c, "offset", 0), intQuery(c, "limit", service.DefaultPageLimit))
	if err != nil {
		h.log.Error("list orders failed", zap.Error(err))
		resp.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, os)
}

type orderStatusIn struct {
	Status string `json:"status"`
}

func (h *OrderHandler) setStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		resp.Fail(c, http.StatusBadRequest, resp.MsgValidation)
		return
	}
	var in orderStatusIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FromBindError(c, err)
		return
	}
	if err := h.svc.SetStatus(c.Request.Context(), uint(id), in.Status); err != nil {
		resp.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Order #%d marked as %s", id, in.Status),
	})
}

func (h *OrderHandler) exportCSV(c *gin.Context) {
	filename := fmt.Sprintf("orders_%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := h.svc.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		h.log.Error("order export failed", zap.Error(err))
		if !c.Writer.Written() {
			resp.FromError(c, err)
		}
	}
}
