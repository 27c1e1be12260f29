package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agritradehub/internal/domain"
	"agritradehub/internal/service"
	mdw "agritradehub/internal/transport/http/middleware"
	resp "agritradehub/internal/transport/http/response"
)

type ProductHandler struct {
	svc  *service.ProductService
	auth mdw.Authenticator
	log  *zap.Logger
}

func NewProductHandler(svc *service.ProductService, auth mdw.Authenticator, log *zap.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, auth: auth, log: log}
}

func (h *ProductHandler) MountAPI(g *gin.RouterGroup) {
	// listing is public: the storefront fetches it without a session
	g.GET("/products", h.list)
	// mutations and exports are for farm accounts only
	g.POST("/products", mdw.RequireRole(h.auth, domain.RoleFarm), h.add)
	g.GET("/products/export", mdw.RequireRole(h.auth, domain.RoleFarm), h.exportCSV)
}

func (h *ProductHandler) list(c *gin.Context) {
	ps, err := h.svc.List(c.Request.Context(), c.Query("search"),
		intQuery(c, "offset", 0), intQuery(c, "limit", service.DefaultPageLimit))
	if err != nil {
		h.log.Error("list products failed", zap.Error(err))
		resp.FromError(c, err)
		return
	}
	out := make([]gin.H, 0, len(ps))
	for _, p := range ps {
		out = append(out, gin.H{
			"id": p.ID, "name": p.Name, "price": p.Price, "image_url": p.ImageURL,
		})
	}
	c.JSON(http.StatusOK, out)
}

type addProductIn struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	ImageURL string `json:"image_url"`
}

func (h *ProductHandler) add(c *gin.Context) {
	var in addProductIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FromBindError(c, err)
		return
	}
	p, err := h.svc.Add(c.Request.Context(), in.Name, in.Price, in.ImageURL)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product added", "product": p})
}

func (h *ProductHandler) exportCSV(c *gin.Context) {
	filename := fmt.Sprintf("products_%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := h.svc.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		h.log.Error("product export failed", zap.Error(err))
		if !c.Writer.Written() {
			resp.FromError(c, err)
		}
	}
}
