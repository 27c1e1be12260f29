package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"agritradehub/internal/service"
	mdw "agritradehub/internal/transport/http/middleware"
	resp "agritradehub/internal/transport/http/response"
)

type AuthHandler struct {
	svc        *service.AuthService
	auth       mdw.Authenticator
	cookieName string
	secure     bool
}

func NewAuthHandler(svc *service.AuthService, auth mdw.Authenticator, cookieName string, secure bool) *AuthHandler {
	return &AuthHandler{svc: svc, auth: auth, cookieName: cookieName, secure: secure}
}

func (h *AuthHandler) MountAPI(g *gin.RouterGroup) {
	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.POST("/logout", h.logout)
	g.GET("/me", mdw.RequireAuth(h.auth), h.me)
}

type registerIn struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *AuthHandler) register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FromBindError(c, err)
		return
	}
	p, token, err := h.svc.Register(c.Request.Context(), in.Name, in.Email, in.Password, in.Role)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"user":    p,
	})
}

type loginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FromBindError(c, err)
		return
	}
	p, token, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome back!",
		"user":    p,
	})
}

func (h *AuthHandler) logout(c *gin.Context) {
	if token := clientToken(c, h.cookieName); token != "" {
		_ = h.svc.Logout(c.Request.Context(), token)
	}
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "You have been logged out"})
}

func (h *AuthHandler) me(c *gin.Context) {
	p, ok := mdw.PrincipalFrom(c)
	if !ok {
		resp.Fail(c, http.StatusUnauthorized, resp.MsgUnauthorized)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, int(h.svc.TTL().Seconds()), "/", "", h.secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secure, true)
}

// clientToken pulls the signed session token from the cookie or, for API
// clients, the Authorization header.
func clientToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
		return strings.TrimPrefix(ah, "Bearer ")
	}
	return ""
}
