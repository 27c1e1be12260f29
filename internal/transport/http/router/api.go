package router

import (
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agritradehub/internal/domain"
	"agritradehub/internal/service"
	"agritradehub/internal/transport/http/handler"
	mdw "agritradehub/internal/transport/http/middleware"
	"agritradehub/internal/tts"
)

type Deps struct {
	Log           *zap.Logger
	DB            *gorm.DB
	Auth          *service.AuthService
	Users         *service.UserService
	Products      *service.ProductService
	Orders        *service.OrderService
	Stats         *service.StatsService
	TTS           *tts.Client
	CookieName    string
	SecureCookies bool
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.SecureHeaders(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)
	r.Use(cors.Default())

	handler.NewHealthHandler(d.DB).Mount(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authn := &mdw.SessionAuthenticator{
		CookieName: d.CookieName,
		Resolve: func(c *gin.Context, token string) (domain.Principal, error) {
			return d.Auth.Authenticate(c.Request.Context(), token)
		},
	}

	var reg Registry
	reg.Register(handler.NewAuthHandler(d.Auth, authn, d.CookieName, d.SecureCookies))
	reg.Register(handler.NewUserHandler(d.Users, authn, d.Log))
	reg.Register(handler.NewProductHandler(d.Products, authn, d.Log))
	reg.Register(handler.NewOrderHandler(d.Orders, authn, d.Log))
	reg.Register(handler.NewDashboardHandler(d.Stats, authn, d.Log))
	reg.Register(handler.NewTTSHandler(d.TTS, authn, d.Log))
	reg.MountAll(r.Group("/api"))

	return r
}
