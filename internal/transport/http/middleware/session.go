package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"agritradehub/internal/domain"
	resp "agritradehub/internal/transport/http/response"
)

const keyPrincipal = "principal"

// Authenticator resolves a client-held token to a Principal.
type Authenticator interface {
	Authenticate(ctx *gin.Context) (domain.Principal, error)
}

// SessionAuthenticator pulls the signed token from the session cookie or a
// Bearer header and asks the auth service to resolve it.
type SessionAuthenticator struct {
	CookieName string
	Resolve    func(c *gin.Context, token string) (domain.Principal, error)
}

func (a *SessionAuthenticator) Authenticate(c *gin.Context) (domain.Principal, error) {
	token := ""
	if cookie, err := c.Cookie(a.CookieName); err == nil {
		token = cookie
	}
	if token == "" {
		if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
			token = strings.TrimPrefix(ah, "Bearer ")
		}
	}
	if token == "" {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	return a.Resolve(c, token)
}

// RequireAuth rejects requests without an active session.
func RequireAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := a.Authenticate(c)
		if err != nil {
			// every failure looks the same to the client
			resp.Fail(c, http.StatusUnauthorized, resp.MsgUnauthorized)
			return
		}
		c.Set(keyPrincipal, p)
		c.Next()
	}
}

// RequireRole gates a route to one role. A wrong role is rejected exactly
// like a missing session: same status, same body.
func RequireRole(a Authenticator, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := a.Authenticate(c)
		if err != nil || p.Role != role {
			resp.Fail(c, http.StatusUnauthorized, resp.MsgUnauthorized)
			return
		}
		c.Set(keyPrincipal, p)
		c.Next()
	}
}

// PrincipalFrom returns the principal set by RequireAuth/RequireRole.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(keyPrincipal)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}
