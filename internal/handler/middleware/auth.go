package middleware

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"saulstari/internal/domain/auth"
	"saulstari/internal/pkg/cookie"
	"saulstari/internal/usecase"

	"github.com/gin-gonic/gin"
)

const (
	ctxAuthUserKey = "auth_user"
	ctxAuthRoleKey = "auth_role"

	basicRealm = `Basic realm="Saulstari Admin"`
)

// AuthMiddleware resolves a role for each inbound request. Resolution order:
// a valid session token (cookie, then Bearer header) wins; otherwise Basic
// credentials are checked against the configured pairs; otherwise the request
// is rejected before it can touch the repository.
type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
	authUseCase    usecase.AuthUseCase
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator, authUseCase usecase.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
		authUseCase:    authUseCase,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.resolve(c) {
			c.Next()
			return
		}

		c.Header("WWW-Authenticate", basicRealm)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authorization required",
		})
		c.Abort()
	}
}

// RequirePageAuth guards the embedded admin pages: browsers get a redirect to
// the login form instead of a JSON body.
func (m *AuthMiddleware) RequirePageAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.resolve(c) {
			c.Next()
			return
		}

		c.Redirect(http.StatusFound, "/login.html")
		c.Abort()
	}
}

func (m *AuthMiddleware) resolve(c *gin.Context) bool {
	token := cookie.GetSessionToken(c)
	if token == "" {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}
	}

	if token != "" {
		user, role, err := m.tokenValidator.ValidateToken(token)
		if err == nil {
			setAuthContext(c, user, role)
			return true
		}
		slog.Warn("token validation failed", "error", err.Error())
		// fall through to static credentials
	}

	if creds, ok := parseBasicAuth(c); ok {
		role, err := m.authUseCase.ResolveCredentials(creds)
		if err == nil {
			setAuthContext(c, creds.Username(), role)
			return true
		}
	}

	return false
}

func parseBasicAuth(c *gin.Context) (auth.Credentials, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Basic ") {
		return auth.Credentials{}, false
	}

	decoded, err := base64.StdEncoding.DecodeString(authHeader[len("Basic "):])
	if err != nil {
		return auth.Credentials{}, false
	}

	username, pass, found := strings.Cut(string(decoded), ":")
	if !found {
		return auth.Credentials{}, false
	}

	creds, err := auth.NewCredentials(username, pass)
	if err != nil {
		return auth.Credentials{}, false
	}
	return creds, true
}

func setAuthContext(c *gin.Context, user string, role auth.Role) {
	c.Set(ctxAuthUserKey, user)
	c.Set(ctxAuthRoleKey, role)
}

func GetAuthUser(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxAuthUserKey)
	if !exists {
		return "", false
	}

	user, ok := v.(string)
	return user, ok
}

func GetRole(c *gin.Context) (auth.Role, bool) {
	v, exists := c.Get(ctxAuthRoleKey)
	if !exists {
		return "", false
	}

	role, ok := v.(auth.Role)
	return role, ok
}

// GetCapabilities resolves the capability set once so handlers never compare
// role strings directly.
func GetCapabilities(c *gin.Context) auth.Capabilities {
	role, ok := GetRole(c)
	if !ok {
		return auth.Capabilities{}
	}
	return role.Capabilities()
}
