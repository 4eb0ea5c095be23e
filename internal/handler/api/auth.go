package api

import (
	"errors"
	"net/http"

	reqdto "saulstari/internal/handler/dto/request"
	resdto "saulstari/internal/handler/dto/response"
	"saulstari/internal/handler/middleware"
	"saulstari/internal/pkg/config"
	"saulstari/internal/pkg/cookie"
	"saulstari/internal/pkg/jwt"
	"saulstari/internal/pkg/metrics"
	"saulstari/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	jwtService  *jwt.Service
	cookieCfg   config.CookieConfig
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, jwtService *jwt.Service, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		jwtService:  jwtService,
		cookieCfg:   cfg.Cookie,
	}
}

// Login checks the static credential pairs and issues the session cookie.
// The rejection body is identical for an unknown username and a wrong
// password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	credentials, err := req.ToDomain()
	if err != nil {
		metrics.LoginFailures.Inc()
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid username or password",
		})
		return
	}

	token, role, err := h.authUseCase.Login(credentials)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			metrics.LoginFailures.Inc()
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid username or password",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	cookie.SetSessionCookie(c, h.cookieCfg, token, h.jwtService.TokenDuration())
	c.JSON(http.StatusOK, resdto.LoginResponse{OK: true, Role: role.String()})
}

// Logout clears the client-held token. There is no server-side revocation
// list; a cleared cookie is simply no longer presented.
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearSessionCookie(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// Me reports the resolved role so the admin client can scope its table.
func (h *AuthHandler) Me(c *gin.Context) {
	role, ok := middleware.GetRole(c)
	if !ok {
		// should be unreachable behind RequireAuth
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.MeResponse{Role: role.String()})
}
