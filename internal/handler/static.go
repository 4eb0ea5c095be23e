package handler

import (
	"io/fs"
	"net/http"

	"saulstari/internal/handler/middleware"
	"saulstari/web"

	"github.com/gin-gonic/gin"
)

// setupStatic mounts the embedded site. Public pages fall through NoRoute so
// they never shadow API routes; the admin panel sits behind the auth gate
// with a redirect to the login form for browsers.
func setupStatic(engine *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	public, err := fs.Sub(web.Files, "public")
	if err != nil {
		panic("embedded public assets missing: " + err.Error())
	}
	admin, err := fs.Sub(web.Files, "admin")
	if err != nil {
		panic("embedded admin assets missing: " + err.Error())
	}

	adminGroup := engine.Group("/admin")
	adminGroup.Use(authMiddleware.RequirePageAuth())
	adminGroup.StaticFS("/", http.FS(admin))

	engine.NoRoute(gin.WrapH(http.FileServer(http.FS(public))))
}
