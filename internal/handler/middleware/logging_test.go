package middleware_test

import (
	"net/http"
	"testing"

	"saulstari/internal/handler/middleware"
	"saulstari/internal/pkg/config"
	"saulstari/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware_RequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	logger := middleware.NewLogger(config.NewTestConfig().Log)
	router := gin.New()
	router.Use(logger.LoggingMiddleware())

	var captured string
	router.GET("/ping", func(c *gin.Context) {
		captured = middleware.GetRequestID(c)
		c.Status(http.StatusNoContent)
	})

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/ping", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotEmpty(t, captured)
	_, err := uuid.Parse(captured)
	assert.NoError(t, err, "request id should be a uuid")

	first := captured
	httptest.PerformRequest(t, router, http.MethodGet, "/ping", nil)
	assert.NotEqual(t, first, captured, "each request gets a fresh id")
}

func TestGetRequestID_WithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	var captured string
	router.GET("/ping", func(c *gin.Context) {
		captured = middleware.GetRequestID(c)
		c.Status(http.StatusNoContent)
	})

	httptest.PerformRequest(t, router, http.MethodGet, "/ping", nil)
	assert.Empty(t, captured)
}
