package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-backend/internal/delivery/http/middleware"
	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(string(domain.KeyRequestID)))
	})

	t.Run("Should mint an id when none is sent", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/", nil)
		id := w.Header().Get(middleware.RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("Should reuse a well-formed inbound id", func(t *testing.T) {
		const inbound = "6f1c2f53-8a4e-4a53-9f43-0d5b0d5c9e11"
		w := perform(r, http.MethodGet, "/", map[string]string{middleware.RequestIDHeader: inbound})
		assert.Equal(t, inbound, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("Should replace a malformed inbound id", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/", map[string]string{middleware.RequestIDHeader: "<script>"})
		assert.NotEqual(t, "<script>", w.Header().Get(middleware.RequestIDHeader))
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler())
	r.GET("/app", func(c *gin.Context) {
		c.Error(apperror.Unprocessable("Please correct the highlighted fields.", gin.H{"fields": gin.H{"name": "too_short"}}))
	})
	r.GET("/internal", func(c *gin.Context) {
		c.Error(errors.New("database password is hunter2"))
	})

	t.Run("Should render app errors with their status and details", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/app", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		resp := decode(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, "Please correct the highlighted fields.", resp.Message)
		assert.NotEmpty(t, resp.RequestID)
		assert.Equal(t, map[string]interface{}{"fields": map[string]interface{}{"name": "too_short"}}, resp.Error)
	})

	t.Run("Should hide unexpected errors", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/internal", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "hunter2")
	})
}

func TestRateLimitMemoryFallback(t *testing.T) {
	config := middleware.ContactSubmitRateLimitConfig(2, time.Minute)
	config.RedisClient = func() *goredis.Client { return nil }

	r := gin.New()
	r.POST("/contact", middleware.RateLimitMiddleware(config), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("Should allow requests up to the limit", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			w := perform(r, http.MethodPost, "/contact", nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		}
	})

	t.Run("Should reject the next request with Retry-After", func(t *testing.T) {
		w := perform(r, http.MethodPost, "/contact", nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("Should track clients separately", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = "203.0.113.9:4321"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORSMiddleware([]string{"https://mikezhan.dev"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("Should echo an allowed origin", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/", map[string]string{"Origin": "https://mikezhan.dev"})
		assert.Equal(t, "https://mikezhan.dev", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Should not grant unknown origins", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/", map[string]string{"Origin": "https://evil.example"})
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

		w = perform(r, http.MethodOptions, "/", map[string]string{"Origin": "https://evil.example"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Should answer preflight for allowed origins", func(t *testing.T) {
		w := perform(r, http.MethodOptions, "/", map[string]string{"Origin": "https://mikezhan.dev"})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(middleware.SecurityHeadersMiddleware())
	r.GET("/v1/contact/forms/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/v1/portfolio/profile", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/v1/contact/forms/abc", nil)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	w = perform(r, http.MethodGet, "/v1/portfolio/profile", nil)
	assert.Empty(t, w.Header().Get("Cache-Control"))
}
