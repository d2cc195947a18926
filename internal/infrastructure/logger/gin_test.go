package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func findEntry(t *testing.T, recorded *observer.ObservedLogs, msg string) observer.LoggedEntry {
	t.Helper()
	entries := recorded.FilterMessage(msg).All()
	require.NotEmpty(t, entries, "no %q entry", msg)
	return entries[0]
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{"success logs info", http.StatusSeeOther, zapcore.InfoLevel},
		{"client error logs warn", http.StatusBadRequest, zapcore.WarnLevel},
		{"server error logs error", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.InfoLevel)
			router := gin.New()
			router.Use(func(c *gin.Context) {
				c.Set("request_id", "req-7")
				c.Next()
			})
			router.Use(GinMiddleware(zap.New(core)))
			router.POST("/admin", func(c *gin.Context) {
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/admin?edit=1", nil)
			router.ServeHTTP(w, req)

			entry := findEntry(t, recorded, "HTTP Request")
			assert.Equal(t, tt.level, entry.Level)
			fields := entry.ContextMap()
			assert.Equal(t, "req-7", fields["request_id"])
			assert.Equal(t, "POST", fields["method"])
			assert.Equal(t, "/admin", fields["path"])
			assert.Equal(t, "edit=1", fields["query"])
			assert.EqualValues(t, tt.status, fields["status"])
		})
	}
}

func TestGinMiddleware_PropagatesRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "req-ctx")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/admin", func(c *gin.Context) {
		assert.Equal(t, "req-ctx", GetRequestID(c.Request.Context()))
		FromContext(c.Request.Context()).Info("from handler")
		GetGinLogger(c).Info("from gin")
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, "req-ctx", findEntry(t, recorded, "from handler").ContextMap()["request_id"])
	assert.Equal(t, "req-ctx", findEntry(t, recorded, "from gin").ContextMap()["request_id"])
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	entry := findEntry(t, recorded, "Panic recovered")
	assert.Equal(t, "/boom", entry.ContextMap()["path"])
}

func TestGetGinLogger_NotSet(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, GetGinLogger(c))
}
