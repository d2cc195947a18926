package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/edusite/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyLimit(t *testing.T) {
	newRouter := func(limit int64) *gin.Engine {
		router := gin.New()
		router.Use(RequestID(), BodyLimit(limit))
		router.POST("/admin", func(c *gin.Context) {
			if err := c.Request.ParseForm(); err != nil {
				c.String(http.StatusBadRequest, "body too large")
				return
			}
			c.String(http.StatusOK, c.Request.PostForm.Get("name"))
		})
		return router
	}

	t.Run("allows form within limit", func(t *testing.T) {
		form := url.Values{"name": {"Hoodie"}}.Encode()
		req := httptest.NewRequest(http.MethodPost, "/admin", strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		newRouter(1024).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Hoodie", w.Body.String())
	})

	t.Run("rejects request exceeding Content-Length limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin", strings.NewReader(strings.Repeat("x", 200)))
		req.Header.Set(RequestIDHeader, "req-big")
		w := httptest.NewRecorder()
		newRouter(100).ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeRequestTooLarge, resp.Error.Code)
		assert.Equal(t, "req-big", resp.Error.RequestID)
	})

	t.Run("caps streaming bodies while reading", func(t *testing.T) {
		form := "name=" + strings.Repeat("x", 100)
		req := httptest.NewRequest(http.MethodPost, "/admin", strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.ContentLength = -1
		w := httptest.NewRecorder()
		newRouter(50).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
