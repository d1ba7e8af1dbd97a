package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestRouter(decoder *Decoder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware(decoder, zap.NewNop()))
	router.GET("/me", func(c *gin.Context) {
		token, _ := TokenFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"sub":   IdentityFromContext(c.Request.Context()).SubjectID,
			"token": token,
		})
	})
	router.GET("/admin", RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestMiddleware(t *testing.T) {
	router := newTestRouter(NewDecoder("k"))
	valid := signToken(t, "k", "u1", []string{"junior"}, time.Now().Add(time.Hour))
	admin := signToken(t, "k", "root", []string{"ADMIN"}, time.Now().Add(time.Hour))

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "no header", path: "/me", header: "", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", path: "/me", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "valid token", path: "/me", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: `"sub":"u1"`},
		{name: "admin route as junior", path: "/admin", header: "Bearer " + valid, wantStatus: http.StatusForbidden},
		{name: "admin route as admin", path: "/admin", header: "Bearer " + admin, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}
