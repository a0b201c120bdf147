package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coiffly/salon-api/internal/middleware"
	"github.com/coiffly/salon-api/pkg/auth"
)

type stubHandler struct{ path string }

func (s stubHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET(s.path, func(c *gin.Context) { c.Status(http.StatusOK) })
}

type stubHealthHandler struct{}

func (stubHealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health/live", func(c *gin.Context) { c.Status(http.StatusOK) })
}

type stubAppointmentHandler struct{}

func (stubAppointmentHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/appointments", func(c *gin.Context) { c.Status(http.StatusCreated) })
}

func (stubAppointmentHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	appointments.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
	appointments.DELETE("/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
}

// One router per test binary: the prometheus collectors register into
// the default registry and cannot be registered twice.
func TestRouterSurfaces(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", 1)
	r := NewRouter(
		middleware.NewAuthMiddleware(jwtSvc),
		stubHealthHandler{},
		stubHandler{path: "/auth/login"},
		stubHandler{path: "/availability"},
		stubAppointmentHandler{},
		stubHandler{path: "/salons/:id"},
		stubHandler{path: "/services"},
		stubHandler{path: "/staff"},
		stubHandler{path: "/customers"},
		Config{},
	)
	r.Setup()

	do := func(method, path, token string) int {
		req := httptest.NewRequest(method, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.Engine().ServeHTTP(w, req)
		return w.Code
	}

	t.Run("booking surface is public", func(t *testing.T) {
		assert.Equal(t, http.StatusCreated, do(http.MethodPost, "/api/v1/appointments", ""))
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/v1/availability", ""))
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/v1/services", ""))
	})

	t.Run("appointment admin requires a token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/api/v1/appointments", ""))
		assert.Equal(t, http.StatusUnauthorized, do(http.MethodDelete, "/api/v1/appointments/"+uuid.NewString(), ""))

		token, err := jwtSvc.GenerateAccessToken(uuid.New(), uuid.New(), "dana@example.ch", "admin")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/v1/appointments", token))
		assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/api/v1/appointments/"+uuid.NewString(), token))
	})

	t.Run("back office requires a token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/api/v1/staff", ""))
	})
}
