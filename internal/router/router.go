package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/coiffly/salon-api/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// AppointmentHandler splits its routes across the public booking
// surface and the authenticated back office.
type AppointmentHandler interface {
	RegisterPublicRoutes(*gin.RouterGroup)
	RegisterAdminRoutes(*gin.RouterGroup)
}

type EngineHandler interface {
	RegisterRoutes(*gin.Engine)
}

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	Timeout    time.Duration
	CORSConfig middleware.CORSConfig
}

type Router struct {
	engine  *gin.Engine
	auth    *middleware.AuthMiddleware
	metrics *routerMetrics

	healthH       EngineHandler
	authH         Handler
	availabilityH Handler
	appointmentH  AppointmentHandler
	salonH        Handler
	catalogH      Handler
	staffH        Handler
	customerH     Handler
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	healthH EngineHandler,
	authH Handler,
	availabilityH Handler,
	appointmentH AppointmentHandler,
	salonH Handler,
	catalogH Handler,
	staffH Handler,
	customerH Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:        engine,
		auth:          auth,
		metrics:       initRouterMetrics("salon_api"),
		healthH:       healthH,
		authH:         authH,
		availabilityH: availabilityH,
		appointmentH:  appointmentH,
		salonH:        salonH,
		catalogH:      catalogH,
		staffH:        staffH,
		customerH:     customerH,
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: timeout}),
		middleware.CORS(config.CORSConfig),
	)

	if config.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	r.healthH.RegisterRoutes(r.engine)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	// Public surface: what customers hit from the booking widget.
	r.authH.RegisterRoutes(api)
	r.availabilityH.RegisterRoutes(api)
	r.catalogH.RegisterRoutes(api)
	r.appointmentH.RegisterPublicRoutes(api)

	// Back-office surface, staff logins only.
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.appointmentH.RegisterAdminRoutes(protected)
	r.salonH.RegisterRoutes(protected)
	r.customerH.RegisterRoutes(protected)
	r.staffH.RegisterRoutes(protected)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
