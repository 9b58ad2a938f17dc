package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	invoicingapp "github.com/billing/backend/internal/application/invoicing"
	"github.com/billing/backend/internal/infrastructure/config"
	"github.com/billing/backend/internal/interfaces/http/handler"
	"github.com/billing/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	var order []string
	r := NewRouter(engine, WithMiddleware(func(c *gin.Context) {
		order = append(order, "api")
		c.Next()
	}))

	group := NewDomainGroup("test", "/test").
		Use(func(c *gin.Context) {
			order = append(order, "group")
			c.Next()
		}).
		GET("/ping", func(c *gin.Context) {
			order = append(order, "handler")
			c.String(http.StatusOK, "pong")
		})
	group.Group("nested", "/nested").DELETE("/:id", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("id"))
	})
	r.Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/test/ping", nil))
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, []string{"api", "group", "handler"}, order)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/test/nested/42", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	g := NewDomainGroup("invoices", "/invoices")
	assert.Equal(t, "invoices", g.Name())
	assert.Equal(t, "/invoices", g.Prefix())

	engine := gin.New()
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	g.GET("", ok).POST("", ok).PUT("/:id", ok).DELETE("/:id", ok)
	g.RegisterRoutes(engine.Group("/api/v1"))

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(method, "/api/v1/invoices", nil))
		assert.Equal(t, http.StatusOK, w.Code, method)
	}
	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(method, "/api/v1/invoices/1", nil))
		assert.Equal(t, http.StatusOK, w.Code, method)
	}
}

// listOnlyService answers List; other methods are never reached in these tests
type listOnlyService struct {
	handler.InvoiceService
}

func (listOnlyService) List(context.Context, uuid.UUID, invoicingapp.ListInvoicesFilter) ([]invoicingapp.InvoiceListItemResponse, int64, error) {
	return []invoicingapp.InvoiceListItemResponse{}, 0, nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestEngine(cfg EngineConfig) *gin.Engine {
	return NewEngine(cfg, Handlers{
		Invoice: handler.NewInvoiceHandler(listOnlyService{}),
		Payment: handler.NewPaymentHandler(nil),
		Health:  handler.NewHealthHandler(okPinger{}, "test"),
	})
}

func serve(engine *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNewEngine_Routes(t *testing.T) {
	engine := newTestEngine(EngineConfig{})

	var routes []string
	for _, r := range engine.Routes() {
		routes = append(routes, r.Method+" "+r.Path)
	}
	sort.Strings(routes)

	for _, want := range []string{
		"POST /api/v1/invoices",
		"GET /api/v1/invoices",
		"GET /api/v1/invoices/:id",
		"GET /api/v1/invoices/number/:number",
		"PUT /api/v1/invoices/:id",
		"DELETE /api/v1/invoices/:id",
		"POST /api/v1/invoices/:id/validate",
		"POST /api/v1/invoices/:id/send",
		"POST /api/v1/invoices/:id/cancel",
		"POST /api/v1/invoices/:id/mark-paid",
		"GET /api/v1/invoices/:id/pdf",
		"POST /api/v1/payments",
		"GET /api/v1/payments",
		"GET /api/v1/payments/:id",
		"GET /api/v1/payments/invoice/:invoiceId",
		"POST /api/v1/payments/:id/confirm",
		"POST /api/v1/payments/:id/fail",
		"POST /api/v1/payments/:id/refund",
		"GET /health",
		"GET /api/v1/health",
		"GET /swagger/*any",
	} {
		assert.Contains(t, routes, want)
	}
}

func TestNewEngine_Authentication(t *testing.T) {
	owner := uuid.NewString()

	t.Run("health needs no identity", func(t *testing.T) {
		w := serve(newTestEngine(EngineConfig{}), http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})

	t.Run("api requires identity", func(t *testing.T) {
		w := serve(newTestEngine(EngineConfig{}), http.MethodGet, "/api/v1/invoices", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("header identity ignored unless allowed", func(t *testing.T) {
		w := serve(newTestEngine(EngineConfig{}), http.MethodGet, "/api/v1/invoices",
			map[string]string{middleware.OwnerHeader: owner})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("header identity accepted when allowed", func(t *testing.T) {
		w := serve(newTestEngine(EngineConfig{AllowHeaderIdentity: true}), http.MethodGet, "/api/v1/invoices",
			map[string]string{middleware.OwnerHeader: owner})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestNewEngine_Swagger(t *testing.T) {
	w := serve(newTestEngine(EngineConfig{}), http.MethodGet, "/swagger/index.html", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(newTestEngine(EngineConfig{Swagger: config.SwaggerConfig{Enabled: true}}), http.MethodGet, "/swagger/index.html", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewEngine_RateLimit(t *testing.T) {
	engine := newTestEngine(EngineConfig{
		AllowHeaderIdentity: true,
		HTTP: config.HTTPConfig{
			RateLimitEnabled:  true,
			RateLimitRequests: 2,
			RateLimitWindow:   time.Hour,
		},
	})
	headers := map[string]string{middleware.OwnerHeader: uuid.NewString()}

	for range 2 {
		require.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/invoices", headers).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, serve(engine, http.MethodGet, "/api/v1/invoices", headers).Code)

	// probes are outside the limited group
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/health", nil).Code)
}

func TestNewEngine_BodyLimit(t *testing.T) {
	engine := newTestEngine(EngineConfig{
		AllowHeaderIdentity: true,
		HTTP:                config.HTTPConfig{MaxBodySize: 8},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", nil)
	req.ContentLength = 1024
	req.Header.Set(middleware.OwnerHeader, uuid.NewString())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
