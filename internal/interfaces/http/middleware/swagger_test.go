package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serveSwagger(cfg SwaggerConfig, auth gin.HandlerFunc, remoteAddr string) int {
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg, auth), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec.Code
}

func TestSwaggerProtection(t *testing.T) {
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }

	tests := []struct {
		name   string
		cfg    SwaggerConfig
		auth   gin.HandlerFunc
		remote string
		want   int
	}{
		{"disabled", SwaggerConfig{}, nil, "10.0.0.1:1", http.StatusNotFound},
		{"open", SwaggerConfig{Enabled: true}, nil, "10.0.0.1:1", http.StatusOK},
		{"ip allowed", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.1"}}, nil, "10.0.0.1:1", http.StatusOK},
		{"cidr allowed", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}, nil, "10.1.2.3:1", http.StatusOK},
		{"ip refused", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}, nil, "192.168.1.1:1", http.StatusForbidden},
		{"auth required", SwaggerConfig{Enabled: true, RequireAuth: true}, deny, "10.0.0.1:1", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serveSwagger(tt.cfg, tt.auth, tt.remote))
		})
	}
}

func TestIsIPAllowed(t *testing.T) {
	_, network, _ := net.ParseCIDR("192.168.0.0/16")
	ips := []net.IP{net.ParseIP("127.0.0.1")}

	assert.True(t, isIPAllowed(net.ParseIP("127.0.0.1"), ips, nil))
	assert.True(t, isIPAllowed(net.ParseIP("192.168.4.2"), nil, []*net.IPNet{network}))
	assert.False(t, isIPAllowed(net.ParseIP("8.8.8.8"), ips, []*net.IPNet{network}))
	assert.False(t, isIPAllowed(nil, ips, nil))
}
