package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func TestHoneybadgerMiddleware_DisabledPassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(HoneybadgerMiddleware("", "test", logrus.New()))
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusTeapot, "short and stout")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("expected status 418, got %d", w.Code)
	}
}

func TestReportable(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, false},
		{http.StatusNoContent, false},
		{http.StatusBadRequest, false},
		{http.StatusNotFound, false},
		{http.StatusMethodNotAllowed, true},
		{http.StatusGatewayTimeout, true},
		{http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		if got := reportable(tt.status); got != tt.want {
			t.Errorf("reportable(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
