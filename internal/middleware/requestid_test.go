package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/guttosm/salesdata/internal/logger"
	"github.com/rs/zerolog"
)

func TestRequestID(t *testing.T) {
	cases := []struct {
		name     string
		incoming string
		reuse    bool
	}{
		{name: "generated when absent", incoming: "", reuse: false},
		{name: "client uuid reused", incoming: "6f1c1b7e-2a59-4a4e-9d7f-0c0f6f0f3a11", reuse: true},
		{name: "garbage replaced", incoming: "not-a-uuid", reuse: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(RequestID())
			r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.incoming != "" {
				req.Header.Set(RequestIDHeader, tc.incoming)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("response id %q is not a uuid", got)
			}
			if tc.reuse && got != tc.incoming {
				t.Fatalf("expected %q to be reused, got %q", tc.incoming, got)
			}
			if !tc.reuse && got == tc.incoming {
				t.Fatalf("expected a fresh id, got %q", got)
			}
		})
	}
}

func TestRequestID_ContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())

	var scoped *zerolog.Logger
	r.GET("/", func(c *gin.Context) {
		scoped = zerolog.Ctx(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if scoped == nil || scoped.GetLevel() == zerolog.Disabled {
		t.Fatalf("expected a request scoped logger in the context")
	}
	if scoped == logger.L() {
		t.Fatalf("expected a child logger, got the global one")
	}
}
