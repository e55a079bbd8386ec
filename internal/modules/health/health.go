package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Backend is anything that can report whether its credentials are present.
type Backend interface {
	Configured() bool
}

// Pinger checks a live dependency. Redis is the only one today.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Status struct {
	Status     string `json:"status"`
	Uptime     int64  `json:"uptime"`
	Commerce   bool   `json:"commerce"`
	Content    bool   `json:"content"`
	Newsletter bool   `json:"newsletter"`
	Mail       bool   `json:"mail"`
	Redis      *bool  `json:"redis,omitempty"`
}

type Deps struct {
	Commerce   Backend
	Content    Backend
	Newsletter Backend
	Mail       Backend
	// Redis is nil when the service runs without it.
	Redis   Pinger
	Started time.Time
}

func configured(b Backend) bool {
	return b != nil && b.Configured()
}

func RegisterRoutes(rg *gin.RouterGroup, deps Deps) {
	if deps.Started.IsZero() {
		deps.Started = time.Now()
	}
	rg.GET("/health", func(c *gin.Context) {
		st := Status{
			Status:     "ok",
			Uptime:     int64(time.Since(deps.Started).Seconds()),
			Commerce:   configured(deps.Commerce),
			Content:    configured(deps.Content),
			Newsletter: configured(deps.Newsletter),
			Mail:       configured(deps.Mail),
		}
		code := http.StatusOK
		if deps.Redis != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			ok := deps.Redis.Ping(ctx) == nil
			cancel()
			st.Redis = &ok
			if !ok {
				st.Status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		c.Header("Cache-Control", "no-store")
		c.JSON(code, st)
	})
}
