package site

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/metrics"
)

const viewKey = "view_id"

// visitorTracking records a page view after the page renders. Visitors sending
// DNT are skipped. The write happens off the request path.
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.GetHeader("DNT") == "1" || c.Writer.Status() >= 400 {
			return
		}

		visit := metrics.Visit{
			IP:        c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      c.Request.URL.Path,
			ViewID:    c.GetString(viewKey),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.recorder.RecordVisit(ctx, visit); err != nil {
				s.log.Error(err, "record visit")
			}
		}()
	}
}
