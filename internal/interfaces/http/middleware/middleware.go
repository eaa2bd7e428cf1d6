// Package middleware holds the gin middleware shared by every route.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/monitoring/logging"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/monitoring/prometheus"
	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

// RequestLogger logs one structured line per request.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.FullPath()),
			logging.Int("status", c.Writer.Status()),
			logging.Duration("duration", time.Since(start)),
			logging.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("request failed", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Warn("request rejected", fields...)
		default:
			logger.Info("request served", fields...)
		}
	}
}

// Metrics records request counts, latency and in-flight gauge.
func Metrics(m *prometheus.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPActiveRequests.Inc()
		start := time.Now()
		c.Next()
		m.HTTPActiveRequests.Dec()

		m.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// CORS answers preflight requests and stamps the allow headers.  An origins
// list containing "*" allows everything.
func CORS(origins []string) gin.HandlerFunc {
	allowAll := false
	allowed := map[string]bool{}
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			if allowAll {
				c.Header("Access-Control-Allow-Origin", "*")
			} else {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RateLimit enforces a fixed-window per-client request budget.  Windows are
// one minute wide; the map is pruned as windows roll over.
func RateLimit(perMinute int) gin.HandlerFunc {
	type window struct {
		start time.Time
		count int
	}

	var (
		mu      sync.Mutex
		clients = map[string]*window{}
	)

	return func(c *gin.Context) {
		if perMinute <= 0 {
			c.Next()
			return
		}

		ip := clientKey(c)
		now := time.Now()

		mu.Lock()
		w, ok := clients[ip]
		if !ok || now.Sub(w.start) >= time.Minute {
			for key, other := range clients {
				if now.Sub(other.start) >= time.Minute {
					delete(clients, key)
				}
			}
			w = &window{start: now}
			clients[ip] = w
		}
		w.count++
		over := w.count > perMinute
		mu.Unlock()

		if over {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status": "error",
				"error": gin.H{
					"code":    string(pkgerrors.ErrCodeTooManyRequests),
					"message": "rate limit exceeded",
				},
			})
			return
		}
		c.Next()
	}
}

func clientKey(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = strings.Split(c.Request.RemoteAddr, ":")[0]
	}
	return ip
}
