package httpapi

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// 全站請求上限，對應驗證路徑之外的一般防護。
const (
	generalRatePerMinute = 100
	generalRateBurst     = 100
)

// requireAuth 是所有保護路徑共用的授權判斷，不在個別 handler 重查模式旗標。
func (s *Server) requireAuth(c *gin.Context) {
	token, _ := c.Cookie(sessionCookieName)
	if !s.authz.IsAuthorized(token) {
		jsonError(c, http.StatusUnauthorized, errCodeUnauthorized, "Authentication required")
		c.Abort()
		return
	}
	c.Next()
}

// generalRateLimit 為每個來源 IP 維護一個 token bucket。
func (s *Server) generalRateLimit() gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		mu.Lock()
		lim, ok := limiters[ip]
		if !ok {
			lim = rate.NewLimiter(rate.Limit(generalRatePerMinute)/60, generalRateBurst)
			limiters[ip] = lim
		}
		mu.Unlock()

		if !lim.Allow() {
			jsonError(c, http.StatusTooManyRequests, errCodeRateLimited, "Too many requests. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		reqID := uuid.NewString()
		c.Set("requestID", reqID)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Printf("[HTTP] %s | %3d | %13v | %-7s %s",
			reqID[:8],
			status,
			latency,
			c.Request.Method,
			path,
		)
	}
}

func secureHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"media-src 'self' blob: https://*.r2.cloudflarestorage.com; "+
				"connect-src 'self' https://*.r2.cloudflarestorage.com; "+
				"img-src 'self' data: blob:")
		c.Next()
	}
}
