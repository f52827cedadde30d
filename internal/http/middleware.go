package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quantumauth-io/quantum-go-utils/log"
)

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		kv := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"duration", time.Since(start).String(),
			"request_id", c.GetString(ctxKeyRequestID),
		}
		if status >= http.StatusInternalServerError {
			log.Error("http request", kv...)
			return
		}
		log.Info("http request", kv...)
	}
}

// loopbackOnly rejects remote peers and Host headers that are not local,
// which also blocks DNS rebinding.
func loopbackOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isLoopbackRequest(c.Request) {
			writeError(c, http.StatusForbidden, HTTPErrorForbiddenText)
			return
		}
		if !isSafeLocalHost(c.Request.Host) {
			writeError(c, http.StatusForbidden, HTTPErrorForbiddenHostText)
			return
		}
		c.Next()
	}
}

type corsPolicy struct {
	allowedOrigins map[string]struct{}
	allowMethods   string
	allowHeaders   string
	maxAge         int
}

func newCORSPolicy(origins []string) corsPolicy {
	p := corsPolicy{
		allowedOrigins: make(map[string]struct{}, len(origins)),
		allowMethods:   corsAllowMethods,
		maxAge:         corsMaxAge,
	}
	for _, o := range origins {
		if o = normalizeOrigin(o); o != "" {
			p.allowedOrigins[o] = struct{}{}
		}
	}
	return p
}

// withCORS lets the page itself and allow-listed origins through. Requests
// without an Origin header are not cross-origin and pass untouched.
func withCORS(policy corsPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		originRaw := c.GetHeader("Origin")
		if originRaw != "" {
			origin := normalizeOrigin(originRaw)
			if origin == "" {
				writeError(c, http.StatusForbidden, HTTPErrorForbiddenOriginText)
				return
			}
			if _, ok := policy.allowedOrigins[origin]; !ok && !sameOrigin(origin, c.Request) {
				writeError(c, http.StatusForbidden, HTTPErrorForbiddenOriginText)
				return
			}

			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Methods", policy.allowMethods)
			if policy.allowHeaders != "" {
				h.Set("Access-Control-Allow-Headers", policy.allowHeaders)
			} else if reqHdrs := c.GetHeader("Access-Control-Request-Headers"); reqHdrs != "" {
				h.Set("Access-Control-Allow-Headers", reqHdrs)
			}
			if policy.maxAge > 0 {
				h.Set("Access-Control-Max-Age", strconv.Itoa(policy.maxAge))
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
