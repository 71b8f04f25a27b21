package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var allowedContentTypes = []string{
	"application/json",
	"text/csv",
}

var blockedAgents = []string{
	"sqlmap",
	"nikto",
	"nmap",
	"masscan",
	"<script",
	"javascript:",
}

// InputValidationMiddleware caps body size, checks the content type of
// requests with a body and rejects missing or known scanner user agents
func InputValidationMiddleware(maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBodyBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		}

		if c.Request.Method == http.MethodPost && c.Request.ContentLength != 0 {
			contentType := c.GetHeader("Content-Type")
			if contentType == "" {
				abort(c, http.StatusBadRequest, gin.H{"error": "Content-Type header is required"})
				return
			}
			if !hasAnyPrefix(contentType, allowedContentTypes) {
				abort(c, http.StatusUnsupportedMediaType, gin.H{
					"error":         "Unsupported content type",
					"allowed_types": allowedContentTypes,
				})
				return
			}
		}

		userAgent := strings.ToLower(c.GetHeader("User-Agent"))
		if userAgent == "" {
			abort(c, http.StatusBadRequest, gin.H{"error": "User-Agent header is required"})
			return
		}
		for _, pattern := range blockedAgents {
			if strings.Contains(userAgent, pattern) {
				abort(c, http.StatusForbidden, gin.H{"error": "Request blocked for security reasons"})
				return
			}
		}

		c.Next()
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func abort(c *gin.Context, status int, body gin.H) {
	c.AbortWithStatusJSON(status, body)
}
