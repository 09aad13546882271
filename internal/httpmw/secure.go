package httpmw

import "github.com/gin-gonic/gin"

// SecureHeaders sets baseline hardening headers on every response.
// HSTS is only meaningful (and only safe) behind TLS, so it is limited to
// production deploys.
func SecureHeaders(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		if production {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}
