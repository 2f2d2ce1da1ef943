package middleware

import "github.com/gin-gonic/gin"

// SecurityHeaders adds security headers. Derived images are meant to be
// embedded by other origins, so resources are marked cross-origin.
func SecurityHeaders() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("X-Frame-Options", "DENY")
		ctx.Header("X-Content-Type-Options", "nosniff")
		ctx.Header("Referrer-Policy", "no-referrer")
		ctx.Header("Cross-Origin-Resource-Policy", "cross-origin")
		if ctx.Request.TLS != nil {
			ctx.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		ctx.Next()
	}
}
