package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CacheStatusKey is the context key handlers set to HIT or MISS.
const CacheStatusKey = "cache_status"

func Logger(logger *zap.Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(params gin.LogFormatterParams) string {
		fields := []zap.Field{
			zap.String("method", params.Method),
			zap.String("path", params.Path),
			zap.Int("status", params.StatusCode),
			zap.Duration("latency", params.Latency),
			zap.String("client_ip", params.ClientIP),
			zap.String("user_agent", params.Request.UserAgent()),
		}
		if cache, ok := params.Keys[CacheStatusKey].(string); ok {
			fields = append(fields, zap.String("cache", cache))
		}

		switch {
		case params.StatusCode >= 500:
			logger.Error("HTTP Request", fields...)
		case params.StatusCode >= 400:
			logger.Warn("HTTP Request", fields...)
		default:
			logger.Info("HTTP Request", fields...)
		}
		return ""
	})
}
