package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/auth"
)

// HeaderRequestID carries the per-request correlation id.
const HeaderRequestID = fiber.HeaderXRequestID

// RequestLogger logs one line per request and feeds the metrics counters. It
// must run outside the error handler so the final status is visible.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := utils.CopyString(c.Get(HeaderRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(HeaderRequestID, requestID)

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()
		method := utils.CopyString(c.Method())
		path := utils.CopyString(c.Path())
		metrics.RecordRequest(RouteKey(c), method, status, duration)

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
		}
		if identity, ok := auth.IdentityFromContext(c.UserContext()); ok {
			fields = append(fields, zap.String("user", identity.Username))
		}
		logger.Info("request completed", fields...)
		return err
	}
}
