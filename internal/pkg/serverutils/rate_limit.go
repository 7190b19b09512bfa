package serverutils

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware caps message creation per requester with a fixed
// one-minute window in redis. A nil client disables the limiter, and redis
// outages fail open: chat must not stop because the limiter store is down.
func RateLimitMiddleware(rdb *redis.Client, limit int) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if rdb == nil || limit <= 0 {
			return ctx.Next()
		}

		requester := ctx.IP()
		if uid, ok := ctx.Locals("user_id").(string); ok && uid != "" {
			requester = uid
		}
		key := fmt.Sprintf("ratelimit:chat:%s:%s", requester, time.Now().Format("200601021504"))

		count, err := rdb.Incr(ctx.Context(), key).Result()
		if err != nil {
			return ctx.Next()
		}
		if count == 1 {
			rdb.Expire(ctx.Context(), key, time.Minute)
		}
		if count > int64(limit) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(
				ErrorResponse(fiber.StatusTooManyRequests, "too many messages, slow down"))
		}
		return ctx.Next()
	}
}
