package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	// OrderMaxPerMinute limite les soumissions de commandes par sujet
	OrderMaxPerMinute = 5
	orderCooldown     = 1 * time.Minute
)

// OrderRateLimit limite les créations de commande par utilisateur (anti-spam,
// en complément du reCAPTCHA). Compteur Redis avec expiration glissante.
func OrderRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := ProfileFrom(c)
		if !ok {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "order_submit:" + p.UID

		attempts, _ := rdb.Get(ctx, key).Int()
		if attempts >= OrderMaxPerMinute {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Trop de commandes. Réessayez dans 1 minute",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		pipe := rdb.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, orderCooldown)
		pipe.Exec(ctx)

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", OrderMaxPerMinute))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", OrderMaxPerMinute-attempts-1))

		c.Next()
	}
}
