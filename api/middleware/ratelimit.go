package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// RateLimit - фиксированное окно на счетчиках Redis, ключ - пользователь
// (или IP до аутентификации) плюс маршрут. Без Redis лимитер выключен;
// при ошибках Redis запросы пропускаются, лимит не должен ронять API.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		subject := c.ClientIP()
		if userID := c.GetInt64("user_id"); userID != 0 {
			subject = strconv.FormatInt(userID, 10)
		}
		key := fmt.Sprintf("ratelimit:%s:%s:%s", c.Request.Method, c.FullPath(), subject)

		// Ключ создается сразу с TTL: EXPIRE после INCR оставил бы
		// вечный счетчик, если между командами оборвется соединение
		ctx := c.Request.Context()
		if err := rdb.SetNX(ctx, key, 0, window).Err(); err != nil {
			c.Next()
			return
		}
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}
