package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"thunderbuddy/config"
)

// NewRedisClient открывает подключение для счетчиков рейт-лимитера
func NewRedisClient(conf config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		Password: conf.Password,
		DB:       conf.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
