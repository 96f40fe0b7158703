package database

import (
	"context"
	"fmt"
	"time"

	"eduagent_backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis 初始化Redis连接，用作LLM响应缓存。
// 连接失败返回错误，由调用方决定是否降级为进程内缓存。
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
