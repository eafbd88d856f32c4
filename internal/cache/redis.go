package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/clickpath/internal/config"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client
var redisPrefix string
var redisEnabled bool

// InitRedis 初始化 Redis 客户端
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		redisEnabled = false
		return nil
	}
	addr := strings.TrimSpace(cfg.Host)
	if addr == "" {
		addr = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "cp"
	}

	Use(redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", addr, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}), prefix)
	return nil
}

// Use 注入已创建的客户端
func Use(client *redis.Client, prefix string) {
	redisClient = client
	redisPrefix = prefix
	redisEnabled = client != nil
}

// Close 关闭客户端
func Close() error {
	if redisClient == nil {
		return nil
	}
	err := redisClient.Close()
	redisClient = nil
	redisEnabled = false
	return err
}

// Enabled 判断缓存是否启用
func Enabled() bool {
	return redisEnabled && redisClient != nil
}

// Client 获取 Redis 客户端
func Client() *redis.Client {
	if !Enabled() {
		return nil
	}
	return redisClient
}

// GetJSON 读取 JSON 缓存，未命中返回 false
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !Enabled() {
		return false, nil
	}
	val, err := redisClient.Get(ctx, BuildKey(key)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !Enabled() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return redisClient.Set(ctx, BuildKey(key), payload, ttl).Err()
}

// Del 删除缓存
func Del(ctx context.Context, keys ...string) error {
	if !Enabled() || len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, BuildKey(key))
	}
	return redisClient.Del(ctx, full...).Err()
}

// BuildKey 拼接带前缀的缓存 key
func BuildKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return redisPrefix
	}
	if redisPrefix == "" {
		return trimmed
	}
	return fmt.Sprintf("%s:%s", redisPrefix, trimmed)
}

// Store 以方法形式暴露全局 Redis 缓存，供需要注入缓存的服务使用
type Store struct{}

// GetJSON 读取 JSON 缓存
func (Store) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	return GetJSON(ctx, key, dest)
}

// SetJSON 写入 JSON 缓存
func (Store) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return SetJSON(ctx, key, value, ttl)
}

// Del 删除缓存
func (Store) Del(ctx context.Context, keys ...string) error {
	return Del(ctx, keys...)
}
