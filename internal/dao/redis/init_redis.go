// Package redis 提供 Redis 缓存操作的封装
// 本文件负责连接初始化
package redis

import (
	"strconv"

	"github.com/go-redis/redis/v8"

	"aethorias_chronicle_server/internal/config"
)

var (
	redisClient  *redis.Client
	cacheService AsyncCacheService
)

// Init 按配置建立 Redis 连接并组装缓存服务
// 连接池 50，空闲连接数与异步 Worker 数量匹配
func Init() {
	conf := config.GetConfig()
	addr := conf.RedisConfig.Host + ":" + strconv.Itoa(conf.RedisConfig.Port)

	redisClient = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     conf.RedisConfig.Password,
		DB:           conf.Db,
		PoolSize:     50,
		MinIdleConns: 15,
	})

	// 15 个异步 Worker，任务缓冲 3000
	cacheService = NewRedisCache(redisClient, 15, 3000)
}

// GetCacheService 返回缓存服务实例，供 main 注入 Service 层
func GetCacheService() AsyncCacheService {
	return cacheService
}
