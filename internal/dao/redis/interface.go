// Package redis 定义缓存服务接口
// Service 层依赖此接口而非具体 Redis 实现
package redis

import (
	"context"
	"time"
)

// CacheService 缓存读写接口
// 用户单会话 token、图鉴条目、消息历史列表的缓存都走这里
type CacheService interface {
	// Set 设置键值对并指定过期时间
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Get 获取键对应的值，键不存在返回空字符串和 nil
	Get(ctx context.Context, key string) (string, error)
	// GetOrError 获取键对应的值，键不存在返回 CodeNotFound
	GetOrError(ctx context.Context, key string) (string, error)
	// Delete 删除键（如果存在）
	Delete(ctx context.Context, key string) error
	// DeleteByPattern 删除匹配模式的所有键
	DeleteByPattern(ctx context.Context, pattern string) error
}

// AsyncCacheService 带异步任务提交的缓存接口
// 实时通道的缓存失效在广播热路径上，走异步队列
type AsyncCacheService interface {
	CacheService
	// SubmitTask 提交异步缓存任务，队列满时降级为同步执行
	SubmitTask(action func())
}
