// Package chat 实现战役实时通道
// broker.go
// 核心职责：定义消息代理接口
// 抽象信封的投递路径，支持 Kafka 和 Channel 两种实现
package chat

import "context"

// MessageBroker 消息代理接口
// 网关把打包好的信封交给 Publish，消费循环取出后交给 Processor
type MessageBroker interface {
	// Publish 投递一条信封（JSON bytes）
	Publish(ctx context.Context, msg []byte) error
	// Start 启动消费循环，阻塞调用
	Start()
	// Close 关闭代理资源
	Close()
}
