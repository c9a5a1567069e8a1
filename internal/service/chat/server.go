// Package chat 实现战役实时通道
// server.go
// 核心职责：实时通道聚合结构和生命周期管理
// 按配置选择 Channel 或 Kafka 模式，封装 Hub、Broker、Processor
package chat

import (
	"go.uber.org/zap"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	myredis "aethorias_chronicle_server/internal/dao/redis"
)

// ChatServer 实时通道聚合结构
type ChatServer struct {
	// Hub 在线连接注册表
	Hub *Hub

	// Broker 消息代理，按配置为 ChannelBroker 或 KafkaBroker
	Broker MessageBroker

	// mode 运行模式: "channel" 或 "kafka"
	mode string
}

// NewChatServer 按模式组装实时通道
// mode 取 "kafka" 时走 Kafka，其余值一律按 "channel" 处理
func NewChatServer(mode string, repos *repository.Repositories, cache myredis.AsyncCacheService) *ChatServer {
	hub := NewHub()
	processor := NewProcessor(repos, hub, cache)

	var broker MessageBroker
	if mode == "kafka" {
		client := NewKafkaClient()
		client.KafkaInit()
		broker = NewKafkaBroker(client, processor)
	} else {
		mode = "channel"
		broker = NewChannelBroker(processor)
	}
	zap.L().Info("chat server init", zap.String("mode", mode))

	return &ChatServer{
		Hub:    hub,
		Broker: broker,
		mode:   mode,
	}
}

// Start 启动消费循环，应在独立 goroutine 中调用
func (s *ChatServer) Start() {
	s.Broker.Start()
}

// Close 关闭代理资源
func (s *ChatServer) Close() {
	s.Broker.Close()
}

// Mode 返回运行模式
func (s *ChatServer) Mode() string {
	return s.mode
}
