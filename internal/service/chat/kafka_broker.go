// Package chat 实现战役实时通道
// kafka_broker.go
// 核心职责：分布式模式的消息代理
// 信封经 Kafka 流转，key 为战役 UUID，保证同一战役内消息有序
package chat

import (
	"context"

	"encoding/json"

	"go.uber.org/zap"

	"aethorias_chronicle_server/internal/dto/request"
)

// KafkaBroker Kafka 实现
type KafkaBroker struct {
	client    *KafkaClient
	processor *Processor
	quit      chan struct{}
}

// NewKafkaBroker 构造函数，client 需已完成 KafkaInit
func NewKafkaBroker(client *KafkaClient, processor *Processor) *KafkaBroker {
	return &KafkaBroker{
		client:    client,
		processor: processor,
		quit:      make(chan struct{}),
	}
}

// Publish 投递信封，以战役 UUID 作为分区 key
func (b *KafkaBroker) Publish(ctx context.Context, msg []byte) error {
	var env request.ChatEnvelopeRequest
	key := []byte("campaign")
	if err := json.Unmarshal(msg, &env); err == nil && env.CampaignUuid != "" {
		key = []byte(env.CampaignUuid)
	}
	return b.client.WriteMessage(ctx, key, msg)
}

// Start 消费循环，阻塞直到 Close
func (b *KafkaBroker) Start() {
	zap.L().Info("kafka broker start")
	ctx := context.Background()
	for {
		select {
		case <-b.quit:
			zap.L().Info("kafka broker stop")
			return
		default:
		}
		kafkaMessage, err := b.client.Consumer.ReadMessage(ctx)
		if err != nil {
			zap.L().Error(err.Error())
			continue
		}
		b.processor.Process(kafkaMessage.Value)
	}
}

// Close 停止消费循环并释放 Kafka 资源
func (b *KafkaBroker) Close() {
	close(b.quit)
	b.client.KafkaClose()
}
