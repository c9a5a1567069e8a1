// Package chat 实现战役实时通道
// kafka_client.go
// 核心职责：Kafka 基础设施管理
// 封装 Writer/Reader 的初始化与关闭，不含业务逻辑
package chat

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	myconfig "aethorias_chronicle_server/internal/config"
)

// KafkaClient Kafka 客户端
type KafkaClient struct {
	Producer  *kafka.Writer
	Consumer  *kafka.Reader
	KafkaConn *kafka.Conn
}

// NewKafkaClient 创建 Kafka 客户端实例
func NewKafkaClient() *KafkaClient {
	return &KafkaClient{}
}

// KafkaInit 初始化生产者与消费者
func (k *KafkaClient) KafkaInit() {
	kafkaConfig := myconfig.GetConfig().KafkaConfig
	k.Producer = &kafka.Writer{
		Addr:                   kafka.TCP(kafkaConfig.HostPort),
		Topic:                  kafkaConfig.CampaignTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           kafkaConfig.Timeout * time.Second,
		RequiredAcks:           kafka.RequireNone,
		AllowAutoTopicCreation: false,
	}
	k.Consumer = kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{kafkaConfig.HostPort},
		Topic:          kafkaConfig.CampaignTopic,
		CommitInterval: kafkaConfig.Timeout * time.Second,
		GroupID:        "campaign",
		StartOffset:    kafka.LastOffset,
	})
}

// KafkaClose 关闭生产者与消费者
func (k *KafkaClient) KafkaClose() {
	if err := k.Producer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	if err := k.Consumer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
}

// CreateTopic 按配置创建 topic，已存在时 Kafka 端幂等
func (k *KafkaClient) CreateTopic() {
	kafkaConfig := myconfig.GetConfig().KafkaConfig
	var err error
	k.KafkaConn, err = kafka.Dial("tcp", kafkaConfig.HostPort)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	topicConfigs := []kafka.TopicConfig{
		{
			Topic:             kafkaConfig.CampaignTopic,
			NumPartitions:     kafkaConfig.Partition,
			ReplicationFactor: 1,
		},
	}
	if err = k.KafkaConn.CreateTopics(topicConfigs...); err != nil {
		zap.L().Error(err.Error())
	}
}

// WriteMessage 写入一条消息
func (k *KafkaClient) WriteMessage(ctx context.Context, key, value []byte) error {
	return k.Producer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
}
