// Package chat 实现战役实时通道
// channel_broker.go
// 核心职责：单机模式的消息代理
// 信封经进程内缓冲 channel 流转，适合单实例部署
package chat

import (
	"context"

	"go.uber.org/zap"

	"aethorias_chronicle_server/pkg/constants"
	"aethorias_chronicle_server/pkg/errorx"
)

// ChannelBroker 进程内 channel 实现
type ChannelBroker struct {
	Transmit  chan []byte
	processor *Processor
	quit      chan struct{}
}

// NewChannelBroker 构造函数
func NewChannelBroker(processor *Processor) *ChannelBroker {
	return &ChannelBroker{
		Transmit:  make(chan []byte, constants.CHANNEL_SIZE),
		processor: processor,
		quit:      make(chan struct{}),
	}
}

// Publish 投递信封
// channel 满时直接报错，由网关回发失败提示
func (b *ChannelBroker) Publish(ctx context.Context, msg []byte) error {
	select {
	case b.Transmit <- msg:
		return nil
	default:
		return errorx.New(errorx.CodeServerBusy, "消息通道已满")
	}
}

// Start 消费循环，阻塞直到 Close
func (b *ChannelBroker) Start() {
	zap.L().Info("channel broker start")
	for {
		select {
		case msg := <-b.Transmit:
			b.processor.Process(msg)
		case <-b.quit:
			zap.L().Info("channel broker stop")
			return
		}
	}
}

// Close 停止消费循环
func (b *ChannelBroker) Close() {
	close(b.quit)
}
