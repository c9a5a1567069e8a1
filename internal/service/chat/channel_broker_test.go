package chat

import (
	"context"
	"testing"
	"time"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	"aethorias_chronicle_server/pkg/constants"
	"aethorias_chronicle_server/pkg/enum/chat/chat_message_type_enum"
	"aethorias_chronicle_server/pkg/errorx"
)

func TestChannelBrokerDeliver(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	hub := NewHub()
	broker := NewChannelBroker(NewProcessor(repos, hub, nil))
	go broker.Start()
	defer broker.Close()

	conn := newTestConn("U_sender0001", testCampaign, 4)
	hub.Register(conn)

	frame := marshalEnvelope(t, chat_message_type_enum.CHAT_MESSAGE, map[string]string{"text": "hi"})
	if err := broker.Publish(context.Background(), frame); err != nil {
		t.Fatalf("投递失败: %v", err)
	}

	select {
	case <-conn.SendBack:
	case <-time.After(2 * time.Second):
		t.Fatal("消费循环未投递广播帧")
	}
}

func TestChannelBrokerFull(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	broker := NewChannelBroker(NewProcessor(repos, NewHub(), nil))
	// 不启动消费循环，填满缓冲
	for i := 0; i < constants.CHANNEL_SIZE; i++ {
		if err := broker.Publish(context.Background(), []byte("{}")); err != nil {
			t.Fatalf("缓冲未满时投递不应失败: %v", err)
		}
	}

	err := broker.Publish(context.Background(), []byte("{}"))
	if err == nil || errorx.GetCode(err) != errorx.CodeServerBusy {
		t.Fatalf("缓冲满时应返回服务繁忙，实际 %v", err)
	}
}
