package chat

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	"aethorias_chronicle_server/internal/model"
	"aethorias_chronicle_server/pkg/enum/chat/chat_message_type_enum"
	"aethorias_chronicle_server/pkg/errorx"
)

type allowAll struct{}

func (allowAll) CheckActiveOrDm(userId, campaignUuid string) error { return nil }

type denyAll struct{}

func (denyAll) CheckActiveOrDm(userId, campaignUuid string) error {
	return errorx.New(errorx.CodeForbidden, "不是该战役的成员")
}

func seedMessages(t *testing.T, repos *repository.Repositories, campaignUuid string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := repos.ChatMessage.Create(&model.ChatMessage{
			Uuid:         int64(i + 1),
			CampaignUuid: campaignUuid,
			SenderId:     "U_sender0001",
			SenderName:   "骰手",
			Type:         chat_message_type_enum.CHAT_MESSAGE,
			Payload:      fmt.Sprintf(`{"text":"第%d条"}`, i+1),
			SendAt:       sql.NullTime{Time: time.Now(), Valid: true},
		}); err != nil {
			t.Fatalf("写入消息失败: %v", err)
		}
	}
}

func TestGetMessageList(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	seedMessages(t, repos, testCampaign, 5)
	svc := NewChatService(repos, allowAll{}, nil)

	messages, err := svc.GetMessageList("U_reader0001", testCampaign, 3)
	if err != nil {
		t.Fatalf("拉取历史消息失败: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("期望 3 条，实际 %d", len(messages))
	}
	// 新在前
	if messages[0].Uuid != 5 || messages[2].Uuid != 3 {
		t.Fatalf("排序应新在前: 首条 %d 末条 %d", messages[0].Uuid, messages[2].Uuid)
	}
	if messages[0].SendAt == "" {
		t.Fatal("响应应带发送时间")
	}

	// limit 缺省取默认值，拿到全部 5 条
	messages, err = svc.GetMessageList("U_reader0001", testCampaign, 0)
	if err != nil {
		t.Fatalf("拉取历史消息失败: %v", err)
	}
	if len(messages) != 5 {
		t.Fatalf("期望 5 条，实际 %d", len(messages))
	}
}

func TestGetMessageListMembershipGuard(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	seedMessages(t, repos, testCampaign, 1)
	svc := NewChatService(repos, denyAll{}, nil)

	_, err := svc.GetMessageList("U_reader0001", testCampaign, 10)
	if err == nil || errorx.GetCode(err) != errorx.CodeForbidden {
		t.Fatalf("非成员应被拒绝，实际 %v", err)
	}
}
