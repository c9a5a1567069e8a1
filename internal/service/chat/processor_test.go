package chat

import (
	"encoding/json"
	"testing"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/dto/respond"
	"aethorias_chronicle_server/pkg/enum/chat/chat_message_type_enum"
)

const testCampaign = "P_camp000001"

func newTestProcessor(t *testing.T) (*Processor, *Hub, *repository.Repositories) {
	t.Helper()
	repos := repository.NewMemoryRepositories()
	hub := NewHub()
	return NewProcessor(repos, hub, nil), hub, repos
}

func marshalEnvelope(t *testing.T, msgType string, payload any) []byte {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("payload 序列化失败: %v", err)
	}
	data, err := json.Marshal(request.ChatEnvelopeRequest{
		CampaignUuid: testCampaign,
		SenderId:     "U_sender0001",
		SenderName:   "骰手",
		Type:         msgType,
		Payload:      raw,
	})
	if err != nil {
		t.Fatalf("信封序列化失败: %v", err)
	}
	return data
}

func recvFrame(t *testing.T, conn *UserConn) *respond.ChatEnvelopeRespond {
	t.Helper()
	select {
	case data := <-conn.SendBack:
		var frame respond.ChatEnvelopeRespond
		if err := json.Unmarshal(data, &frame); err != nil {
			t.Fatalf("广播帧解析失败: %v", err)
		}
		return &frame
	default:
		t.Fatalf("用户 %s 未收到期望的帧", conn.UserId)
		return nil
	}
}

func assertEmpty(t *testing.T, conn *UserConn) {
	t.Helper()
	select {
	case data := <-conn.SendBack:
		t.Fatalf("用户 %s 不应收到帧: %s", conn.UserId, data)
	default:
	}
}

func TestProcessChatMessage(t *testing.T) {
	processor, hub, repos := newTestProcessor(t)
	sender := newTestConn("U_sender0001", testCampaign, 4)
	other := newTestConn("U_other00001", testCampaign, 4)
	outsider := newTestConn("U_out0000001", "P_other00001", 4)
	hub.Register(sender)
	hub.Register(other)
	hub.Register(outsider)

	payload := map[string]string{"text": "小心陷阱！"}
	processor.Process(marshalEnvelope(t, chat_message_type_enum.CHAT_MESSAGE, payload))

	// 战役全员收到同一帧，其他战役不受影响
	for _, conn := range []*UserConn{sender, other} {
		frame := recvFrame(t, conn)
		if frame.Type != chat_message_type_enum.CHAT_MESSAGE {
			t.Fatalf("期望 chat_message，实际 %s", frame.Type)
		}
		if frame.Uuid == 0 {
			t.Fatal("广播帧应携带雪花 id")
		}
		var got map[string]string
		if err := json.Unmarshal(frame.Payload, &got); err != nil || got["text"] != payload["text"] {
			t.Fatalf("payload 应原样透传: %s", frame.Payload)
		}
	}
	assertEmpty(t, outsider)

	// 落库一条回放记录
	messages, err := repos.ChatMessage.FindByCampaign(testCampaign, 10)
	if err != nil {
		t.Fatalf("查询消息失败: %v", err)
	}
	if len(messages) != 1 || messages[0].Type != chat_message_type_enum.CHAT_MESSAGE {
		t.Fatalf("期望落库 1 条 chat_message，实际 %d 条", len(messages))
	}
	if !messages[0].SendAt.Valid {
		t.Fatal("落库消息应有发送时间")
	}
}

func TestProcessDiceRoll(t *testing.T) {
	processor, hub, repos := newTestProcessor(t)
	sender := newTestConn("U_sender0001", testCampaign, 4)
	other := newTestConn("U_other00001", testCampaign, 4)
	hub.Register(sender)
	hub.Register(other)

	processor.Process(marshalEnvelope(t, chat_message_type_enum.DICE_ROLL, request.DiceRollPayload{
		Sides: 6, Count: 4, Label: "攻击检定",
	}))

	// 服务端计算结果，全员看到同一份
	frames := []*respond.ChatEnvelopeRespond{recvFrame(t, sender), recvFrame(t, other)}
	for _, frame := range frames {
		if frame.Type != chat_message_type_enum.DICE_ROLL {
			t.Fatalf("期望 dice_roll，实际 %s", frame.Type)
		}
		var result respond.DiceResultPayload
		if err := json.Unmarshal(frame.Payload, &result); err != nil {
			t.Fatalf("掷骰结果解析失败: %v", err)
		}
		if result.Sides != 6 || result.Count != 4 || result.Label != "攻击检定" {
			t.Fatalf("掷骰参数未回显: %+v", result)
		}
		if len(result.Rolls) != 4 {
			t.Fatalf("期望 4 个骰值，实际 %d", len(result.Rolls))
		}
		total := 0
		for _, v := range result.Rolls {
			if v < 1 || v > 6 {
				t.Fatalf("骰值越界: %d", v)
			}
			total += v
		}
		if total != result.Total {
			t.Fatalf("total 与骰值之和不符: %d != %d", result.Total, total)
		}
	}
	if string(frames[0].Payload) != string(frames[1].Payload) {
		t.Fatal("全员应收到同一份掷骰结果")
	}

	messages, err := repos.ChatMessage.FindByCampaign(testCampaign, 10)
	if err != nil {
		t.Fatalf("查询消息失败: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("掷骰结果应落库，实际 %d 条", len(messages))
	}
}

func TestProcessDiceRollInvalid(t *testing.T) {
	processor, hub, repos := newTestProcessor(t)
	sender := newTestConn("U_sender0001", testCampaign, 4)
	other := newTestConn("U_other00001", testCampaign, 4)
	hub.Register(sender)
	hub.Register(other)

	for _, roll := range []request.DiceRollPayload{
		{Sides: 6, Count: -1},
		{Sides: 6, Count: 101},
		{Sides: 1, Count: 1},
		{Sides: 101, Count: 1},
	} {
		processor.Process(marshalEnvelope(t, chat_message_type_enum.DICE_ROLL, roll))

		// 规则校验失败只回发给发送者
		frame := recvFrame(t, sender)
		if frame.Type != chat_message_type_enum.ERROR {
			t.Fatalf("期望 error 帧，实际 %s", frame.Type)
		}
		var errPayload respond.ErrorPayload
		if err := json.Unmarshal(frame.Payload, &errPayload); err != nil || errPayload.Message == "" {
			t.Fatalf("error 帧应携带原因: %s", frame.Payload)
		}
		assertEmpty(t, other)
	}

	messages, err := repos.ChatMessage.FindByCampaign(testCampaign, 10)
	if err != nil {
		t.Fatalf("查询消息失败: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("校验失败的掷骰不应落库，实际 %d 条", len(messages))
	}
}

func TestProcessDiceRollDefaultCount(t *testing.T) {
	processor, hub, _ := newTestProcessor(t)
	sender := newTestConn("U_sender0001", testCampaign, 4)
	hub.Register(sender)

	// count 省略时按单颗骰处理，不报错
	processor.Process(marshalEnvelope(t, chat_message_type_enum.DICE_ROLL, map[string]int{"sides": 20}))

	frame := recvFrame(t, sender)
	if frame.Type != chat_message_type_enum.DICE_ROLL {
		t.Fatalf("期望 dice_roll，实际 %s", frame.Type)
	}
	var result respond.DiceResultPayload
	if err := json.Unmarshal(frame.Payload, &result); err != nil {
		t.Fatalf("掷骰结果解析失败: %v", err)
	}
	if result.Count != 1 || len(result.Rolls) != 1 {
		t.Fatalf("期望默认掷 1 颗骰，实际 %+v", result)
	}
	if result.Rolls[0] < 1 || result.Rolls[0] > 20 || result.Total != result.Rolls[0] {
		t.Fatalf("骰值越界: %+v", result)
	}
}

func TestProcessInboundErrorDropped(t *testing.T) {
	processor, hub, repos := newTestProcessor(t)
	sender := newTestConn("U_sender0001", testCampaign, 4)
	hub.Register(sender)

	// error 帧只由服务端产生，入站的丢弃
	processor.Process(marshalEnvelope(t, chat_message_type_enum.ERROR, respond.ErrorPayload{Message: "伪造"}))
	assertEmpty(t, sender)

	messages, _ := repos.ChatMessage.FindByCampaign(testCampaign, 10)
	if len(messages) != 0 {
		t.Fatal("入站 error 帧不应落库")
	}
}

func TestProcessUnknownTypeVerbatim(t *testing.T) {
	processor, hub, repos := newTestProcessor(t)
	sender := newTestConn("U_sender0001", testCampaign, 4)
	hub.Register(sender)

	payload := map[string]int{"x": 3, "y": 5}
	processor.Process(marshalEnvelope(t, "map_ping", payload))

	// 未识别但格式完好的类型原样广播
	frame := recvFrame(t, sender)
	if frame.Type != "map_ping" {
		t.Fatalf("类型应透传，实际 %s", frame.Type)
	}
	var got map[string]int
	if err := json.Unmarshal(frame.Payload, &got); err != nil || got["x"] != 3 || got["y"] != 5 {
		t.Fatalf("payload 应原样透传: %s", frame.Payload)
	}

	messages, _ := repos.ChatMessage.FindByCampaign(testCampaign, 10)
	if len(messages) != 1 || messages[0].Type != "map_ping" {
		t.Fatal("未识别类型同样落库")
	}
}

func TestProcessMalformedEnvelope(t *testing.T) {
	processor, hub, _ := newTestProcessor(t)
	sender := newTestConn("U_sender0001", testCampaign, 4)
	hub.Register(sender)

	// 解析失败只记日志丢弃，不 panic
	processor.Process([]byte("not json"))
	assertEmpty(t, sender)
}
