package chat

import (
	"testing"
)

func newTestConn(userId, campaignUuid string, buffer int) *UserConn {
	return &UserConn{
		UserId:       userId,
		CampaignUuid: campaignUuid,
		SendBack:     make(chan []byte, buffer),
	}
}

func TestRegisterDisplacesOldConn(t *testing.T) {
	hub := NewHub()
	conn1 := newTestConn("U_a", "P_1", 1)
	conn2 := newTestConn("U_a", "P_1", 1)

	if old := hub.Register(conn1); old != nil {
		t.Fatal("首次注册不应有旧连接")
	}
	if old := hub.Register(conn2); old != conn1 {
		t.Fatal("重复建连应返回被顶掉的旧连接")
	}
	if hub.GetConn("P_1", "U_a") != conn2 {
		t.Fatal("注册表中应是新连接")
	}
	if hub.CountOnline("P_1") != 1 {
		t.Fatalf("同一用户重复建连在线数应为 1，实际 %d", hub.CountOnline("P_1"))
	}
}

func TestUnregisterPointerGuard(t *testing.T) {
	hub := NewHub()
	conn1 := newTestConn("U_a", "P_1", 1)
	conn2 := newTestConn("U_a", "P_1", 1)
	hub.Register(conn1)
	hub.Register(conn2)

	// 旧连接的收尾协程不应误删新连接
	hub.Unregister(conn1)
	if hub.GetConn("P_1", "U_a") != conn2 {
		t.Fatal("旧连接注销不应移除新连接")
	}

	hub.Unregister(conn2)
	if hub.GetConn("P_1", "U_a") != nil {
		t.Fatal("注销后连接应被移除")
	}
	if hub.CountOnline("P_1") != 0 {
		t.Fatal("注销后在线数应为 0")
	}
}

func TestBroadcastScopedToCampaign(t *testing.T) {
	hub := NewHub()
	connA := newTestConn("U_a", "P_1", 1)
	connB := newTestConn("U_b", "P_1", 1)
	connC := newTestConn("U_c", "P_2", 1)
	hub.Register(connA)
	hub.Register(connB)
	hub.Register(connC)

	hub.Broadcast("P_1", []byte("hello"))

	for _, conn := range []*UserConn{connA, connB} {
		select {
		case msg := <-conn.SendBack:
			if string(msg) != "hello" {
				t.Fatalf("收到的消息不对: %s", msg)
			}
		default:
			t.Fatalf("用户 %s 应收到广播", conn.UserId)
		}
	}
	select {
	case <-connC.SendBack:
		t.Fatal("其他战役的连接不应收到广播")
	default:
	}
}

func TestBroadcastSkipsFullBuffer(t *testing.T) {
	hub := NewHub()
	full := newTestConn("U_full", "P_1", 1)
	full.SendBack <- []byte("occupied")
	ok := newTestConn("U_ok", "P_1", 1)
	hub.Register(full)
	hub.Register(ok)

	// 满载连接被跳过且不阻塞
	hub.Broadcast("P_1", []byte("hello"))

	if got := <-ok.SendBack; string(got) != "hello" {
		t.Fatalf("正常连接应收到广播，实际 %s", got)
	}
	if got := <-full.SendBack; string(got) != "occupied" {
		t.Fatalf("满载连接的缓冲不应被覆盖，实际 %s", got)
	}
}

func TestSendTo(t *testing.T) {
	hub := NewHub()
	connA := newTestConn("U_a", "P_1", 1)
	connB := newTestConn("U_b", "P_1", 1)
	hub.Register(connA)
	hub.Register(connB)

	hub.SendTo("P_1", "U_a", []byte("private"))
	select {
	case msg := <-connA.SendBack:
		if string(msg) != "private" {
			t.Fatalf("收到的消息不对: %s", msg)
		}
	default:
		t.Fatal("目标用户应收到消息")
	}
	select {
	case <-connB.SendBack:
		t.Fatal("非目标用户不应收到消息")
	default:
	}

	// 不在线时静默丢弃，不 panic
	hub.SendTo("P_1", "U_offline", []byte("private"))
	hub.SendTo("P_missing", "U_a", []byte("private"))
}
