// Package chat 实现战役实时通道
// ws_gateway.go
// 核心职责：WebSocket 连接生命周期管理
// 1. 建立 WebSocket 连接 (Upgrade) 并注册到 Hub
// 2. 读协程把入站帧包进信封后交给 Broker，写协程把广播帧推给前端
// 3. 入站帧解析失败只回发 error 帧给本连接，不断连
package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/dto/respond"
	"aethorias_chronicle_server/pkg/constants"
	"aethorias_chronicle_server/pkg/enum/chat/chat_message_type_enum"
)

// UserConn 一条战役内的 WebSocket 客户端连接
type UserConn struct {
	Conn         *websocket.Conn
	UserId       string
	Nickname     string
	CampaignUuid string
	SendBack     chan []byte // 写协程出口

	closeOnce sync.Once
	mu        sync.Mutex // 保护 closed，串行化本地回发与关闭
	closed    bool
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	// 前后端分离部署，允许跨域握手
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var ctx = context.Background()

// NewConnInit 升级 HTTP 连接并接入战役通道
// 调用前必须已通过成员资格校验
func NewConnInit(c *gin.Context, server *ChatServer, userId, nickname, campaignUuid string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	userConn := &UserConn{
		Conn:         conn,
		UserId:       userId,
		Nickname:     nickname,
		CampaignUuid: campaignUuid,
		SendBack:     make(chan []byte, constants.CHANNEL_SIZE),
	}
	// 同一用户重复建连时顶掉旧连接
	if old := server.Hub.Register(userConn); old != nil {
		old.closeConn()
	}
	go userConn.Read(server)
	go userConn.Write(server)
	zap.L().Info("ws连接成功",
		zap.String("user", userId),
		zap.String("campaign", campaignUuid))
}

// Read 读协程：入站帧 -> 信封 -> Broker
func (c *UserConn) Read(server *ChatServer) {
	defer func() {
		server.Hub.Unregister(c)
		c.closeConn()
	}()
	for {
		_, jsonMessage, err := c.Conn.ReadMessage() // 阻塞状态
		if err != nil {
			zap.L().Info("ws读取结束", zap.String("user", c.UserId), zap.Error(err))
			return
		}
		var frame request.ChatFrameRequest
		if err := json.Unmarshal(jsonMessage, &frame); err != nil || frame.Type == "" {
			c.sendLocalError("消息格式错误，期望 {type, payload}")
			continue
		}
		env := request.ChatEnvelopeRequest{
			CampaignUuid: c.CampaignUuid,
			SenderId:     c.UserId,
			SenderName:   c.Nickname,
			Type:         frame.Type,
			Payload:      frame.Payload,
		}
		envBytes, err := json.Marshal(env)
		if err != nil {
			zap.L().Error(err.Error())
			continue
		}
		if err := server.Broker.Publish(ctx, envBytes); err != nil {
			zap.L().Error("信封投递失败", zap.Error(err))
			c.sendLocalError("服务繁忙，消息发送失败，请稍后重试")
		}
	}
}

// Write 写协程：SendBack -> websocket
func (c *UserConn) Write(server *ChatServer) {
	for message := range c.SendBack {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			zap.L().Error(err.Error())
			server.Hub.Unregister(c)
			c.closeConn()
			return
		}
	}
}

// sendLocalError 不经 broker，直接向本连接回发 error 帧
func (c *UserConn) sendLocalError(msg string) {
	payload, err := json.Marshal(respond.ErrorPayload{Message: msg})
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	out := respond.ChatEnvelopeRespond{
		CampaignUuid: c.CampaignUuid,
		SenderId:     c.UserId,
		SenderName:   c.Nickname,
		Type:         chat_message_type_enum.ERROR,
		Payload:      payload,
		SendAt:       time.Now().Format("2006-01-02 15:04:05"),
	}
	frame, err := json.Marshal(out)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	// 被顶掉的旧连接可能已关闭 SendBack，持锁期间通道不会被关闭
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.SendBack <- frame:
	default:
	}
}

// closeConn 关闭底层连接与发送通道，幂等
func (c *UserConn) closeConn() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		if err := c.Conn.Close(); err != nil {
			zap.L().Error(err.Error())
		}
		close(c.SendBack)
	})
}
