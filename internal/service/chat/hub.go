// Package chat 实现战役实时通道
// hub.go
// 核心职责：按战役分组维护在线连接
// 同一用户在同一战役中重复建连时，新连接顶掉旧连接
package chat

import (
	"sync"

	"go.uber.org/zap"
)

// Hub 在线连接注册表
// 两级 map：campaignUuid -> userUuid -> 连接
type Hub struct {
	mutex sync.RWMutex
	conns map[string]map[string]*UserConn
}

// NewHub 构造函数
func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]map[string]*UserConn),
	}
}

// Register 注册连接，返回被顶掉的旧连接（无则为 nil）
func (h *Hub) Register(conn *UserConn) *UserConn {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	campaignConns, ok := h.conns[conn.CampaignUuid]
	if !ok {
		campaignConns = make(map[string]*UserConn)
		h.conns[conn.CampaignUuid] = campaignConns
	}
	old := campaignConns[conn.UserId]
	campaignConns[conn.UserId] = conn
	return old
}

// Unregister 注销连接
// 只有当前注册的就是该连接时才移除，防止新连接被旧连接的收尾协程误删
func (h *Hub) Unregister(conn *UserConn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	campaignConns, ok := h.conns[conn.CampaignUuid]
	if !ok {
		return
	}
	if campaignConns[conn.UserId] == conn {
		delete(campaignConns, conn.UserId)
	}
	if len(campaignConns) == 0 {
		delete(h.conns, conn.CampaignUuid)
	}
}

// Broadcast 向战役全体在线成员投递消息
// 满载的连接跳过并记日志，不阻塞其他成员
func (h *Hub) Broadcast(campaignUuid string, message []byte) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for userId, conn := range h.conns[campaignUuid] {
		select {
		case conn.SendBack <- message:
		default:
			zap.L().Warn("用户发送缓冲已满，丢弃广播消息", zap.String("user", userId))
		}
	}
}

// SendTo 向战役内指定用户投递消息，不在线则静默丢弃
func (h *Hub) SendTo(campaignUuid, userId string, message []byte) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	conn, ok := h.conns[campaignUuid][userId]
	if !ok {
		return
	}
	select {
	case conn.SendBack <- message:
	default:
		zap.L().Warn("用户发送缓冲已满，丢弃消息", zap.String("user", userId))
	}
}

// GetConn 获取战役内指定用户的连接（不在线返回 nil）
func (h *Hub) GetConn(campaignUuid, userId string) *UserConn {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.conns[campaignUuid][userId]
}

// CountOnline 统计战役在线人数
func (h *Hub) CountOnline(campaignUuid string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.conns[campaignUuid])
}
