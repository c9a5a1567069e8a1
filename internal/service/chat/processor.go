// Package chat 实现战役实时通道
// processor.go
// 核心职责：消费端的信封处理
// 1. 掷骰在服务端计算，结果对全员一致
// 2. 处理后的帧落库（战役回放）并广播给战役全体在线成员
// 3. 规则校验失败只回发给发送者，不打扰其他成员
package chat

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	myredis "aethorias_chronicle_server/internal/dao/redis"
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/dto/respond"
	"aethorias_chronicle_server/internal/model"
	"aethorias_chronicle_server/pkg/constants"
	"aethorias_chronicle_server/pkg/enum/chat/chat_message_type_enum"
	"aethorias_chronicle_server/pkg/util/snowflake"
)

// Processor 信封处理器，channel 模式与 kafka 模式共用
type Processor struct {
	repos *repository.Repositories
	hub   *Hub
	cache myredis.AsyncCacheService
}

// NewProcessor 构造函数，cache 可为 nil（测试场景）
func NewProcessor(repos *repository.Repositories, hub *Hub, cache myredis.AsyncCacheService) *Processor {
	return &Processor{repos: repos, hub: hub, cache: cache}
}

// Process 处理一条信封
// 解析失败的信封只记日志丢弃，不中断消费循环
func (p *Processor) Process(data []byte) {
	var env request.ChatEnvelopeRequest
	if err := json.Unmarshal(data, &env); err != nil {
		zap.L().Error("信封解析失败", zap.Error(err))
		return
	}

	switch env.Type {
	case chat_message_type_enum.DICE_ROLL:
		p.processDiceRoll(&env)
	case chat_message_type_enum.ERROR:
		// error 帧只由服务端产生，入站的丢弃
		zap.L().Warn("收到客户端伪造的 error 帧，已丢弃", zap.String("sender", env.SenderId))
	default:
		// chat_message 以及未识别但格式完好的类型，payload 原样广播
		p.deliver(&env, env.Payload)
	}
}

// processDiceRoll 服务端掷骰
// 入站 payload 为 {sides, count}，广播 payload 追加 rolls 与 total
func (p *Processor) processDiceRoll(env *request.ChatEnvelopeRequest) {
	var roll request.DiceRollPayload
	if err := json.Unmarshal(env.Payload, &roll); err != nil {
		p.sendError(env, "掷骰参数格式错误")
		return
	}
	// count 可省略，省略时按单颗骰处理
	if roll.Count == 0 {
		roll.Count = 1
	}
	if roll.Count < 1 || roll.Count > constants.DICE_MAX_COUNT {
		p.sendError(env, fmt.Sprintf("骰子数量必须在 1~%d 之间", constants.DICE_MAX_COUNT))
		return
	}
	if roll.Sides < 2 || roll.Sides > constants.DICE_MAX_SIDES {
		p.sendError(env, fmt.Sprintf("骰子面数必须在 2~%d 之间", constants.DICE_MAX_SIDES))
		return
	}

	result := respond.DiceResultPayload{
		Sides: roll.Sides,
		Count: roll.Count,
		Rolls: make([]int, 0, roll.Count),
		Label: roll.Label,
	}
	for i := 0; i < roll.Count; i++ {
		v := rand.Intn(roll.Sides) + 1
		result.Rolls = append(result.Rolls, v)
		result.Total += v
	}
	payload, err := json.Marshal(result)
	if err != nil {
		zap.L().Error("掷骰结果序列化失败", zap.Error(err))
		return
	}
	p.deliver(env, payload)
}

// deliver 落库并广播
// 落库失败只记日志，广播照常进行，实时性优先于回放完整性
func (p *Processor) deliver(env *request.ChatEnvelopeRequest, payload json.RawMessage) {
	now := time.Now()
	out := respond.ChatEnvelopeRespond{
		Uuid:         snowflake.GenerateID(),
		CampaignUuid: env.CampaignUuid,
		SenderId:     env.SenderId,
		SenderName:   env.SenderName,
		Type:         env.Type,
		Payload:      payload,
		SendAt:       now.Format("2006-01-02 15:04:05"),
	}
	frame, err := json.Marshal(out)
	if err != nil {
		zap.L().Error("广播帧序列化失败", zap.Error(err))
		return
	}

	message := &model.ChatMessage{
		Uuid:         out.Uuid,
		CampaignUuid: out.CampaignUuid,
		SenderId:     out.SenderId,
		SenderName:   out.SenderName,
		Type:         out.Type,
		Payload:      string(payload),
		SendAt:       sql.NullTime{Time: now, Valid: true},
	}
	if err := p.repos.ChatMessage.Create(message); err != nil {
		zap.L().Error("消息落库失败", zap.Error(err))
	}

	// 新消息到达后历史列表缓存已过期，异步失效避免阻塞广播
	if p.cache != nil {
		campaignUuid := env.CampaignUuid
		p.cache.SubmitTask(func() {
			pattern := "campaign_messages_" + campaignUuid + "_*"
			if err := p.cache.DeleteByPattern(context.Background(), pattern); err != nil {
				zap.L().Warn("消息缓存失效失败", zap.Error(err))
			}
		})
	}

	p.hub.Broadcast(env.CampaignUuid, frame)
}

// sendError 仅向发送者回发 error 帧
func (p *Processor) sendError(env *request.ChatEnvelopeRequest, msg string) {
	payload, err := json.Marshal(respond.ErrorPayload{Message: msg})
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	out := respond.ChatEnvelopeRespond{
		CampaignUuid: env.CampaignUuid,
		SenderId:     env.SenderId,
		SenderName:   env.SenderName,
		Type:         chat_message_type_enum.ERROR,
		Payload:      payload,
		SendAt:       time.Now().Format("2006-01-02 15:04:05"),
	}
	frame, err := json.Marshal(out)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	p.hub.SendTo(env.CampaignUuid, env.SenderId, frame)
}
