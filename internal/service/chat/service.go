// Package chat 实现战役实时通道
// service.go
// 核心职责：历史消息查询
// 实时链路见 hub.go / broker.go，这里只读落库后的消息
package chat

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	myredis "aethorias_chronicle_server/internal/dao/redis"
	"aethorias_chronicle_server/internal/dto/respond"
	"aethorias_chronicle_server/pkg/constants"
	"aethorias_chronicle_server/pkg/errorx"
)

// defaultMessageLimit 未指定条数时拉取的历史消息数
const defaultMessageLimit = 50

// MembershipChecker 成员资格校验依赖
type MembershipChecker interface {
	CheckActiveOrDm(userId, campaignUuid string) error
}

// chatService 历史消息服务实现
type chatService struct {
	repos      *repository.Repositories
	membership MembershipChecker
	cache      myredis.CacheService
}

// NewChatService 构造函数，cache 可为 nil（测试场景）
func NewChatService(repos *repository.Repositories, membership MembershipChecker, cache myredis.CacheService) *chatService {
	return &chatService{repos: repos, membership: membership, cache: cache}
}

// GetMessageList 拉取战役最近的历史消息（新在前）
// 仅 active 成员与 DM 可读；结果短暂缓存，降低回放场景的数据库压力
func (s *chatService) GetMessageList(actorId, campaignUuid string, limit int) ([]respond.MessageRespond, error) {
	if err := s.membership.CheckActiveOrDm(actorId, campaignUuid); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultMessageLimit
	}

	cacheKey := fmt.Sprintf("campaign_messages_%s_%d", campaignUuid, limit)
	if s.cache != nil {
		if cached, err := s.cache.GetOrError(ctx, cacheKey); err == nil {
			var rspList []respond.MessageRespond
			if unmarshalErr := json.Unmarshal([]byte(cached), &rspList); unmarshalErr == nil {
				return rspList, nil
			} else {
				zap.L().Error("历史消息缓存解析失败", zap.Error(unmarshalErr))
			}
		} else if errorx.GetCode(err) != errorx.CodeNotFound {
			zap.L().Error(err.Error())
		}
	}

	messages, err := s.repos.ChatMessage.FindByCampaign(campaignUuid, limit)
	if err != nil {
		return nil, err
	}
	rspList := make([]respond.MessageRespond, 0, len(messages))
	for _, m := range messages {
		rsp := respond.MessageRespond{
			Uuid:         m.Uuid,
			CampaignUuid: m.CampaignUuid,
			SenderId:     m.SenderId,
			SenderName:   m.SenderName,
			Type:         m.Type,
			Payload:      m.Payload,
		}
		if m.SendAt.Valid {
			rsp.SendAt = m.SendAt.Time.Format("2006-01-02 15:04:05")
		}
		rspList = append(rspList, rsp)
	}

	if s.cache != nil {
		if data, err := json.Marshal(rspList); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(data), time.Minute*constants.REDIS_TIMEOUT); err != nil {
				zap.L().Error(err.Error())
			}
		}
	}
	return rspList, nil
}
