// Package gamesession 实现跑团场次与先攻追踪
// 不变式：每个战役至多一个进行中的场次；先攻条目由场次独占，
// 场次结束后条目保留，可供复盘，开新场次时从零开始
package gamesession

import (
	"fmt"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/dto/respond"
	"aethorias_chronicle_server/internal/model"
	"aethorias_chronicle_server/pkg/errorx"
	"aethorias_chronicle_server/pkg/util/random"
)

// MembershipChecker 成员资格校验依赖
type MembershipChecker interface {
	CheckActiveOrDm(userId, campaignUuid string) error
}

// gameSessionService 场次服务实现
type gameSessionService struct {
	repos      *repository.Repositories
	membership MembershipChecker
}

// NewGameSessionService 构造函数
func NewGameSessionService(repos *repository.Repositories, membership MembershipChecker) *gameSessionService {
	return &gameSessionService{repos: repos, membership: membership}
}

// requireDm 校验操作者是该战役的 DM
func (s *gameSessionService) requireDm(tx *repository.Repositories, actorId, campaignUuid string) error {
	campaign, err := tx.Campaign.FindByUuid(campaignUuid)
	if err != nil {
		return err
	}
	if campaign.DmUserId != actorId {
		return errorx.New(errorx.CodeForbidden, "只有 DM 可以管理场次")
	}
	return nil
}

// StartSession 开启新场次
// 已有进行中的场次时返回冲突
func (s *gameSessionService) StartSession(actorId, campaignUuid string) (*respond.SessionRespond, error) {
	var session *model.CampaignSession
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := s.requireDm(tx, actorId, campaignUuid); err != nil {
			return err
		}
		active, err := tx.GameSession.FindActiveByCampaign(campaignUuid)
		if err != nil && errorx.GetCode(err) != errorx.CodeNotFound {
			return err
		}
		if active != nil {
			return errorx.New(errorx.CodeConflict, "该战役已有进行中的场次")
		}
		session = &model.CampaignSession{
			Uuid:         fmt.Sprintf("S%s", random.GetNowAndLenRandomString(11)),
			CampaignUuid: campaignUuid,
			IsActive:     1,
		}
		return tx.GameSession.Create(session)
	})
	if err != nil {
		return nil, err
	}
	return s.buildSessionRespond(s.repos, session)
}

// EndSession 结束场次
// 已结束的场次幂等返回当前状态
func (s *gameSessionService) EndSession(actorId, sessionUuid string) (*respond.SessionRespond, error) {
	var session *model.CampaignSession
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		var err error
		session, err = tx.GameSession.FindByUuid(sessionUuid)
		if err != nil {
			return err
		}
		if err := s.requireDm(tx, actorId, session.CampaignUuid); err != nil {
			return err
		}
		if session.IsActive != 1 {
			return nil
		}
		session.IsActive = 0
		return tx.GameSession.Update(session)
	})
	if err != nil {
		return nil, err
	}
	return s.buildSessionRespond(s.repos, session)
}

// GetSession 查询场次详情（含先攻序列）
func (s *gameSessionService) GetSession(actorId, sessionUuid string) (*respond.SessionRespond, error) {
	session, err := s.repos.GameSession.FindByUuid(sessionUuid)
	if err != nil {
		return nil, err
	}
	if err := s.membership.CheckActiveOrDm(actorId, session.CampaignUuid); err != nil {
		return nil, err
	}
	return s.buildSessionRespond(s.repos, session)
}

// AddInitiativeEntry 向进行中的场次添加先攻条目
// CharacterUuid 与 CombatantName 必须恰好设置其一
func (s *gameSessionService) AddInitiativeEntry(actorId, sessionUuid string, req request.AddInitiativeEntryRequest) (*respond.SessionRespond, error) {
	if (req.CharacterUuid == "") == (req.CombatantName == "") {
		return nil, errorx.New(errorx.CodeInvalidParam, "角色引用与参战者名必须恰好填写其一")
	}
	var session *model.CampaignSession
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		var err error
		session, err = tx.GameSession.FindByUuid(sessionUuid)
		if err != nil {
			return err
		}
		if err := s.requireDm(tx, actorId, session.CampaignUuid); err != nil {
			return err
		}
		if session.IsActive != 1 {
			return errorx.New(errorx.CodeInvalidState, "场次已结束，不能添加先攻条目")
		}
		entry := &model.InitiativeEntry{
			Uuid:           fmt.Sprintf("E%s", random.GetNowAndLenRandomString(11)),
			SessionUuid:    sessionUuid,
			InitiativeRoll: req.InitiativeRoll,
		}
		if req.CharacterUuid != "" {
			character, err := tx.Character.FindByUuid(req.CharacterUuid)
			if err != nil {
				return err
			}
			entry.CharacterUuid = &character.Uuid
		} else {
			name := req.CombatantName
			entry.CombatantName = &name
		}
		return tx.GameSession.CreateEntry(entry)
	})
	if err != nil {
		return nil, err
	}
	return s.buildSessionRespond(s.repos, session)
}

// GetInitiativeOrder 查询场次的先攻序列（按骰值降序）
func (s *gameSessionService) GetInitiativeOrder(actorId, sessionUuid string) ([]respond.InitiativeEntryRespond, error) {
	session, err := s.repos.GameSession.FindByUuid(sessionUuid)
	if err != nil {
		return nil, err
	}
	if err := s.membership.CheckActiveOrDm(actorId, session.CampaignUuid); err != nil {
		return nil, err
	}
	entries, err := s.repos.GameSession.FindEntriesBySession(sessionUuid)
	if err != nil {
		return nil, err
	}
	return buildEntryResponds(entries), nil
}

// ClearInitiative 清空场次全部先攻条目（战斗结束）
func (s *gameSessionService) ClearInitiative(actorId, sessionUuid string) error {
	return s.repos.Transaction(func(tx *repository.Repositories) error {
		session, err := tx.GameSession.FindByUuid(sessionUuid)
		if err != nil {
			return err
		}
		if err := s.requireDm(tx, actorId, session.CampaignUuid); err != nil {
			return err
		}
		return tx.GameSession.DeleteEntriesBySession(sessionUuid)
	})
}

// UpdateMapState 整块覆盖地图状态
// 内容由前端自由读写，服务端不解析
func (s *gameSessionService) UpdateMapState(actorId, sessionUuid string, req request.UpdateMapStateRequest) (*respond.SessionRespond, error) {
	var session *model.CampaignSession
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		var err error
		session, err = tx.GameSession.FindByUuid(sessionUuid)
		if err != nil {
			return err
		}
		if err := s.requireDm(tx, actorId, session.CampaignUuid); err != nil {
			return err
		}
		if session.IsActive != 1 {
			return errorx.New(errorx.CodeInvalidState, "场次已结束，不能更新地图状态")
		}
		session.MapState = req.MapState
		return tx.GameSession.Update(session)
	})
	if err != nil {
		return nil, err
	}
	return s.buildSessionRespond(s.repos, session)
}

// buildSessionRespond 拼装场次响应
func (s *gameSessionService) buildSessionRespond(repos *repository.Repositories, session *model.CampaignSession) (*respond.SessionRespond, error) {
	entries, err := repos.GameSession.FindEntriesBySession(session.Uuid)
	if err != nil {
		return nil, err
	}
	return &respond.SessionRespond{
		Uuid:         session.Uuid,
		CampaignUuid: session.CampaignUuid,
		IsActive:     session.IsActive == 1,
		MapState:     session.MapState,
		CreatedAt:    session.CreatedAt.Format("2006-01-02 15:04:05"),
		Entries:      buildEntryResponds(entries),
	}, nil
}

func buildEntryResponds(entries []model.InitiativeEntry) []respond.InitiativeEntryRespond {
	rspList := make([]respond.InitiativeEntryRespond, 0, len(entries))
	for _, e := range entries {
		rsp := respond.InitiativeEntryRespond{
			Uuid:           e.Uuid,
			InitiativeRoll: e.InitiativeRoll,
		}
		rsp.CharacterUuid = e.CharacterUuid
		rsp.CombatantName = e.CombatantName
		rspList = append(rspList, rsp)
	}
	return rspList
}
