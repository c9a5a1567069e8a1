// Package campaign 提供战役的创建与元数据管理
// 成员工作流见 service/membership，场次见 service/gamesession
package campaign

import (
	"fmt"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/dto/respond"
	"aethorias_chronicle_server/internal/model"
	"aethorias_chronicle_server/pkg/enum/campaign/campaign_status_enum"
	"aethorias_chronicle_server/pkg/enum/campaign_member/member_status_enum"
	"aethorias_chronicle_server/pkg/errorx"
	"aethorias_chronicle_server/pkg/util/random"
)

// defaultMaxPlayers 未指定时的战役容量
const defaultMaxPlayers = 6

// campaignService 战役业务逻辑实现
type campaignService struct {
	repos *repository.Repositories
}

// NewCampaignService 构造函数
func NewCampaignService(repos *repository.Repositories) *campaignService {
	return &campaignService{repos: repos}
}

// requireDm 校验操作者是战役的 DM
func requireDm(campaign *model.Campaign, actorId string) error {
	if campaign.DmUserId != actorId {
		return errorx.New(errorx.CodeForbidden, "只有 DM 可以执行该操作")
	}
	return nil
}

// CreateCampaign 创建战役
// 创建者成为 DM，同时自动写入一条 active 成员行
func (s *campaignService) CreateCampaign(actorId string, req request.CreateCampaignRequest) (*respond.CampaignRespond, error) {
	maxPlayers := req.MaxPlayers
	if maxPlayers == 0 {
		maxPlayers = defaultMaxPlayers
	}
	isOpen := int8(1)
	if req.IsOpen != nil && !*req.IsOpen {
		isOpen = 0
	}

	campaign := &model.Campaign{
		Uuid:        fmt.Sprintf("P%s", random.GetNowAndLenRandomString(11)),
		Name:        req.Name,
		Description: req.Description,
		DmUserId:    actorId,
		MaxPlayers:  maxPlayers,
		IsOpen:      isOpen,
		Status:      campaign_status_enum.NORMAL,
	}

	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Campaign.Create(campaign); err != nil {
			return err
		}
		member := &model.CampaignMember{
			Uuid:         fmt.Sprintf("A%s", random.GetNowAndLenRandomString(11)),
			CampaignUuid: campaign.Uuid,
			UserUuid:     actorId,
			Status:       member_status_enum.ACTIVE,
		}
		return tx.Member.Create(member)
	})
	if err != nil {
		return nil, err
	}
	return buildCampaignRespond(campaign), nil
}

// GetCampaign 获取战役信息
func (s *campaignService) GetCampaign(campaignUuid string) (*respond.CampaignRespond, error) {
	campaign, err := s.repos.Campaign.FindByUuid(campaignUuid)
	if err != nil {
		return nil, err
	}
	return buildCampaignRespond(campaign), nil
}

// ListMyCampaigns 列出操作者作为 DM 的战役
func (s *campaignService) ListMyCampaigns(actorId string) ([]respond.CampaignRespond, error) {
	campaigns, err := s.repos.Campaign.FindByDmUserId(actorId)
	if err != nil {
		return nil, err
	}
	rspList := make([]respond.CampaignRespond, 0, len(campaigns))
	for i := range campaigns {
		rspList = append(rspList, *buildCampaignRespond(&campaigns[i]))
	}
	return rspList, nil
}

// UpdateCampaign 更新战役元数据（仅 DM）
func (s *campaignService) UpdateCampaign(actorId, campaignUuid string, req request.UpdateCampaignRequest) (*respond.CampaignRespond, error) {
	campaign, err := s.repos.Campaign.FindByUuid(campaignUuid)
	if err != nil {
		return nil, err
	}
	if err := requireDm(campaign, actorId); err != nil {
		return nil, err
	}

	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.Description != nil {
		campaign.Description = *req.Description
	}
	if req.MaxPlayers != nil {
		campaign.MaxPlayers = *req.MaxPlayers
	}
	if req.IsOpen != nil {
		if *req.IsOpen {
			campaign.IsOpen = 1
		} else {
			campaign.IsOpen = 0
		}
	}

	if err := s.repos.Campaign.Update(campaign); err != nil {
		return nil, err
	}
	return buildCampaignRespond(campaign), nil
}

// DeleteCampaign 删除战役（仅 DM）
// 成员行与场次（含先攻条目）一并级联清理
func (s *campaignService) DeleteCampaign(actorId, campaignUuid string) error {
	campaign, err := s.repos.Campaign.FindByUuid(campaignUuid)
	if err != nil {
		return err
	}
	if err := requireDm(campaign, actorId); err != nil {
		return err
	}

	return s.repos.Transaction(func(tx *repository.Repositories) error {
		sessions, err := tx.GameSession.FindByCampaign(campaignUuid)
		if err != nil {
			return err
		}
		for i := range sessions {
			if err := tx.GameSession.DeleteEntriesBySession(sessions[i].Uuid); err != nil {
				return err
			}
		}
		if err := tx.GameSession.DeleteByCampaign(campaignUuid); err != nil {
			return err
		}
		if err := tx.Member.DeleteByCampaign(campaignUuid); err != nil {
			return err
		}
		return tx.Campaign.SoftDeleteByUuid(campaignUuid)
	})
}

// buildCampaignRespond 拼装战役响应
func buildCampaignRespond(campaign *model.Campaign) *respond.CampaignRespond {
	return &respond.CampaignRespond{
		Uuid:        campaign.Uuid,
		Name:        campaign.Name,
		Description: campaign.Description,
		DmUserId:    campaign.DmUserId,
		MaxPlayers:  campaign.MaxPlayers,
		IsOpen:      campaign.IsOpen == 1,
		Status:      campaign.Status,
		CreatedAt:   campaign.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
