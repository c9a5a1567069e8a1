// Package membership 实现战役成员的加入申请状态机
// pending_approval → {active, rejected}；invited → active
// 终态记录直接删行，(campaign,user) 的唯一约束保证至多一行
package membership

import (
	"fmt"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/dto/respond"
	"aethorias_chronicle_server/internal/model"
	"aethorias_chronicle_server/pkg/enum/campaign_member/member_status_enum"
	"aethorias_chronicle_server/pkg/errorx"
	"aethorias_chronicle_server/pkg/util/random"
)

// membershipService 成员状态机实现
type membershipService struct {
	repos *repository.Repositories
}

// NewMembershipService 构造函数
func NewMembershipService(repos *repository.Repositories) *membershipService {
	return &membershipService{repos: repos}
}

// loadCampaignAsDm 读出战役并校验操作者是 DM
func (s *membershipService) loadCampaignAsDm(tx *repository.Repositories, actorId, campaignUuid string) (*model.Campaign, error) {
	campaign, err := tx.Campaign.FindByUuid(campaignUuid)
	if err != nil {
		return nil, err
	}
	if campaign.DmUserId != actorId {
		return nil, errorx.New(errorx.CodeForbidden, "只有 DM 可以执行该操作")
	}
	return campaign, nil
}

// checkCapacity 按当前 active 成员数复核容量
// DM 自己的成员行也计入 active 数，容量含义为整团人数上限加一名 DM，
// 这里统一按"active 行数 - 1（DM）< MaxPlayers"判断
func checkCapacity(tx *repository.Repositories, campaign *model.Campaign) error {
	count, err := tx.Member.CountActiveByCampaign(campaign.Uuid)
	if err != nil {
		return err
	}
	// DM 的成员行不占玩家名额
	if count-1 >= int64(campaign.MaxPlayers) {
		return errorx.New(errorx.CodeConflict, "战役人数已满")
	}
	return nil
}

// RequestJoin 申请加入战役
// 战役关闭、已有成员行、容量已满、申请者是 DM 时均拒绝
func (s *membershipService) RequestJoin(actorId, campaignUuid string, req request.JoinCampaignRequest) (*respond.MemberRespond, error) {
	var member *model.CampaignMember
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		campaign, err := tx.Campaign.FindByUuid(campaignUuid)
		if err != nil {
			return err
		}
		if campaign.IsOpen != 1 {
			return errorx.New(errorx.CodeInvalidState, "战役未开放加入申请")
		}
		if campaign.DmUserId == actorId {
			return errorx.New(errorx.CodeInvalidParam, "DM 不能申请加入自己的战役")
		}

		existing, err := tx.Member.FindByCampaignAndUser(campaignUuid, actorId)
		if err != nil && errorx.GetCode(err) != errorx.CodeNotFound {
			return err
		}
		if existing != nil {
			return errorx.New(errorx.CodeConflict, "已有该战役的成员记录")
		}

		if err := checkCapacity(tx, campaign); err != nil {
			return err
		}

		member = &model.CampaignMember{
			Uuid:         fmt.Sprintf("A%s", random.GetNowAndLenRandomString(11)),
			CampaignUuid: campaignUuid,
			UserUuid:     actorId,
			Status:       member_status_enum.PENDING_APPROVAL,
		}
		if req.CharacterUuid != "" {
			character, err := tx.Character.FindByUuid(req.CharacterUuid)
			if err != nil {
				return err
			}
			if character.OwnerId != actorId {
				return errorx.New(errorx.CodeForbidden, "只能绑定自己的角色")
			}
			member.CharacterUuid = &character.Uuid
		}
		return tx.Member.Create(member)
	})
	if err != nil {
		return nil, err
	}
	return s.buildMemberRespond(member)
}

// Approve DM 批准加入申请
// 批准瞬间重新复核容量（只数 active 行）；
// 即使成员行已不是 pending（如 invited）也允许转 active
func (s *membershipService) Approve(actorId, campaignUuid, targetUserId string) (*respond.MemberRespond, error) {
	var member *model.CampaignMember
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		campaign, err := s.loadCampaignAsDm(tx, actorId, campaignUuid)
		if err != nil {
			return err
		}
		member, err = tx.Member.FindByCampaignAndUser(campaignUuid, targetUserId)
		if err != nil {
			return err
		}
		if member.Status == member_status_enum.ACTIVE {
			return errorx.New(errorx.CodeInvalidState, "该用户已是正式成员")
		}
		if err := checkCapacity(tx, campaign); err != nil {
			return err
		}
		member.Status = member_status_enum.ACTIVE
		return tx.Member.Update(member)
	})
	if err != nil {
		return nil, err
	}
	return s.buildMemberRespond(member)
}

// Reject DM 拒绝加入申请
func (s *membershipService) Reject(actorId, campaignUuid, targetUserId string) (*respond.MemberRespond, error) {
	var member *model.CampaignMember
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := s.loadCampaignAsDm(tx, actorId, campaignUuid); err != nil {
			return err
		}
		var err error
		member, err = tx.Member.FindByCampaignAndUser(campaignUuid, targetUserId)
		if err != nil {
			return err
		}
		if member.Status != member_status_enum.PENDING_APPROVAL {
			return errorx.New(errorx.CodeInvalidState, "只能拒绝待审批的申请")
		}
		member.Status = member_status_enum.REJECTED
		return tx.Member.Update(member)
	})
	if err != nil {
		return nil, err
	}
	return s.buildMemberRespond(member)
}

// CancelOwnRequest 申请者撤回自己的待审申请（删行）
func (s *membershipService) CancelOwnRequest(actorId, campaignUuid string) error {
	return s.repos.Transaction(func(tx *repository.Repositories) error {
		member, err := tx.Member.FindByCampaignAndUser(campaignUuid, actorId)
		if err != nil {
			return err
		}
		if member.Status != member_status_enum.PENDING_APPROVAL {
			return errorx.New(errorx.CodeInvalidState, "只能撤回待审批的申请")
		}
		return tx.Member.Delete(campaignUuid, actorId)
	})
}

// Leave 成员主动退出战役（删行）
func (s *membershipService) Leave(actorId, campaignUuid string) error {
	return s.repos.Transaction(func(tx *repository.Repositories) error {
		campaign, err := tx.Campaign.FindByUuid(campaignUuid)
		if err != nil {
			return err
		}
		if campaign.DmUserId == actorId {
			return errorx.New(errorx.CodeInvalidParam, "DM 不能退出自己的战役")
		}
		member, err := tx.Member.FindByCampaignAndUser(campaignUuid, actorId)
		if err != nil {
			return err
		}
		if member.Status != member_status_enum.ACTIVE {
			return errorx.New(errorx.CodeInvalidState, "只有正式成员可以退出")
		}
		return tx.Member.Delete(campaignUuid, actorId)
	})
}

// DmAdd DM 直接拉人入战役
// 绕过申请流程，直接写入 active 成员行
func (s *membershipService) DmAdd(actorId, campaignUuid string, req request.DmAddMemberRequest) (*respond.MemberRespond, error) {
	var member *model.CampaignMember
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		campaign, err := s.loadCampaignAsDm(tx, actorId, campaignUuid)
		if err != nil {
			return err
		}
		if req.UserUuid == actorId {
			return errorx.New(errorx.CodeInvalidParam, "DM 不需要将自己加入战役")
		}
		if _, err := tx.User.FindByUuid(req.UserUuid); err != nil {
			return err
		}

		existing, err := tx.Member.FindByCampaignAndUser(campaignUuid, req.UserUuid)
		if err != nil && errorx.GetCode(err) != errorx.CodeNotFound {
			return err
		}
		if existing != nil {
			return errorx.New(errorx.CodeConflict, "已有该战役的成员记录")
		}
		if err := checkCapacity(tx, campaign); err != nil {
			return err
		}

		member = &model.CampaignMember{
			Uuid:         fmt.Sprintf("A%s", random.GetNowAndLenRandomString(11)),
			CampaignUuid: campaignUuid,
			UserUuid:     req.UserUuid,
			Status:       member_status_enum.ACTIVE,
		}
		if req.CharacterUuid != "" {
			character, err := tx.Character.FindByUuid(req.CharacterUuid)
			if err != nil {
				return err
			}
			if character.OwnerId != req.UserUuid {
				return errorx.New(errorx.CodeInvalidParam, "绑定的角色不属于该用户")
			}
			member.CharacterUuid = &character.Uuid
		}
		return tx.Member.Create(member)
	})
	if err != nil {
		return nil, err
	}
	return s.buildMemberRespond(member)
}

// DmRemove DM 移除成员（删行），不允许移除 DM 自己
func (s *membershipService) DmRemove(actorId, campaignUuid, targetUserId string) error {
	return s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := s.loadCampaignAsDm(tx, actorId, campaignUuid); err != nil {
			return err
		}
		if targetUserId == actorId {
			return errorx.New(errorx.CodeInvalidParam, "不能移除 DM 自己")
		}
		if _, err := tx.Member.FindByCampaignAndUser(campaignUuid, targetUserId); err != nil {
			return err
		}
		return tx.Member.Delete(campaignUuid, targetUserId)
	})
}

// ListMembers 列出战役全部成员行
func (s *membershipService) ListMembers(actorId, campaignUuid string) ([]respond.MemberRespond, error) {
	if _, err := s.repos.Campaign.FindByUuid(campaignUuid); err != nil {
		return nil, err
	}
	members, err := s.repos.Member.FindByCampaign(campaignUuid)
	if err != nil {
		return nil, err
	}
	rspList := make([]respond.MemberRespond, 0, len(members))
	for i := range members {
		rsp, err := s.buildMemberRespond(&members[i])
		if err != nil {
			return nil, err
		}
		rspList = append(rspList, *rsp)
	}
	return rspList, nil
}

// CheckActiveOrDm 校验用户是 active 成员或 DM
// websocket 接入前置检查
func (s *membershipService) CheckActiveOrDm(userId, campaignUuid string) error {
	campaign, err := s.repos.Campaign.FindByUuid(campaignUuid)
	if err != nil {
		return err
	}
	if campaign.DmUserId == userId {
		return nil
	}
	member, err := s.repos.Member.FindByCampaignAndUser(campaignUuid, userId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeForbidden, "不是该战役的成员")
		}
		return err
	}
	if member.Status != member_status_enum.ACTIVE {
		return errorx.New(errorx.CodeForbidden, "不是该战役的正式成员")
	}
	return nil
}

// buildMemberRespond 拼装成员行响应，内嵌用户与角色摘要
func (s *membershipService) buildMemberRespond(member *model.CampaignMember) (*respond.MemberRespond, error) {
	user, err := s.repos.User.FindByUuid(member.UserUuid)
	if err != nil {
		return nil, err
	}
	rsp := &respond.MemberRespond{
		Uuid:         member.Uuid,
		CampaignUuid: member.CampaignUuid,
		Status:       member.Status,
		CreatedAt:    member.CreatedAt.Format("2006-01-02 15:04:05"),
		User: respond.MemberUserRespond{
			Uuid:     user.Uuid,
			Username: user.Username,
			Nickname: user.Nickname,
		},
	}
	if member.CharacterUuid != nil {
		character, err := s.repos.Character.FindByUuid(*member.CharacterUuid)
		if err != nil {
			return nil, err
		}
		rsp.Character = &respond.MemberCharacterRespond{
			Uuid:      character.Uuid,
			Name:      character.Name,
			ClassName: character.ClassName,
			Level:     character.Level,
		}
	}
	return rsp, nil
}
