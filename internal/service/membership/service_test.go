package membership

import (
	"testing"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/model"
	"aethorias_chronicle_server/pkg/enum/campaign_member/member_status_enum"
	"aethorias_chronicle_server/pkg/errorx"
)

const (
	dmUuid       = "U_dm00000001"
	playerUuid   = "U_player0001"
	player2Uuid  = "U_player0002"
	campaignUuid = "P_camp000001"
)

// newTestService 预置 DM、两名玩家和一个开放战役
// DM 自己的成员行照常写入（与战役创建时的行为一致）
func newTestService(t *testing.T, maxPlayers int) (*membershipService, *repository.Repositories) {
	t.Helper()
	repos := repository.NewMemoryRepositories()

	for _, user := range []model.UserInfo{
		{Uuid: dmUuid, Username: "dm", Nickname: "主持人"},
		{Uuid: playerUuid, Username: "player1", Nickname: "玩家一"},
		{Uuid: player2Uuid, Username: "player2", Nickname: "玩家二"},
	} {
		u := user
		if err := repos.User.Create(&u); err != nil {
			t.Fatalf("创建测试用户失败: %v", err)
		}
	}

	if err := repos.Campaign.Create(&model.Campaign{
		Uuid:       campaignUuid,
		Name:       "失落矿坑",
		DmUserId:   dmUuid,
		MaxPlayers: maxPlayers,
		IsOpen:     1,
	}); err != nil {
		t.Fatalf("创建测试战役失败: %v", err)
	}
	if err := repos.Member.Create(&model.CampaignMember{
		Uuid:         "A_dmrow00001",
		CampaignUuid: campaignUuid,
		UserUuid:     dmUuid,
		Status:       member_status_enum.ACTIVE,
	}); err != nil {
		t.Fatalf("创建 DM 成员行失败: %v", err)
	}

	return NewMembershipService(repos), repos
}

func wantCode(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatalf("期望错误码 %d，实际无错误", code)
	}
	if got := errorx.GetCode(err); got != code {
		t.Fatalf("期望错误码 %d，实际 %d (%v)", code, got, err)
	}
}

func TestRequestJoin(t *testing.T) {
	svc, repos := newTestService(t, 6)

	// DM 不能申请加入自己的战役
	_, err := svc.RequestJoin(dmUuid, campaignUuid, request.JoinCampaignRequest{})
	wantCode(t, err, errorx.CodeInvalidParam)

	// 正常申请进入 pending_approval
	rsp, err := svc.RequestJoin(playerUuid, campaignUuid, request.JoinCampaignRequest{})
	if err != nil {
		t.Fatalf("申请加入失败: %v", err)
	}
	if rsp.Status != member_status_enum.PENDING_APPROVAL {
		t.Fatalf("期望 pending_approval，实际 %d", rsp.Status)
	}
	if rsp.User.Uuid != playerUuid {
		t.Fatalf("内嵌用户摘要错误: %s", rsp.User.Uuid)
	}

	// 重复申请
	_, err = svc.RequestJoin(playerUuid, campaignUuid, request.JoinCampaignRequest{})
	wantCode(t, err, errorx.CodeConflict)

	// 战役关闭后拒绝申请
	campaign, _ := repos.Campaign.FindByUuid(campaignUuid)
	campaign.IsOpen = 0
	if err := repos.Campaign.Update(campaign); err != nil {
		t.Fatalf("更新战役失败: %v", err)
	}
	_, err = svc.RequestJoin(player2Uuid, campaignUuid, request.JoinCampaignRequest{})
	wantCode(t, err, errorx.CodeInvalidState)
}

func TestRequestJoinWithCharacter(t *testing.T) {
	svc, repos := newTestService(t, 6)
	if err := repos.Character.Create(&model.Character{
		Uuid: "C_mychar0001", OwnerId: playerUuid, Name: "影刃", ClassName: "rogue", Level: 3,
	}); err != nil {
		t.Fatalf("创建角色失败: %v", err)
	}

	// 绑定他人的角色
	_, err := svc.RequestJoin(player2Uuid, campaignUuid, request.JoinCampaignRequest{CharacterUuid: "C_mychar0001"})
	wantCode(t, err, errorx.CodeForbidden)

	rsp, err := svc.RequestJoin(playerUuid, campaignUuid, request.JoinCampaignRequest{CharacterUuid: "C_mychar0001"})
	if err != nil {
		t.Fatalf("申请加入失败: %v", err)
	}
	if rsp.Character == nil || rsp.Character.Uuid != "C_mychar0001" || rsp.Character.Level != 3 {
		t.Fatalf("内嵌角色摘要错误: %+v", rsp.Character)
	}
}

func TestApprove(t *testing.T) {
	svc, _ := newTestService(t, 6)
	if _, err := svc.RequestJoin(playerUuid, campaignUuid, request.JoinCampaignRequest{}); err != nil {
		t.Fatalf("申请加入失败: %v", err)
	}

	// 非 DM 无权批准
	_, err := svc.Approve(player2Uuid, campaignUuid, playerUuid)
	wantCode(t, err, errorx.CodeForbidden)

	rsp, err := svc.Approve(dmUuid, campaignUuid, playerUuid)
	if err != nil {
		t.Fatalf("批准失败: %v", err)
	}
	if rsp.Status != member_status_enum.ACTIVE {
		t.Fatalf("期望 active，实际 %d", rsp.Status)
	}

	// 重复批准
	_, err = svc.Approve(dmUuid, campaignUuid, playerUuid)
	wantCode(t, err, errorx.CodeInvalidState)

	// 没有成员行的用户
	_, err = svc.Approve(dmUuid, campaignUuid, player2Uuid)
	wantCode(t, err, errorx.CodeNotFound)
}

func TestCapacity(t *testing.T) {
	// 上限 1 名玩家，DM 的成员行不占名额
	svc, _ := newTestService(t, 1)

	if _, err := svc.RequestJoin(playerUuid, campaignUuid, request.JoinCampaignRequest{}); err != nil {
		t.Fatalf("申请加入失败: %v", err)
	}
	if _, err := svc.Approve(dmUuid, campaignUuid, playerUuid); err != nil {
		t.Fatalf("批准失败: %v", err)
	}

	// 申请本身也做容量预检
	_, err := svc.RequestJoin(player2Uuid, campaignUuid, request.JoinCampaignRequest{})
	wantCode(t, err, errorx.CodeConflict)

	// 腾出名额后第二名玩家可入
	if err := svc.Leave(playerUuid, campaignUuid); err != nil {
		t.Fatalf("退出失败: %v", err)
	}
	if _, err := svc.RequestJoin(player2Uuid, campaignUuid, request.JoinCampaignRequest{}); err != nil {
		t.Fatalf("申请加入失败: %v", err)
	}
}

func TestApproveRechecksCapacity(t *testing.T) {
	svc, _ := newTestService(t, 1)

	// 两份申请都能进 pending（此时 active 只有 DM 行）
	if _, err := svc.RequestJoin(playerUuid, campaignUuid, request.JoinCampaignRequest{}); err != nil {
		t.Fatalf("申请加入失败: %v", err)
	}
	if _, err := svc.RequestJoin(player2Uuid, campaignUuid, request.JoinCampaignRequest{}); err != nil {
		t.Fatalf("申请加入失败: %v", err)
	}

	// 批准第一份后容量满，第二份在批准瞬间被拦下
	if _, err := svc.Approve(dmUuid, campaignUuid, playerUuid); err != nil {
		t.Fatalf("批准失败: %v", err)
	}
	_, err := svc.Approve(dmUuid, campaignUuid, player2Uuid)
	wantCode(t, err, errorx.CodeConflict)
}

func TestRejectAndCancel(t *testing.T) {
	svc, repos := newTestService(t, 6)
	if _, err := svc.RequestJoin(playerUuid, campaignUuid, request.JoinCampaignRequest{}); err != nil {
		t.Fatalf("申请加入失败: %v", err)
	}

	rsp, err := svc.Reject(dmUuid, campaignUuid, playerUuid)
	if err != nil {
		t.Fatalf("拒绝失败: %v", err)
	}
	if rsp.Status != member_status_enum.REJECTED {
		t.Fatalf("期望 rejected，实际 %d", rsp.Status)
	}

	// rejected 行不能再拒绝，也不能被本人撤回
	_, err = svc.Reject(dmUuid, campaignUuid, playerUuid)
	wantCode(t, err, errorx.CodeInvalidState)
	err = svc.CancelOwnRequest(playerUuid, campaignUuid)
	wantCode(t, err, errorx.CodeInvalidState)

	// 撤回路径：pending 行删除后可重新申请
	if err := repos.Member.Delete(campaignUuid, playerUuid); err != nil {
		t.Fatalf("清理成员行失败: %v", err)
	}
	if _, err := svc.RequestJoin(playerUuid, campaignUuid, request.JoinCampaignRequest{}); err != nil {
		t.Fatalf("申请加入失败: %v", err)
	}
	if err := svc.CancelOwnRequest(playerUuid, campaignUuid); err != nil {
		t.Fatalf("撤回失败: %v", err)
	}
	if _, err := repos.Member.FindByCampaignAndUser(campaignUuid, playerUuid); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatal("撤回后成员行应被删除")
	}
}

func TestLeave(t *testing.T) {
	svc, _ := newTestService(t, 6)

	// DM 不能退出自己的战役
	err := svc.Leave(dmUuid, campaignUuid)
	wantCode(t, err, errorx.CodeInvalidParam)

	// pending 行不能走退出
	if _, err := svc.RequestJoin(playerUuid, campaignUuid, request.JoinCampaignRequest{}); err != nil {
		t.Fatalf("申请加入失败: %v", err)
	}
	err = svc.Leave(playerUuid, campaignUuid)
	wantCode(t, err, errorx.CodeInvalidState)

	if _, err := svc.Approve(dmUuid, campaignUuid, playerUuid); err != nil {
		t.Fatalf("批准失败: %v", err)
	}
	if err := svc.Leave(playerUuid, campaignUuid); err != nil {
		t.Fatalf("退出失败: %v", err)
	}
}

func TestDmAddAndRemove(t *testing.T) {
	svc, _ := newTestService(t, 6)

	// 非 DM 无权拉人
	_, err := svc.DmAdd(playerUuid, campaignUuid, request.DmAddMemberRequest{UserUuid: player2Uuid})
	wantCode(t, err, errorx.CodeForbidden)

	// DM 不需要拉自己
	_, err = svc.DmAdd(dmUuid, campaignUuid, request.DmAddMemberRequest{UserUuid: dmUuid})
	wantCode(t, err, errorx.CodeInvalidParam)

	// 目标用户必须存在
	_, err = svc.DmAdd(dmUuid, campaignUuid, request.DmAddMemberRequest{UserUuid: "U_nobody0001"})
	wantCode(t, err, errorx.CodeNotFound)

	// 直接转 active
	rsp, err := svc.DmAdd(dmUuid, campaignUuid, request.DmAddMemberRequest{UserUuid: playerUuid})
	if err != nil {
		t.Fatalf("拉人失败: %v", err)
	}
	if rsp.Status != member_status_enum.ACTIVE {
		t.Fatalf("期望 active，实际 %d", rsp.Status)
	}

	// 已有成员行
	_, err = svc.DmAdd(dmUuid, campaignUuid, request.DmAddMemberRequest{UserUuid: playerUuid})
	wantCode(t, err, errorx.CodeConflict)

	// 移除：不能移除 DM 自己
	err = svc.DmRemove(dmUuid, campaignUuid, dmUuid)
	wantCode(t, err, errorx.CodeInvalidParam)

	if err := svc.DmRemove(dmUuid, campaignUuid, playerUuid); err != nil {
		t.Fatalf("移除成员失败: %v", err)
	}
	err = svc.DmRemove(dmUuid, campaignUuid, playerUuid)
	wantCode(t, err, errorx.CodeNotFound)
}

func TestListMembers(t *testing.T) {
	svc, _ := newTestService(t, 6)
	if _, err := svc.RequestJoin(playerUuid, campaignUuid, request.JoinCampaignRequest{}); err != nil {
		t.Fatalf("申请加入失败: %v", err)
	}

	// 战役不存在
	_, err := svc.ListMembers(dmUuid, "P_missing001")
	wantCode(t, err, errorx.CodeNotFound)

	members, err := svc.ListMembers(dmUuid, campaignUuid)
	if err != nil {
		t.Fatalf("列出成员失败: %v", err)
	}
	// DM 行 + pending 申请行
	if len(members) != 2 {
		t.Fatalf("期望 2 行，实际 %d", len(members))
	}
}

func TestCheckActiveOrDm(t *testing.T) {
	svc, _ := newTestService(t, 6)

	// DM 直接放行
	if err := svc.CheckActiveOrDm(dmUuid, campaignUuid); err != nil {
		t.Fatalf("DM 应放行: %v", err)
	}

	// 无成员行
	err := svc.CheckActiveOrDm(playerUuid, campaignUuid)
	wantCode(t, err, errorx.CodeForbidden)

	// pending 行不算正式成员
	if _, err := svc.RequestJoin(playerUuid, campaignUuid, request.JoinCampaignRequest{}); err != nil {
		t.Fatalf("申请加入失败: %v", err)
	}
	err = svc.CheckActiveOrDm(playerUuid, campaignUuid)
	wantCode(t, err, errorx.CodeForbidden)

	if _, err := svc.Approve(dmUuid, campaignUuid, playerUuid); err != nil {
		t.Fatalf("批准失败: %v", err)
	}
	if err := svc.CheckActiveOrDm(playerUuid, campaignUuid); err != nil {
		t.Fatalf("正式成员应放行: %v", err)
	}

	// 战役不存在
	err = svc.CheckActiveOrDm(playerUuid, "P_missing001")
	wantCode(t, err, errorx.CodeNotFound)
}
