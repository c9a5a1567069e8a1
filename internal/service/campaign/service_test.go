package campaign

import (
	"testing"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/model"
	"aethorias_chronicle_server/pkg/enum/campaign_member/member_status_enum"
	"aethorias_chronicle_server/pkg/errorx"
)

const (
	dmUuid    = "U_dm00000001"
	otherUuid = "U_other00001"
)

func wantCode(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatalf("期望错误码 %d，实际无错误", code)
	}
	if got := errorx.GetCode(err); got != code {
		t.Fatalf("期望错误码 %d，实际 %d (%v)", code, got, err)
	}
}

func TestCreateCampaign(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	svc := NewCampaignService(repos)

	rsp, err := svc.CreateCampaign(dmUuid, request.CreateCampaignRequest{
		Name: "失落矿坑", Description: "一次周末团",
	})
	if err != nil {
		t.Fatalf("创建战役失败: %v", err)
	}
	if rsp.Uuid == "" || rsp.Uuid[0] != 'P' {
		t.Fatalf("战役 uuid 应以 P 开头: %s", rsp.Uuid)
	}
	if rsp.MaxPlayers != defaultMaxPlayers {
		t.Fatalf("容量缺省应为 %d，实际 %d", defaultMaxPlayers, rsp.MaxPlayers)
	}
	if !rsp.IsOpen {
		t.Fatal("战役缺省应开放加入")
	}

	// 创建者自动写入一条 active 成员行
	member, err := repos.Member.FindByCampaignAndUser(rsp.Uuid, dmUuid)
	if err != nil {
		t.Fatalf("查询 DM 成员行失败: %v", err)
	}
	if member.Status != member_status_enum.ACTIVE {
		t.Fatalf("DM 成员行应为 active，实际 %d", member.Status)
	}
}

func TestUpdateCampaign(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	svc := NewCampaignService(repos)
	created, err := svc.CreateCampaign(dmUuid, request.CreateCampaignRequest{Name: "失落矿坑"})
	if err != nil {
		t.Fatalf("创建战役失败: %v", err)
	}

	// 仅 DM 可改
	name := "矿坑重启"
	_, err = svc.UpdateCampaign(otherUuid, created.Uuid, request.UpdateCampaignRequest{Name: &name})
	wantCode(t, err, errorx.CodeForbidden)

	// 未提供的字段保持不变
	closed := false
	maxPlayers := 4
	rsp, err := svc.UpdateCampaign(dmUuid, created.Uuid, request.UpdateCampaignRequest{
		Name: &name, MaxPlayers: &maxPlayers, IsOpen: &closed,
	})
	if err != nil {
		t.Fatalf("更新战役失败: %v", err)
	}
	if rsp.Name != name || rsp.MaxPlayers != 4 || rsp.IsOpen {
		t.Fatalf("更新未生效: %+v", rsp)
	}
	if rsp.Description != created.Description {
		t.Fatal("未提供的字段不应变化")
	}
}

func TestDeleteCampaignCascades(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	svc := NewCampaignService(repos)
	created, err := svc.CreateCampaign(dmUuid, request.CreateCampaignRequest{Name: "失落矿坑"})
	if err != nil {
		t.Fatalf("创建战役失败: %v", err)
	}

	// 挂上场次与先攻条目
	session := &model.CampaignSession{Uuid: "S_sess000001", CampaignUuid: created.Uuid, IsActive: 1}
	if err := repos.GameSession.Create(session); err != nil {
		t.Fatalf("创建场次失败: %v", err)
	}
	name := "哥布林"
	if err := repos.GameSession.CreateEntry(&model.InitiativeEntry{
		Uuid: "E_entry00001", SessionUuid: session.Uuid, CombatantName: &name, InitiativeRoll: 12,
	}); err != nil {
		t.Fatalf("创建先攻条目失败: %v", err)
	}

	// 仅 DM 可删
	err = svc.DeleteCampaign(otherUuid, created.Uuid)
	wantCode(t, err, errorx.CodeForbidden)

	if err := svc.DeleteCampaign(dmUuid, created.Uuid); err != nil {
		t.Fatalf("删除战役失败: %v", err)
	}

	// 战役、成员行、场次、先攻条目全部级联清理
	if _, err := repos.Campaign.FindByUuid(created.Uuid); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatal("战役应被删除")
	}
	if _, err := repos.Member.FindByCampaignAndUser(created.Uuid, dmUuid); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatal("成员行应被级联删除")
	}
	if _, err := repos.GameSession.FindByUuid(session.Uuid); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatal("场次应被级联删除")
	}
	entries, _ := repos.GameSession.FindEntriesBySession(session.Uuid)
	if len(entries) != 0 {
		t.Fatal("先攻条目应被级联删除")
	}
}

func TestListMyCampaigns(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	svc := NewCampaignService(repos)
	if _, err := svc.CreateCampaign(dmUuid, request.CreateCampaignRequest{Name: "失落矿坑"}); err != nil {
		t.Fatalf("创建战役失败: %v", err)
	}
	if _, err := svc.CreateCampaign(dmUuid, request.CreateCampaignRequest{Name: "风暴之眼"}); err != nil {
		t.Fatalf("创建战役失败: %v", err)
	}
	if _, err := svc.CreateCampaign(otherUuid, request.CreateCampaignRequest{Name: "别人的团"}); err != nil {
		t.Fatalf("创建战役失败: %v", err)
	}

	campaigns, err := svc.ListMyCampaigns(dmUuid)
	if err != nil {
		t.Fatalf("列出战役失败: %v", err)
	}
	if len(campaigns) != 2 {
		t.Fatalf("期望 2 个战役，实际 %d", len(campaigns))
	}
}
