package character

import (
	"testing"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/model"
	"aethorias_chronicle_server/internal/service/catalog"
	"aethorias_chronicle_server/pkg/errorx"
)

const ownerUuid = "U_owner00001"

func newTestService(t *testing.T) (*characterService, *repository.Repositories) {
	t.Helper()
	repos := repository.NewMemoryRepositories()

	if err := repos.Catalog.SeedClasses([]model.Class{{
		Uuid:              "L_rogue000001",
		Name:              "rogue",
		HitDie:            8,
		LevelTable:        `[{"level":1,"proficiency_bonus":2}]`,
		StartingEquipment: `[{"item_name":"dagger","quantity":2},{"item_name":"thieves' tools","quantity":1}]`,
	}}); err != nil {
		t.Fatalf("写入职业种子失败: %v", err)
	}
	if err := repos.Catalog.SeedRaces([]model.Race{{Uuid: "R_human000001", Name: "human"}}); err != nil {
		t.Fatalf("写入种族种子失败: %v", err)
	}
	if err := repos.Catalog.SeedBackgrounds([]model.Background{{
		Uuid: "B_criminal001", Name: "criminal", SkillNames: `["stealth","deception"]`,
	}}); err != nil {
		t.Fatalf("写入背景种子失败: %v", err)
	}
	if err := repos.Catalog.SeedSkills([]model.Skill{
		{Uuid: "K_stealth0001", Name: "stealth", Ability: "dexterity"},
		{Uuid: "K_decept00001", Name: "deception", Ability: "charisma"},
	}); err != nil {
		t.Fatalf("写入技能种子失败: %v", err)
	}
	if err := repos.Catalog.SeedItems([]model.Item{
		{Uuid: "I_dagger00001", Name: "dagger"},
		{Uuid: "I_tools000001", Name: "thieves' tools"},
	}); err != nil {
		t.Fatalf("写入物品种子失败: %v", err)
	}

	return NewCharacterService(repos, catalog.NewCatalogService(repos, nil)), repos
}

func validRequest() request.CreateCharacterRequest {
	return request.CreateCharacterRequest{
		Name:           "影刃",
		ClassName:      "rogue",
		RaceName:       "human",
		BackgroundName: "criminal",
		Strength:       10,
		Dexterity:      16,
		Constitution:   14,
		Intelligence:   12,
		Wisdom:         13,
		Charisma:       8,
	}
}

func TestCreateCharacter(t *testing.T) {
	svc, _ := newTestService(t)

	rsp, err := svc.CreateCharacter(ownerUuid, validRequest())
	if err != nil {
		t.Fatalf("创建角色失败: %v", err)
	}
	if rsp.Uuid == "" || rsp.Uuid[0] != 'C' {
		t.Fatalf("角色 uuid 应以 C 开头: %s", rsp.Uuid)
	}
	if rsp.Level != 1 || rsp.ExperiencePoints != 0 {
		t.Fatalf("新角色应为 1 级零经验: level=%d xp=%d", rsp.Level, rsp.ExperiencePoints)
	}
	// 1 级满骰 8 + 体质调整 2
	if rsp.HpMax != 10 || rsp.HpCurrent != 10 {
		t.Fatalf("期望 10/10，实际 %d/%d", rsp.HpCurrent, rsp.HpMax)
	}
	// 10 + 敏捷调整 3
	if rsp.ArmorClass != 13 {
		t.Fatalf("期望护甲 13，实际 %d", rsp.ArmorClass)
	}
	if rsp.HitDieType != 8 || rsp.HitDiceTotal != 1 || rsp.HitDiceRemaining != 1 {
		t.Fatalf("生命骰初始化错误: d%d %d/%d", rsp.HitDieType, rsp.HitDiceRemaining, rsp.HitDiceTotal)
	}

	// 背景技能套熟练
	if len(rsp.Skills) != 2 {
		t.Fatalf("期望 2 个背景技能，实际 %d", len(rsp.Skills))
	}
	for _, skill := range rsp.Skills {
		if !skill.IsProficient || skill.HasExpertise {
			t.Fatalf("背景技能应熟练无专精: %+v", skill)
		}
	}

	// 职业起始装备入包
	if len(rsp.Items) != 2 {
		t.Fatalf("期望 2 项起始装备，实际 %d", len(rsp.Items))
	}
	for _, item := range rsp.Items {
		if item.ItemName == "dagger" && item.Quantity != 2 {
			t.Fatalf("匕首数量应为 2，实际 %d", item.Quantity)
		}
	}
}

func TestCreateCharacterUnknownCatalog(t *testing.T) {
	svc, _ := newTestService(t)

	req := validRequest()
	req.ClassName = "warlock"
	_, err := svc.CreateCharacter(ownerUuid, req)
	if errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatalf("未知职业应返回 NotFound，实际 %v", err)
	}

	req = validRequest()
	req.RaceName = "dragonborn"
	_, err = svc.CreateCharacter(ownerUuid, req)
	if errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatalf("未知种族应返回 NotFound，实际 %v", err)
	}

	req = validRequest()
	req.BackgroundName = "noble"
	_, err = svc.CreateCharacter(ownerUuid, req)
	if errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatalf("未知背景应返回 NotFound，实际 %v", err)
	}
}

func TestCreateCharacterLowCon(t *testing.T) {
	svc, _ := newTestService(t)
	req := validRequest()
	req.Constitution = 1 // 调整 -5
	rsp, err := svc.CreateCharacter(ownerUuid, req)
	if err != nil {
		t.Fatalf("创建角色失败: %v", err)
	}
	if rsp.HpMax != 3 {
		t.Fatalf("期望 3 点生命，实际 %d", rsp.HpMax)
	}
}

func TestListMyCharacters(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.CreateCharacter(ownerUuid, validRequest()); err != nil {
		t.Fatalf("创建角色失败: %v", err)
	}
	req := validRequest()
	req.Name = "second"
	if _, err := svc.CreateCharacter(ownerUuid, req); err != nil {
		t.Fatalf("创建角色失败: %v", err)
	}
	if _, err := svc.CreateCharacter("U_other00001", validRequest()); err != nil {
		t.Fatalf("创建角色失败: %v", err)
	}

	characters, err := svc.ListMyCharacters(ownerUuid)
	if err != nil {
		t.Fatalf("列出角色失败: %v", err)
	}
	if len(characters) != 2 {
		t.Fatalf("期望 2 个角色，实际 %d", len(characters))
	}
}

func TestDeleteCharacter(t *testing.T) {
	svc, repos := newTestService(t)
	created, err := svc.CreateCharacter(ownerUuid, validRequest())
	if err != nil {
		t.Fatalf("创建角色失败: %v", err)
	}

	// 仅所有者可删
	err = svc.DeleteCharacter("U_other00001", created.Uuid)
	if errorx.GetCode(err) != errorx.CodeForbidden {
		t.Fatalf("非所有者删除应被拒绝，实际 %v", err)
	}

	if err := svc.DeleteCharacter(ownerUuid, created.Uuid); err != nil {
		t.Fatalf("删除角色失败: %v", err)
	}
	if _, err := repos.Character.FindByUuid(created.Uuid); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatal("角色应被删除")
	}
	skills, _ := repos.Character.FindSkills(created.Uuid)
	items, _ := repos.Character.FindItems(created.Uuid)
	if len(skills) != 0 || len(items) != 0 {
		t.Fatal("角色关联行应被级联清理")
	}
}
