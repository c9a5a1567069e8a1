package progression

import (
	"encoding/json"
	"testing"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/model"
	"aethorias_chronicle_server/internal/service/catalog"
	"aethorias_chronicle_server/pkg/enum/character/level_up_status_enum"
	"aethorias_chronicle_server/pkg/enum/class/feature_kind_enum"
	"aethorias_chronicle_server/pkg/errorx"
)

const (
	ownerUuid    = "U_owner00001"
	adminUuid    = "U_admin00001"
	strangerUuid = "U_other00001"
)

// rogueLevelTable 测试用成长表：2/3 级无特性，4 级有属性提升与专精
func rogueLevelTable(t *testing.T) string {
	t.Helper()
	levels := []model.ClassLevelEntry{
		{Level: 1, ProficiencyBonus: 2},
		{Level: 2, ProficiencyBonus: 2},
		{Level: 3, ProficiencyBonus: 2},
		{Level: 4, ProficiencyBonus: 2, Features: []model.ClassFeature{
			{Name: "Ability Score Improvement", Kind: feature_kind_enum.ASI},
			{Name: "Expertise", Kind: feature_kind_enum.EXPERTISE},
		}},
	}
	data, err := json.Marshal(levels)
	if err != nil {
		t.Fatalf("成长表序列化失败: %v", err)
	}
	return string(data)
}

func newTestService(t *testing.T) (*progressionService, *repository.Repositories) {
	t.Helper()
	repos := repository.NewMemoryRepositories()

	for _, user := range []model.UserInfo{
		{Uuid: ownerUuid, Username: "owner", Nickname: "队长"},
		{Uuid: adminUuid, Username: "admin", Nickname: "管理员", IsAdmin: 1},
		{Uuid: strangerUuid, Username: "other", Nickname: "路人"},
	} {
		u := user
		if err := repos.User.Create(&u); err != nil {
			t.Fatalf("创建测试用户失败: %v", err)
		}
	}

	if err := repos.Catalog.SeedClasses([]model.Class{
		{Uuid: "L_rogue000001", Name: "rogue", HitDie: 8, LevelTable: rogueLevelTable(t)},
	}); err != nil {
		t.Fatalf("写入职业种子失败: %v", err)
	}

	svc := NewProgressionService(repos, catalog.NewCatalogService(repos, nil))
	return svc, repos
}

// newTestCharacter d8 体质14(+2) 的标准测试角色
func newTestCharacter(t *testing.T, repos *repository.Repositories) *model.Character {
	t.Helper()
	character := &model.Character{
		Uuid:             "C_test0000001",
		OwnerId:          ownerUuid,
		Name:             "影刃",
		ClassName:        "rogue",
		RaceName:         "human",
		BackgroundName:   "criminal",
		Level:            1,
		Strength:         10,
		Dexterity:        16,
		Constitution:     14,
		Intelligence:     12,
		Wisdom:           13,
		Charisma:         8,
		ArmorClass:       13,
		HpCurrent:        10,
		HpMax:            10,
		HitDieType:       8,
		HitDiceTotal:     1,
		HitDiceRemaining: 1,
	}
	if err := repos.Character.Create(character); err != nil {
		t.Fatalf("创建测试角色失败: %v", err)
	}
	return character
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

func TestAwardXp(t *testing.T) {
	svc, repos := newTestService(t)
	character := newTestCharacter(t, repos)

	// 非正数
	_, err := svc.AwardXp(ownerUuid, character.Uuid, request.AwardXpRequest{Amount: 0})
	wantCode(t, err, errorx.CodeInvalidParam)

	// 非所有者且非管理员
	_, err = svc.AwardXp(strangerUuid, character.Uuid, request.AwardXpRequest{Amount: 100})
	wantCode(t, err, errorx.CodeForbidden)

	// 未跨阈值不升级
	rsp, err := svc.AwardXp(ownerUuid, character.Uuid, request.AwardXpRequest{Amount: 200})
	if err != nil {
		t.Fatalf("发放经验失败: %v", err)
	}
	if rsp.Level != 1 || rsp.ExperiencePoints != 200 || rsp.LevelUpStatus != nil {
		t.Fatalf("未跨阈值不应升级: level=%d xp=%d status=%v", rsp.Level, rsp.ExperiencePoints, rsp.LevelUpStatus)
	}

	// 跨过 300 阈值升到 2 级，生命骰重置，强制进入 pending_hp
	rsp, err = svc.AwardXp(ownerUuid, character.Uuid, request.AwardXpRequest{Amount: 100})
	if err != nil {
		t.Fatalf("发放经验失败: %v", err)
	}
	if rsp.Level != 2 {
		t.Fatalf("期望 2 级，实际 %d", rsp.Level)
	}
	if rsp.HitDiceTotal != 2 || rsp.HitDiceRemaining != 2 {
		t.Fatalf("升级应重置生命骰: total=%d remaining=%d", rsp.HitDiceTotal, rsp.HitDiceRemaining)
	}
	if rsp.LevelUpStatus == nil || *rsp.LevelUpStatus != level_up_status_enum.PENDING_HP {
		t.Fatalf("升级后期望 pending_hp，实际 %v", rsp.LevelUpStatus)
	}

	// 管理员可以替他人发放
	if _, err := svc.AwardXp(adminUuid, character.Uuid, request.AwardXpRequest{Amount: 50}); err != nil {
		t.Fatalf("管理员发放经验失败: %v", err)
	}
}

func TestAwardXpWipesAudit(t *testing.T) {
	svc, repos := newTestService(t)
	character := newTestCharacter(t, repos)

	// 升到 2 级并走完 hp 确认，留下一条审计
	if _, err := svc.AwardXp(ownerUuid, character.Uuid, request.AwardXpRequest{Amount: 300}); err != nil {
		t.Fatalf("发放经验失败: %v", err)
	}
	if _, err := svc.ConfirmHpIncrease(ownerUuid, character.Uuid, request.ConfirmHpRequest{Method: "average"}); err != nil {
		t.Fatalf("确认生命值失败: %v", err)
	}

	// 再升一级，整个审计被清空并回到 pending_hp
	rsp, err := svc.AwardXp(ownerUuid, character.Uuid, request.AwardXpRequest{Amount: 600})
	if err != nil {
		t.Fatalf("发放经验失败: %v", err)
	}
	if rsp.Level != 3 {
		t.Fatalf("期望 3 级，实际 %d", rsp.Level)
	}
	if len(rsp.CompletedChoices) != 0 {
		t.Fatalf("升级应清空审计，实际剩 %d 条", len(rsp.CompletedChoices))
	}
	if rsp.LevelUpStatus == nil || *rsp.LevelUpStatus != level_up_status_enum.PENDING_HP {
		t.Fatalf("升级后期望 pending_hp，实际 %v", rsp.LevelUpStatus)
	}
}

func TestConfirmHpIncrease(t *testing.T) {
	svc, repos := newTestService(t)
	character := newTestCharacter(t, repos)

	// 状态守卫：未升级时不允许确认
	_, err := svc.ConfirmHpIncrease(ownerUuid, character.Uuid, request.ConfirmHpRequest{Method: "average"})
	wantCode(t, err, errorx.CodeInvalidState)

	if _, err := svc.AwardXp(ownerUuid, character.Uuid, request.AwardXpRequest{Amount: 300}); err != nil {
		t.Fatalf("发放经验失败: %v", err)
	}

	// 掷骰值越界
	_, err = svc.ConfirmHpIncrease(ownerUuid, character.Uuid, request.ConfirmHpRequest{Method: "roll", RollValue: 9})
	wantCode(t, err, errorx.CodeInvalidParam)

	// 未知方法
	_, err = svc.ConfirmHpIncrease(ownerUuid, character.Uuid, request.ConfirmHpRequest{Method: "max"})
	wantCode(t, err, errorx.CodeInvalidParam)

	// 均值法：d8 均值 5 + 体质 2 = 7
	rsp, err := svc.ConfirmHpIncrease(ownerUuid, character.Uuid, request.ConfirmHpRequest{Method: "average"})
	if err != nil {
		t.Fatalf("确认生命值失败: %v", err)
	}
	if rsp.HpGained != 7 {
		t.Fatalf("期望增量 7，实际 %d", rsp.HpGained)
	}
	if rsp.Character.HpMax != 17 || rsp.Character.HpCurrent != 17 {
		t.Fatalf("期望 17/17，实际 %d/%d", rsp.Character.HpCurrent, rsp.Character.HpMax)
	}
	// 2 级没有其他待定步骤，状态回到已结算
	if rsp.Character.LevelUpStatus != nil {
		t.Fatalf("期望已结算，实际 %s", *rsp.Character.LevelUpStatus)
	}

	// 重复确认被状态守卫拒绝
	_, err = svc.ConfirmHpIncrease(ownerUuid, character.Uuid, request.ConfirmHpRequest{Method: "average"})
	wantCode(t, err, errorx.CodeInvalidState)
}

func TestConfirmHpRollMinimumOne(t *testing.T) {
	svc, repos := newTestService(t)
	character := newTestCharacter(t, repos)
	character.Constitution = 6 // 调整 -2
	if err := repos.Character.Save(character); err != nil {
		t.Fatalf("保存角色失败: %v", err)
	}

	if _, err := svc.AwardXp(ownerUuid, character.Uuid, request.AwardXpRequest{Amount: 300}); err != nil {
		t.Fatalf("发放经验失败: %v", err)
	}
	rsp, err := svc.ConfirmHpIncrease(ownerUuid, character.Uuid, request.ConfirmHpRequest{Method: "roll", RollValue: 1})
	if err != nil {
		t.Fatalf("确认生命值失败: %v", err)
	}
	// 1 - 2 = -1，抬到下限 1
	if rsp.HpGained != 1 {
		t.Fatalf("期望增量下限 1，实际 %d", rsp.HpGained)
	}
}

// levelUpTo4 把角色推到 4 级并完成 hp 确认，停在 pending_asi
func levelUpTo4(t *testing.T, svc *progressionService, characterUuid string) {
	t.Helper()
	if _, err := svc.AwardXp(ownerUuid, characterUuid, request.AwardXpRequest{Amount: 2700}); err != nil {
		t.Fatalf("发放经验失败: %v", err)
	}
	rsp, err := svc.ConfirmHpIncrease(ownerUuid, characterUuid, request.ConfirmHpRequest{Method: "average"})
	if err != nil {
		t.Fatalf("确认生命值失败: %v", err)
	}
	if rsp.Character.LevelUpStatus == nil || *rsp.Character.LevelUpStatus != level_up_status_enum.PENDING_ASI {
		t.Fatalf("4 级确认生命值后期望 pending_asi，实际 %v", rsp.Character.LevelUpStatus)
	}
}

func TestApplyAsi(t *testing.T) {
	svc, repos := newTestService(t)
	character := newTestCharacter(t, repos)
	levelUpTo4(t, svc, character.Uuid)

	// 合计超过 2 点
	_, err := svc.ApplyAsi(ownerUuid, character.Uuid, request.ApplyAsiRequest{
		Assignments: map[string]int{"strength": 2, "dexterity": 1},
	})
	wantCode(t, err, errorx.CodeInvalidParam)

	// 增量必须为正
	_, err = svc.ApplyAsi(ownerUuid, character.Uuid, request.ApplyAsiRequest{
		Assignments: map[string]int{"strength": -1},
	})
	wantCode(t, err, errorx.CodeInvalidParam)

	// 未知属性名
	_, err = svc.ApplyAsi(ownerUuid, character.Uuid, request.ApplyAsiRequest{
		Assignments: map[string]int{"luck": 2},
	})
	wantCode(t, err, errorx.CodeInvalidParam)

	// 正常分配，之后进入 pending_expertise
	rsp, err := svc.ApplyAsi(ownerUuid, character.Uuid, request.ApplyAsiRequest{
		Assignments: map[string]int{"dexterity": 1, "constitution": 1},
	})
	if err != nil {
		t.Fatalf("属性提升失败: %v", err)
	}
	if rsp.Dexterity != 17 || rsp.Constitution != 15 {
		t.Fatalf("属性未生效: dex=%d con=%d", rsp.Dexterity, rsp.Constitution)
	}
	if rsp.LevelUpStatus == nil || *rsp.LevelUpStatus != level_up_status_enum.PENDING_EXPERTISE {
		t.Fatalf("期望 pending_expertise，实际 %v", rsp.LevelUpStatus)
	}
}

func TestApplyAsiAbilityCap(t *testing.T) {
	svc, repos := newTestService(t)
	character := newTestCharacter(t, repos)
	character.Strength = 29
	if err := repos.Character.Save(character); err != nil {
		t.Fatalf("保存角色失败: %v", err)
	}
	levelUpTo4(t, svc, character.Uuid)

	// 普通层级属性上限 30，29+2 越界
	_, err := svc.ApplyAsi(ownerUuid, character.Uuid, request.ApplyAsiRequest{
		Assignments: map[string]int{"strength": 2},
	})
	wantCode(t, err, errorx.CodeInvalidParam)

	// 恰好到上限允许
	rsp, err := svc.ApplyAsi(ownerUuid, character.Uuid, request.ApplyAsiRequest{
		Assignments: map[string]int{"strength": 1},
	})
	if err != nil {
		t.Fatalf("属性提升失败: %v", err)
	}
	if rsp.Strength != 30 {
		t.Fatalf("期望力量 30，实际 %d", rsp.Strength)
	}
}

func TestApplyExpertise(t *testing.T) {
	svc, repos := newTestService(t)
	character := newTestCharacter(t, repos)
	if err := repos.Character.CreateSkills([]model.CharacterSkill{
		{CharacterUuid: character.Uuid, SkillUuid: "K_stealth0001", SkillName: "stealth", IsProficient: 1},
		{CharacterUuid: character.Uuid, SkillUuid: "K_arcana00001", SkillName: "arcana", IsProficient: 0},
	}); err != nil {
		t.Fatalf("创建技能关联失败: %v", err)
	}

	levelUpTo4(t, svc, character.Uuid)
	if _, err := svc.ApplyAsi(ownerUuid, character.Uuid, request.ApplyAsiRequest{
		Assignments: map[string]int{"dexterity": 2},
	}); err != nil {
		t.Fatalf("属性提升失败: %v", err)
	}

	// 非熟练技能不能专精
	_, err := svc.ApplyExpertise(ownerUuid, character.Uuid, request.ApplyExpertiseRequest{
		SkillUuids: []string{"K_arcana00001"},
	})
	wantCode(t, err, errorx.CodeInvalidParam)

	rsp, err := svc.ApplyExpertise(ownerUuid, character.Uuid, request.ApplyExpertiseRequest{
		SkillUuids: []string{"K_stealth0001"},
	})
	if err != nil {
		t.Fatalf("专精选择失败: %v", err)
	}
	var found bool
	for _, skill := range rsp.Skills {
		if skill.SkillUuid == "K_stealth0001" && skill.HasExpertise {
			found = true
		}
	}
	if !found {
		t.Fatal("专精标记未写入")
	}
	// 4 级全部步骤完成，状态回到已结算
	if rsp.LevelUpStatus != nil {
		t.Fatalf("期望已结算，实际 %s", *rsp.LevelUpStatus)
	}
}

func TestApplySpellSelections(t *testing.T) {
	svc, repos := newTestService(t)
	character := newTestCharacter(t, repos)
	if err := repos.Catalog.SeedSpells([]model.Spell{
		{Uuid: "M_firebolt001", Name: "fire bolt", SpellLevel: 0},
		{Uuid: "M_sleep000001", Name: "sleep", SpellLevel: 1},
	}); err != nil {
		t.Fatalf("写入法术种子失败: %v", err)
	}

	// 手工摆出 pending_spells 状态
	status := level_up_status_enum.PENDING_SPELLS
	character.LevelUpStatus = &status
	if err := repos.Character.Save(character); err != nil {
		t.Fatalf("保存角色失败: %v", err)
	}

	// 空选择
	_, err := svc.ApplySpellSelections(ownerUuid, character.Uuid, request.ApplySpellsRequest{})
	wantCode(t, err, errorx.CodeInvalidParam)

	// 不存在的法术
	_, err = svc.ApplySpellSelections(ownerUuid, character.Uuid, request.ApplySpellsRequest{
		SpellUuids: []string{"M_missing0001"},
	})
	wantCode(t, err, errorx.CodeNotFound)

	// 环位放错位置
	_, err = svc.ApplySpellSelections(ownerUuid, character.Uuid, request.ApplySpellsRequest{
		CantripUuids: []string{"M_sleep000001"},
	})
	wantCode(t, err, errorx.CodeInvalidParam)
	_, err = svc.ApplySpellSelections(ownerUuid, character.Uuid, request.ApplySpellsRequest{
		SpellUuids: []string{"M_firebolt001"},
	})
	wantCode(t, err, errorx.CodeInvalidParam)

	rsp, err := svc.ApplySpellSelections(ownerUuid, character.Uuid, request.ApplySpellsRequest{
		CantripUuids: []string{"M_firebolt001"},
		SpellUuids:   []string{"M_sleep000001"},
	})
	if err != nil {
		t.Fatalf("法术选择失败: %v", err)
	}
	if len(rsp.Spells) != 2 {
		t.Fatalf("期望 2 条已知法术，实际 %d", len(rsp.Spells))
	}
	for _, spell := range rsp.Spells {
		if spell.SpellUuid == "M_firebolt001" && !spell.IsCantrip {
			t.Error("戏法标记丢失")
		}
		if spell.SpellUuid == "M_sleep000001" && spell.IsCantrip {
			t.Error("法术被错标为戏法")
		}
	}
}

func TestApplyArchetype(t *testing.T) {
	svc, repos := newTestService(t)
	character := newTestCharacter(t, repos)

	// 状态守卫
	_, err := svc.ApplyArchetype(ownerUuid, character.Uuid, request.ApplyArchetypeRequest{Archetype: "thief"})
	wantCode(t, err, errorx.CodeInvalidState)

	status := level_up_status_enum.PENDING_ARCHETYPE
	character.LevelUpStatus = &status
	if err := repos.Character.Save(character); err != nil {
		t.Fatalf("保存角色失败: %v", err)
	}

	rsp, err := svc.ApplyArchetype(ownerUuid, character.Uuid, request.ApplyArchetypeRequest{Archetype: "thief"})
	if err != nil {
		t.Fatalf("子职业选择失败: %v", err)
	}
	if rsp.RoguishArchetype == nil || *rsp.RoguishArchetype != "thief" {
		t.Fatalf("子职业未写入: %v", rsp.RoguishArchetype)
	}

	// 状态守卫保证只能成功设置一次
	_, err = svc.ApplyArchetype(ownerUuid, character.Uuid, request.ApplyArchetypeRequest{Archetype: "assassin"})
	wantCode(t, err, errorx.CodeInvalidState)
}

func TestSpendHitDie(t *testing.T) {
	svc, repos := newTestService(t)
	character := newTestCharacter(t, repos)
	character.HpCurrent = 3
	character.HitDiceRemaining = 2
	character.HitDiceTotal = 2
	if err := repos.Character.Save(character); err != nil {
		t.Fatalf("保存角色失败: %v", err)
	}

	// 掷骰值越界
	_, err := svc.SpendHitDie(ownerUuid, character.Uuid, request.SpendHitDieRequest{RollValue: 9})
	wantCode(t, err, errorx.CodeInvalidParam)

	// 4 + 体质 2 = 6，恢复到 9
	rsp, err := svc.SpendHitDie(ownerUuid, character.Uuid, request.SpendHitDieRequest{RollValue: 4})
	if err != nil {
		t.Fatalf("消耗生命骰失败: %v", err)
	}
	if rsp.HpCurrent != 9 || rsp.HitDiceRemaining != 1 {
		t.Fatalf("期望 hp=9 remaining=1，实际 hp=%d remaining=%d", rsp.HpCurrent, rsp.HitDiceRemaining)
	}

	// 恢复量不超过最大生命值
	rsp, err = svc.SpendHitDie(ownerUuid, character.Uuid, request.SpendHitDieRequest{RollValue: 8})
	if err != nil {
		t.Fatalf("消耗生命骰失败: %v", err)
	}
	if rsp.HpCurrent != rsp.HpMax {
		t.Fatalf("恢复应封顶在最大生命值: %d/%d", rsp.HpCurrent, rsp.HpMax)
	}

	// 没有剩余生命骰
	_, err = svc.SpendHitDie(ownerUuid, character.Uuid, request.SpendHitDieRequest{RollValue: 3})
	wantCode(t, err, errorx.CodeInvalidState)
}

func TestRecordDeathSave(t *testing.T) {
	svc, repos := newTestService(t)
	character := newTestCharacter(t, repos)

	boolPtr := func(b bool) *bool { return &b }

	// success 缺失
	_, err := svc.RecordDeathSave(ownerUuid, character.Uuid, request.DeathSaveRequest{})
	wantCode(t, err, errorx.CodeInvalidParam)

	// 两次成功一次失败，计数各自累计
	for i := 0; i < 2; i++ {
		if _, err := svc.RecordDeathSave(ownerUuid, character.Uuid, request.DeathSaveRequest{Success: boolPtr(true)}); err != nil {
			t.Fatalf("记录死亡豁免失败: %v", err)
		}
	}
	rsp, err := svc.RecordDeathSave(ownerUuid, character.Uuid, request.DeathSaveRequest{Success: boolPtr(false)})
	if err != nil {
		t.Fatalf("记录死亡豁免失败: %v", err)
	}
	if rsp.DeathSaveSuccesses != 2 || rsp.DeathSaveFailures != 1 {
		t.Fatalf("期望 2成功/1失败，实际 %d/%d", rsp.DeathSaveSuccesses, rsp.DeathSaveFailures)
	}

	// 第三次成功触发双计数清零
	rsp, err = svc.RecordDeathSave(ownerUuid, character.Uuid, request.DeathSaveRequest{Success: boolPtr(true)})
	if err != nil {
		t.Fatalf("记录死亡豁免失败: %v", err)
	}
	if rsp.DeathSaveSuccesses != 0 || rsp.DeathSaveFailures != 0 {
		t.Fatalf("到 3 次应双清零，实际 %d/%d", rsp.DeathSaveSuccesses, rsp.DeathSaveFailures)
	}
}

func TestAdminSetLevel(t *testing.T) {
	svc, repos := newTestService(t)
	character := newTestCharacter(t, repos)

	// 仅管理员可用，所有者也不行
	_, err := svc.AdminSetLevel(ownerUuid, character.Uuid, request.AdminSetLevelRequest{TargetLevel: 3})
	wantCode(t, err, errorx.CodeForbidden)

	// 超出层级上限
	_, err = svc.AdminSetLevel(adminUuid, character.Uuid, request.AdminSetLevelRequest{TargetLevel: 21})
	wantCode(t, err, errorx.CodeInvalidParam)

	// d8 体质+2：1 级满骰 10，2/3 级各 +7 → 24
	rsp, err := svc.AdminSetLevel(adminUuid, character.Uuid, request.AdminSetLevelRequest{TargetLevel: 3})
	if err != nil {
		t.Fatalf("直设等级失败: %v", err)
	}
	if rsp.Level != 3 {
		t.Fatalf("期望 3 级，实际 %d", rsp.Level)
	}
	if rsp.HpMax != 24 || rsp.HpCurrent != 24 {
		t.Fatalf("期望 24/24，实际 %d/%d", rsp.HpCurrent, rsp.HpMax)
	}
	if rsp.ExperiencePoints != 900 {
		t.Fatalf("经验应对齐 3 级门槛 900，实际 %d", rsp.ExperiencePoints)
	}
	if rsp.HitDiceTotal != 3 || rsp.HitDiceRemaining != 3 {
		t.Fatalf("生命骰应重置为 3/3，实际 %d/%d", rsp.HitDiceRemaining, rsp.HitDiceTotal)
	}
	if rsp.LevelUpStatus != nil {
		t.Fatalf("直设等级后期望已结算，实际 %s", *rsp.LevelUpStatus)
	}
	if len(rsp.CompletedChoices) != 0 {
		t.Fatalf("直设等级应清空审计，实际剩 %d 条", len(rsp.CompletedChoices))
	}
}
