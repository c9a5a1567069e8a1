// Package repository 定义数据访问层接口和聚合结构
// 本文件提供内存实现，用于不依赖数据库的业务层测试
// 行为与 GORM 实现对齐：未命中返回 CodeNotFound，
// 带版本保存在版本不匹配时返回 CodeConflict
package repository

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"aethorias_chronicle_server/internal/model"
	"aethorias_chronicle_server/pkg/errorx"
)

// memoryStore 各实体的内存存储，单锁保护
type memoryStore struct {
	mutex sync.Mutex

	users      map[string]model.UserInfo
	characters map[string]model.Character
	skills     map[string][]model.CharacterSkill
	items      map[string][]model.CharacterItem
	spells     map[string][]model.CharacterSpell
	choices    map[string][]model.LevelUpChoice

	campaigns map[string]model.Campaign
	members   map[string]model.CampaignMember // key: campaignUuid + "|" + userUuid
	sessions  map[string]model.CampaignSession
	entries   map[string][]model.InitiativeEntry

	classes     map[string]model.Class
	races       map[string]model.Race
	backgrounds map[string]model.Background
	skillDefs   map[string]model.Skill
	itemDefs    map[string]model.Item
	spellDefs   map[string]model.Spell
	monsters    map[string]model.Monster
	conditions  map[string]model.Condition

	messages []model.ChatMessage
}

// NewMemoryRepositories 创建内存实现的 Repository 聚合
// db 为 nil，Transaction 直接执行函数本身
func NewMemoryRepositories() *Repositories {
	store := &memoryStore{
		users:       make(map[string]model.UserInfo),
		characters:  make(map[string]model.Character),
		skills:      make(map[string][]model.CharacterSkill),
		items:       make(map[string][]model.CharacterItem),
		spells:      make(map[string][]model.CharacterSpell),
		choices:     make(map[string][]model.LevelUpChoice),
		campaigns:   make(map[string]model.Campaign),
		members:     make(map[string]model.CampaignMember),
		sessions:    make(map[string]model.CampaignSession),
		entries:     make(map[string][]model.InitiativeEntry),
		classes:     make(map[string]model.Class),
		races:       make(map[string]model.Race),
		backgrounds: make(map[string]model.Background),
		skillDefs:   make(map[string]model.Skill),
		itemDefs:    make(map[string]model.Item),
		spellDefs:   make(map[string]model.Spell),
		monsters:    make(map[string]model.Monster),
		conditions:  make(map[string]model.Condition),
	}
	return &Repositories{
		User:        &memoryUserRepository{store},
		Character:   &memoryCharacterRepository{store},
		Campaign:    &memoryCampaignRepository{store},
		Member:      &memoryMemberRepository{store},
		GameSession: &memoryGameSessionRepository{store},
		Catalog:     &memoryCatalogRepository{store},
		ChatMessage: &memoryChatMessageRepository{store},
	}
}

func notFound(what string) error {
	return errorx.New(errorx.CodeNotFound, what+"不存在")
}

// ==================== User ====================

type memoryUserRepository struct{ store *memoryStore }

// hashRawPassword 模拟 GORM BeforeSave 钩子的密码加密
func hashRawPassword(user *model.UserInfo) error {
	if user.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(user.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.Password = string(hash)
	}
	return nil
}

func (r *memoryUserRepository) FindByUuid(uuid string) (*model.UserInfo, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	user, ok := r.store.users[uuid]
	if !ok {
		return nil, notFound("用户")
	}
	return &user, nil
}

func (r *memoryUserRepository) FindByUsername(username string) (*model.UserInfo, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	for _, user := range r.store.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, notFound("用户")
}

func (r *memoryUserRepository) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	result := make([]model.UserInfo, 0, len(uuids))
	for _, uuid := range uuids {
		if user, ok := r.store.users[uuid]; ok {
			result = append(result, user)
		}
	}
	return result, nil
}

func (r *memoryUserRepository) Create(user *model.UserInfo) error {
	if err := hashRawPassword(user); err != nil {
		return err
	}
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	r.store.users[user.Uuid] = *user
	return nil
}

func (r *memoryUserRepository) Update(user *model.UserInfo) error {
	if err := hashRawPassword(user); err != nil {
		return err
	}
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	r.store.users[user.Uuid] = *user
	return nil
}

// ==================== Character ====================

type memoryCharacterRepository struct{ store *memoryStore }

func (r *memoryCharacterRepository) FindByUuid(uuid string) (*model.Character, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	character, ok := r.store.characters[uuid]
	if !ok {
		return nil, notFound("角色")
	}
	return &character, nil
}

func (r *memoryCharacterRepository) FindByOwnerId(ownerId string) ([]model.Character, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	var result []model.Character
	for _, character := range r.store.characters {
		if character.OwnerId == ownerId {
			result = append(result, character)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Uuid < result[j].Uuid })
	return result, nil
}

func (r *memoryCharacterRepository) Create(character *model.Character) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	r.store.characters[character.Uuid] = *character
	return nil
}

func (r *memoryCharacterRepository) Save(character *model.Character) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	r.store.characters[character.Uuid] = *character
	return nil
}

func (r *memoryCharacterRepository) SaveWithVersion(character *model.Character) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	stored, ok := r.store.characters[character.Uuid]
	if !ok {
		return notFound("角色")
	}
	if stored.Version != character.Version {
		return errorx.New(errorx.CodeConflict, "角色已被并发修改，请重试")
	}
	character.Version++
	r.store.characters[character.Uuid] = *character
	return nil
}

func (r *memoryCharacterRepository) SoftDeleteByUuid(uuid string) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	delete(r.store.characters, uuid)
	return nil
}

func (r *memoryCharacterRepository) FindSkills(characterUuid string) ([]model.CharacterSkill, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	return append([]model.CharacterSkill(nil), r.store.skills[characterUuid]...), nil
}

func (r *memoryCharacterRepository) CreateSkills(skills []model.CharacterSkill) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	for _, skill := range skills {
		r.store.skills[skill.CharacterUuid] = append(r.store.skills[skill.CharacterUuid], skill)
	}
	return nil
}

func (r *memoryCharacterRepository) SetExpertiseBySkillUuids(characterUuid string, skillUuids []string) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	wanted := make(map[string]bool, len(skillUuids))
	for _, uuid := range skillUuids {
		wanted[uuid] = true
	}
	list := r.store.skills[characterUuid]
	for i := range list {
		if wanted[list[i].SkillUuid] {
			list[i].HasExpertise = 1
		}
	}
	r.store.skills[characterUuid] = list
	return nil
}

func (r *memoryCharacterRepository) FindItems(characterUuid string) ([]model.CharacterItem, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	return append([]model.CharacterItem(nil), r.store.items[characterUuid]...), nil
}

func (r *memoryCharacterRepository) CreateItems(items []model.CharacterItem) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	for _, item := range items {
		r.store.items[item.CharacterUuid] = append(r.store.items[item.CharacterUuid], item)
	}
	return nil
}

func (r *memoryCharacterRepository) FindSpells(characterUuid string) ([]model.CharacterSpell, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	return append([]model.CharacterSpell(nil), r.store.spells[characterUuid]...), nil
}

func (r *memoryCharacterRepository) CreateSpells(spells []model.CharacterSpell) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	for _, spell := range spells {
		r.store.spells[spell.CharacterUuid] = append(r.store.spells[spell.CharacterUuid], spell)
	}
	return nil
}

func (r *memoryCharacterRepository) FindChoices(characterUuid string) ([]model.LevelUpChoice, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	return append([]model.LevelUpChoice(nil), r.store.choices[characterUuid]...), nil
}

func (r *memoryCharacterRepository) CreateChoice(choice *model.LevelUpChoice) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	r.store.choices[choice.CharacterUuid] = append(r.store.choices[choice.CharacterUuid], *choice)
	return nil
}

func (r *memoryCharacterRepository) DeleteChoices(characterUuid string) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	delete(r.store.choices, characterUuid)
	return nil
}

func (r *memoryCharacterRepository) DeleteAssociations(characterUuid string) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	delete(r.store.skills, characterUuid)
	delete(r.store.items, characterUuid)
	delete(r.store.spells, characterUuid)
	delete(r.store.choices, characterUuid)
	return nil
}

// ==================== Campaign ====================

type memoryCampaignRepository struct{ store *memoryStore }

func (r *memoryCampaignRepository) FindByUuid(uuid string) (*model.Campaign, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	campaign, ok := r.store.campaigns[uuid]
	if !ok {
		return nil, notFound("战役")
	}
	return &campaign, nil
}

func (r *memoryCampaignRepository) FindByDmUserId(dmUserId string) ([]model.Campaign, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	var result []model.Campaign
	for _, campaign := range r.store.campaigns {
		if campaign.DmUserId == dmUserId {
			result = append(result, campaign)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Uuid < result[j].Uuid })
	return result, nil
}

func (r *memoryCampaignRepository) Create(campaign *model.Campaign) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	r.store.campaigns[campaign.Uuid] = *campaign
	return nil
}

func (r *memoryCampaignRepository) Update(campaign *model.Campaign) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	r.store.campaigns[campaign.Uuid] = *campaign
	return nil
}

func (r *memoryCampaignRepository) SoftDeleteByUuid(uuid string) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	delete(r.store.campaigns, uuid)
	return nil
}

// ==================== Member ====================

type memoryMemberRepository struct{ store *memoryStore }

func memberKey(campaignUuid, userUuid string) string {
	return campaignUuid + "|" + userUuid
}

func (r *memoryMemberRepository) FindByCampaignAndUser(campaignUuid, userUuid string) (*model.CampaignMember, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	member, ok := r.store.members[memberKey(campaignUuid, userUuid)]
	if !ok {
		return nil, notFound("成员记录")
	}
	return &member, nil
}

func (r *memoryMemberRepository) FindByCampaign(campaignUuid string) ([]model.CampaignMember, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	var result []model.CampaignMember
	for key, member := range r.store.members {
		if strings.HasPrefix(key, campaignUuid+"|") {
			result = append(result, member)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Uuid < result[j].Uuid })
	return result, nil
}

func (r *memoryMemberRepository) FindByCampaignAndStatus(campaignUuid string, status int8) ([]model.CampaignMember, error) {
	all, _ := r.FindByCampaign(campaignUuid)
	var result []model.CampaignMember
	for _, member := range all {
		if member.Status == status {
			result = append(result, member)
		}
	}
	return result, nil
}

func (r *memoryMemberRepository) FindByUser(userUuid string) ([]model.CampaignMember, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	var result []model.CampaignMember
	for _, member := range r.store.members {
		if member.UserUuid == userUuid {
			result = append(result, member)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Uuid < result[j].Uuid })
	return result, nil
}

func (r *memoryMemberRepository) CountActiveByCampaign(campaignUuid string) (int64, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	var count int64
	for key, member := range r.store.members {
		// ACTIVE=1，与 member_status_enum 对齐
		if strings.HasPrefix(key, campaignUuid+"|") && member.Status == 1 {
			count++
		}
	}
	return count, nil
}

func (r *memoryMemberRepository) Create(member *model.CampaignMember) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	key := memberKey(member.CampaignUuid, member.UserUuid)
	if _, exists := r.store.members[key]; exists {
		return errorx.New(errorx.CodeConflict, "成员记录已存在")
	}
	r.store.members[key] = *member
	return nil
}

func (r *memoryMemberRepository) Update(member *model.CampaignMember) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	r.store.members[memberKey(member.CampaignUuid, member.UserUuid)] = *member
	return nil
}

func (r *memoryMemberRepository) Delete(campaignUuid, userUuid string) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	delete(r.store.members, memberKey(campaignUuid, userUuid))
	return nil
}

func (r *memoryMemberRepository) DeleteByCampaign(campaignUuid string) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	for key := range r.store.members {
		if strings.HasPrefix(key, campaignUuid+"|") {
			delete(r.store.members, key)
		}
	}
	return nil
}

// ==================== GameSession ====================

type memoryGameSessionRepository struct{ store *memoryStore }

func (r *memoryGameSessionRepository) FindByUuid(uuid string) (*model.CampaignSession, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	session, ok := r.store.sessions[uuid]
	if !ok {
		return nil, notFound("场次")
	}
	return &session, nil
}

func (r *memoryGameSessionRepository) FindActiveByCampaign(campaignUuid string) (*model.CampaignSession, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	for _, session := range r.store.sessions {
		if session.CampaignUuid == campaignUuid && session.IsActive == 1 {
			s := session
			return &s, nil
		}
	}
	return nil, notFound("进行中的场次")
}

func (r *memoryGameSessionRepository) FindByCampaign(campaignUuid string) ([]model.CampaignSession, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	var result []model.CampaignSession
	for _, session := range r.store.sessions {
		if session.CampaignUuid == campaignUuid {
			result = append(result, session)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Uuid < result[j].Uuid })
	return result, nil
}

func (r *memoryGameSessionRepository) Create(session *model.CampaignSession) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	r.store.sessions[session.Uuid] = *session
	return nil
}

func (r *memoryGameSessionRepository) Update(session *model.CampaignSession) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	r.store.sessions[session.Uuid] = *session
	return nil
}

func (r *memoryGameSessionRepository) DeleteByCampaign(campaignUuid string) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	for uuid, session := range r.store.sessions {
		if session.CampaignUuid == campaignUuid {
			delete(r.store.sessions, uuid)
		}
	}
	return nil
}

func (r *memoryGameSessionRepository) CreateEntry(entry *model.InitiativeEntry) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	r.store.entries[entry.SessionUuid] = append(r.store.entries[entry.SessionUuid], *entry)
	return nil
}

func (r *memoryGameSessionRepository) FindEntriesBySession(sessionUuid string) ([]model.InitiativeEntry, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	result := append([]model.InitiativeEntry(nil), r.store.entries[sessionUuid]...)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].InitiativeRoll > result[j].InitiativeRoll
	})
	return result, nil
}

func (r *memoryGameSessionRepository) DeleteEntriesBySession(sessionUuid string) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	delete(r.store.entries, sessionUuid)
	return nil
}

// ==================== Catalog ====================

type memoryCatalogRepository struct{ store *memoryStore }

func (r *memoryCatalogRepository) GetClassByName(name string) (*model.Class, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	class, ok := r.store.classes[name]
	if !ok {
		return nil, notFound("职业")
	}
	return &class, nil
}

func (r *memoryCatalogRepository) GetRaceByName(name string) (*model.Race, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	race, ok := r.store.races[name]
	if !ok {
		return nil, notFound("种族")
	}
	return &race, nil
}

func (r *memoryCatalogRepository) GetBackgroundByName(name string) (*model.Background, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	background, ok := r.store.backgrounds[name]
	if !ok {
		return nil, notFound("背景")
	}
	return &background, nil
}

func (r *memoryCatalogRepository) GetSkillByName(name string) (*model.Skill, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	skill, ok := r.store.skillDefs[name]
	if !ok {
		return nil, notFound("技能")
	}
	return &skill, nil
}

func (r *memoryCatalogRepository) GetSkillsByUuids(uuids []string) ([]model.Skill, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	var result []model.Skill
	for _, skill := range r.store.skillDefs {
		for _, uuid := range uuids {
			if skill.Uuid == uuid {
				result = append(result, skill)
				break
			}
		}
	}
	return result, nil
}

func (r *memoryCatalogRepository) GetSpellsByUuids(uuids []string) ([]model.Spell, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	var result []model.Spell
	for _, spell := range r.store.spellDefs {
		for _, uuid := range uuids {
			if spell.Uuid == uuid {
				result = append(result, spell)
				break
			}
		}
	}
	return result, nil
}

func (r *memoryCatalogRepository) GetItemByName(name string) (*model.Item, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	item, ok := r.store.itemDefs[name]
	if !ok {
		return nil, notFound("物品")
	}
	return &item, nil
}

func (r *memoryCatalogRepository) GetMonsterByName(name string) (*model.Monster, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	monster, ok := r.store.monsters[name]
	if !ok {
		return nil, notFound("怪物")
	}
	return &monster, nil
}

func (r *memoryCatalogRepository) GetConditionByName(name string) (*model.Condition, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	condition, ok := r.store.conditions[name]
	if !ok {
		return nil, notFound("状态")
	}
	return &condition, nil
}

func (r *memoryCatalogRepository) CountClasses() (int64, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	return int64(len(r.store.classes)), nil
}

func (r *memoryCatalogRepository) SeedClasses(classes []model.Class) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	for _, class := range classes {
		r.store.classes[class.Name] = class
	}
	return nil
}

func (r *memoryCatalogRepository) SeedSkills(skills []model.Skill) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	for _, skill := range skills {
		r.store.skillDefs[skill.Name] = skill
	}
	return nil
}

func (r *memoryCatalogRepository) SeedSpells(spells []model.Spell) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	for _, spell := range spells {
		r.store.spellDefs[spell.Name] = spell
	}
	return nil
}

func (r *memoryCatalogRepository) SeedItems(items []model.Item) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	for _, item := range items {
		r.store.itemDefs[item.Name] = item
	}
	return nil
}

func (r *memoryCatalogRepository) SeedRaces(races []model.Race) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	for _, race := range races {
		r.store.races[race.Name] = race
	}
	return nil
}

func (r *memoryCatalogRepository) SeedBackgrounds(backgrounds []model.Background) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	for _, background := range backgrounds {
		r.store.backgrounds[background.Name] = background
	}
	return nil
}

// ==================== ChatMessage ====================

type memoryChatMessageRepository struct{ store *memoryStore }

func (r *memoryChatMessageRepository) Create(message *model.ChatMessage) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	r.store.messages = append(r.store.messages, *message)
	return nil
}

func (r *memoryChatMessageRepository) FindByCampaign(campaignUuid string, limit int) ([]model.ChatMessage, error) {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	var result []model.ChatMessage
	// 新消息在后面追加，倒序遍历得到"新在前"
	for i := len(r.store.messages) - 1; i >= 0 && len(result) < limit; i-- {
		if r.store.messages[i].CampaignUuid == campaignUuid {
			result = append(result, r.store.messages[i])
		}
	}
	return result, nil
}
