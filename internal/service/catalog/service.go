// Package catalog 提供只读目录数据的查询服务
// 职业/种族/背景/技能/物品/法术等规则数据的统一入口
// 职业成长表查询量大且几乎不变，走 Redis 缓存
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	myredis "aethorias_chronicle_server/internal/dao/redis"
	"aethorias_chronicle_server/internal/model"
	"aethorias_chronicle_server/pkg/constants"
)

// Store 目录数据查询接口
// 进阶引擎与角色服务依赖此接口，测试时可注入内存实现
type Store interface {
	// GetClassByName 按名查找职业
	GetClassByName(name string) (*model.Class, error)
	// GetRaceByName 按名查找种族
	GetRaceByName(name string) (*model.Race, error)
	// GetBackgroundByName 按名查找背景
	GetBackgroundByName(name string) (*model.Background, error)
	// GetSkillByName 按名查找技能
	GetSkillByName(name string) (*model.Skill, error)
	// GetSkillsByUuids 批量按 UUID 查找技能
	GetSkillsByUuids(uuids []string) ([]model.Skill, error)
	// GetSpellsByUuids 批量按 UUID 查找法术
	GetSpellsByUuids(uuids []string) ([]model.Spell, error)
	// GetItemByName 按名查找物品
	GetItemByName(name string) (*model.Item, error)
}

// catalogService Store 接口的数据库实现
type catalogService struct {
	repos *repository.Repositories
	cache myredis.CacheService
}

// NewCatalogService 构造函数
// cache 可为 nil，此时所有查询直接落库
func NewCatalogService(repos *repository.Repositories, cache myredis.CacheService) *catalogService {
	return &catalogService{repos: repos, cache: cache}
}

// GetClassByName 按名查找职业，优先读缓存
func (s *catalogService) GetClassByName(name string) (*model.Class, error) {
	key := "class_" + name
	if s.cache != nil {
		cached, err := s.cache.Get(context.Background(), key)
		if err == nil && cached != "" {
			var class model.Class
			if err := json.Unmarshal([]byte(cached), &class); err == nil {
				return &class, nil
			}
			// 缓存内容损坏，落库重建
			zap.L().Warn("职业缓存反序列化失败，回源查询", zap.String("class", name))
		}
	}

	class, err := s.repos.Catalog.GetClassByName(name)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(class); err == nil {
			if err := s.cache.Set(context.Background(), key, string(data), time.Minute*constants.REDIS_TIMEOUT); err != nil {
				zap.L().Error("写入职业缓存失败", zap.Error(err))
			}
		}
	}
	return class, nil
}

// GetRaceByName 按名查找种族
func (s *catalogService) GetRaceByName(name string) (*model.Race, error) {
	return s.repos.Catalog.GetRaceByName(name)
}

// GetBackgroundByName 按名查找背景
func (s *catalogService) GetBackgroundByName(name string) (*model.Background, error) {
	return s.repos.Catalog.GetBackgroundByName(name)
}

// GetSkillByName 按名查找技能
func (s *catalogService) GetSkillByName(name string) (*model.Skill, error) {
	return s.repos.Catalog.GetSkillByName(name)
}

// GetSkillsByUuids 批量按 UUID 查找技能
func (s *catalogService) GetSkillsByUuids(uuids []string) ([]model.Skill, error) {
	return s.repos.Catalog.GetSkillsByUuids(uuids)
}

// GetSpellsByUuids 批量按 UUID 查找法术
func (s *catalogService) GetSpellsByUuids(uuids []string) ([]model.Spell, error) {
	return s.repos.Catalog.GetSpellsByUuids(uuids)
}

// GetItemByName 按名查找物品
func (s *catalogService) GetItemByName(name string) (*model.Item, error) {
	return s.repos.Catalog.GetItemByName(name)
}

var _ Store = (*catalogService)(nil)
