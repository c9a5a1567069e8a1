// Package snowflake 封装聊天消息主键的雪花 ID 生成
package snowflake

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"aethorias_chronicle_server/internal/config"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// Init 初始化雪花节点，进程启动时调用一次
// MachineID 超出 0~1023 时回退为 1
func Init() {
	nodeOnce.Do(func() {
		machineID := config.GetConfig().SnowflakeConfig.MachineID
		if machineID < 0 || machineID > 1023 {
			zap.L().Warn("雪花 MachineID 配置超出范围，使用默认值 1", zap.Int64("machineID", machineID))
			machineID = 1
		}
		var err error
		node, err = snowflake.NewNode(machineID)
		if err != nil {
			zap.L().Fatal("雪花节点初始化失败", zap.Error(err))
		}
		zap.L().Info("雪花节点初始化完成", zap.Int64("machineID", machineID))
	})
}

// GenerateID 生成 int64 雪花 ID，未 Init 时懒初始化
func GenerateID() int64 {
	if node == nil {
		Init()
	}
	return node.Generate().Int64()
}

// GenerateIDString 生成字符串形式的雪花 ID
// 前端 JavaScript 的 Number 存不下 int64，序列化场景用这个
func GenerateIDString() string {
	if node == nil {
		Init()
	}
	return node.Generate().String()
}
