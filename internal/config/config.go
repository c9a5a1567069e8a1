// Package config 加载 TOML 配置文件，支持多路径查找
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// MainConfig 应用基本信息
type MainConfig struct {
	AppName           string `toml:"appName"`
	Host              string `toml:"host"`              // 监听地址，如 "0.0.0.0"
	Port              int    `toml:"port"`              // 监听端口
	EnableTlsRedirect bool   `toml:"enableTlsRedirect"` // 反向代理终结 TLS 时关闭
}

// MysqlConfig MySQL 连接配置
type MysqlConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Password string `toml:"password"` // 无密码留空
	Db       int    `toml:"db"`
}

// LogConfig 日志与轮转配置，参数含义见 logger 包
type LogConfig struct {
	LogPath    string `toml:"logPath"`
	FileName   string `toml:"fileName"`
	MaxSize    int    `toml:"maxSize"`    // 单个文件上限（MB）
	MaxBackups int    `toml:"maxBackups"` // 保留的旧文件个数
	MaxAge     int    `toml:"maxAge"`     // 保留天数
	Level      string `toml:"level"`      // debug / info / warn / error
}

// KafkaConfig 实时通道消息代理配置
// messageMode 取 "channel" 时单机进程内分发，取 "kafka" 时走消息队列
type KafkaConfig struct {
	MessageMode   string        `toml:"messageMode"`
	HostPort      string        `toml:"hostPort"`      // 如 "localhost:9092"
	CampaignTopic string        `toml:"campaignTopic"` // 战役实时消息主题
	Partition     int           `toml:"partition"`
	Timeout       time.Duration `toml:"timeout"`
}

// JWTConfig 双令牌认证配置
type JWTConfig struct {
	Secret             string `toml:"secret"`             // 签名密钥，建议 32 字符以上
	AccessTokenExpiry  int    `toml:"accessTokenExpiry"`  // Access Token 有效期（分钟）
	RefreshTokenExpiry int    `toml:"refreshTokenExpiry"` // Refresh Token 有效期（小时）
}

// SnowflakeConfig 消息主键生成配置
type SnowflakeConfig struct {
	MachineID int64 `toml:"machineId"` // 0~1023，多实例部署时每台唯一
}

// Config 总配置，聚合全部子配置
type Config struct {
	MainConfig      `toml:"mainConfig"`
	MysqlConfig     `toml:"mysqlConfig"`
	RedisConfig     `toml:"redisConfig"`
	LogConfig       `toml:"logConfig"`
	KafkaConfig     `toml:"kafkaConfig"`
	JWTConfig       `toml:"jwtConfig"`
	SnowflakeConfig `toml:"snowflakeConfig"`
}

var config *Config

// LoadConfig 依次尝试候选路径，加载第一个能解析的配置文件
// 本地配置优先于默认配置，便于开发环境覆盖
func LoadConfig() error {
	paths := []string{
		"configs/config_local.toml",
		"configs/config.toml",
		"../../configs/config_local.toml",
		"../../configs/config.toml",
	}

	for _, path := range paths {
		if _, err := toml.DecodeFile(path, config); err == nil {
			return nil
		}
	}

	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// GetConfig 获取全局配置单例，首次调用时加载
// 加载失败时返回零值配置，调用方各自兜底
func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig()
	}
	return config
}
