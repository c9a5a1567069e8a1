package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"aethorias_chronicle_server/internal/config"
	dao "aethorias_chronicle_server/internal/dao/mysql"
	myredis "aethorias_chronicle_server/internal/dao/redis"
	"aethorias_chronicle_server/internal/handler"
	"aethorias_chronicle_server/internal/https_server"
	"aethorias_chronicle_server/internal/infrastructure/logger"
	"aethorias_chronicle_server/internal/service"
	"aethorias_chronicle_server/internal/service/catalog"
	"aethorias_chronicle_server/internal/service/chat"
	"aethorias_chronicle_server/pkg/util/jwt"
	"aethorias_chronicle_server/pkg/util/snowflake"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化雪花算法节点（实时消息 ID）
	snowflake.Init()

	// 4. 初始化 JWT
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	zap.L().Info("JWT 初始化成功")

	// 5. 初始化数据库
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 6. 首次启动时灌入职业/种族/背景等规则数据
	if err := catalog.SeedIfEmpty(repos); err != nil {
		zap.L().Fatal("规则数据初始化失败", zap.Error(err))
	}
	zap.L().Info("规则数据就绪")

	// 7. 初始化 Redis
	myredis.Init()
	cache := myredis.GetCacheService()
	zap.L().Info("Redis 初始化成功")

	// 8. 初始化 Service 层 (依赖注入)
	service.InitServices(repos, cache)
	zap.L().Info("Service 层初始化成功")

	// 9. 初始化实时通道（channel 或 kafka 模式）
	chatServer := chat.NewChatServer(conf.KafkaConfig.MessageMode, repos, cache)
	go chatServer.Start()
	zap.L().Info("实时通道初始化成功")

	// 10. 初始化 HTTP 服务器
	handlers := handler.NewHandlers(service.Svc, chatServer)
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("validator 翻译器初始化失败", zap.Error(err))
	}
	engine := https_server.Init(handlers)
	zap.L().Info("HTTP 服务器初始化成功")

	// 11. 启动服务
	host := conf.MainConfig.Host
	port := conf.MainConfig.Port
	go func() {
		if err := engine.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 等待信号
	<-quit

	zap.L().Info("关闭服务器...")
	chatServer.Close()
	zap.L().Info("服务器已关闭")
}
