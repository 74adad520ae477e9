package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"zhixiao_school_server/internal/config"
	dao "zhixiao_school_server/internal/dao/mysql"
	myredis "zhixiao_school_server/internal/dao/redis"
	"zhixiao_school_server/internal/handler"
	"zhixiao_school_server/internal/https_server"
	"zhixiao_school_server/internal/infrastructure/logger"
	"zhixiao_school_server/internal/service"
	"zhixiao_school_server/internal/service/live"
	"zhixiao_school_server/pkg/util/jwt"
	"zhixiao_school_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化 JWT 和雪花算法 ID 生成器
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init()
	zap.L().Info("JWT 与雪花算法初始化成功")

	// 4. 初始化数据库
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 5. 初始化 Redis
	myredis.Init()
	cache := myredis.GetCacheService()
	zap.L().Info("Redis 初始化成功")

	// 6. 初始化变更事件总线
	// channel 模式适用于单机部署，kafka 模式支持多实例广播
	var bus live.EventBus
	if conf.KafkaConfig.MessageMode == "kafka" {
		bus = live.NewKafkaBus()
	} else {
		bus = live.NewChannelBus()
	}
	live.GlobalBus = bus
	zap.L().Info("事件总线初始化成功", zap.String("mode", conf.KafkaConfig.MessageMode))

	// 7. 初始化 Service 层 (依赖注入)
	service.InitServices(repos, cache, bus)
	zap.L().Info("Service 层初始化成功")

	// 8. 初始化订阅中心并接入事件总线
	live.GlobalHub = live.NewHub(service.Svc.Snapshots)
	go live.GlobalHub.Run()
	bus.Start(live.GlobalHub.Dispatch)
	zap.L().Info("订阅中心初始化成功")

	// 9. 初始化参数校验翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("参数校验翻译器初始化失败", zap.Error(err))
	}

	// 10. 初始化 HTTP 服务器
	handlers := handler.NewHandlers(service.Svc)
	engine := https_server.Init(handlers)
	zap.L().Info("HTTP 服务器初始化成功")

	// 11. 启动服务
	host := conf.MainConfig.Host
	port := conf.MainConfig.Port

	go func() {
		// 运行 HTTP 服务（生产环境由 Nginx 处理 SSL）
		if err := engine.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			zap.L().Fatal("server running fault")
			return
		}
	}()

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 等待信号
	<-quit

	zap.L().Info("关闭服务器...")

	bus.Close()

	zap.L().Info("服务器已关闭")
}
