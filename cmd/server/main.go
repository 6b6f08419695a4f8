package main

import (
	"context"

	"VidTube/internal/auth"
	"VidTube/internal/config"
	"VidTube/internal/data"
	"VidTube/internal/handler"
	"VidTube/internal/model"
	"VidTube/internal/repository"
	"VidTube/internal/router"
	"VidTube/internal/service"
	"VidTube/pkg/logger"
	"VidTube/pkg/rabbitmq"
	"VidTube/pkg/redis"
	"VidTube/pkg/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// .env不存在也没关系，环境变量可以从别处来
	_ = godotenv.Load()
	cfg := config.Load()

	logger.InitLogger(cfg.LogFile)

	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("无法连接到数据库: %v", err)
	}
	logger.Log.Info("数据库连接成功")

	// AutoMigrate只加表/列/索引，不做删除和修改
	err = db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
		&model.Tweet{},
		&model.Subscription{},
		&model.WatchHistory{},
	)
	if err != nil {
		logger.Log.Fatalf("数据库迁移失败: %v", err)
	}
	logger.Log.Info("数据库迁移成功")

	// Redis挂了服务降级为无缓存运行，不拦着启动
	redisClient, err := redis.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Log.WithError(err).Warn("无法连接到Redis，缓存功能已禁用")
		redisClient = nil
	} else {
		logger.Log.Info("Redis连接成功")
	}

	// RabbitMQ挂了观看事件不投递，播放量和观看历史暂停更新
	rabbitMQConn, err := rabbitmq.InitRabbitMQ(cfg.AMQPURL)
	if err != nil {
		logger.Log.WithError(err).Warn("无法连接到RabbitMQ，观看事件已禁用")
		rabbitMQConn = nil
	} else {
		defer rabbitMQConn.Close()
		logger.Log.Info("RabbitMQ连接成功")
	}

	media, err := storage.NewS3Store(context.Background(), cfg)
	if err != nil {
		logger.Log.Fatalf("无法初始化对象存储: %v", err)
	}
	logger.Log.Info("对象存储初始化成功")

	tokens := auth.NewTokenIssuer(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db, redisClient)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	tweetRepo := repository.NewTweetRepository(db)

	uow := data.NewUnitOfWork(db, commentRepo, likeRepo)

	userService := service.NewUserService(userRepo, subRepo, media, tokens)
	videoService := service.NewVideoService(videoRepo, likeRepo, subRepo, media, rabbitMQConn)
	commentService := service.NewCommentService(commentRepo, likeRepo, videoRepo, uow)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	subService := service.NewSubscriptionService(subRepo, userRepo)
	tweetService := service.NewTweetService(tweetRepo, userRepo)

	userHandler := handler.NewUserHandler(userService, cfg)
	videoHandler := handler.NewVideoHandler(videoService, cfg)
	commentHandler := handler.NewCommentHandler(commentService)
	likeHandler := handler.NewLikeHandler(likeService)
	tweetHandler := handler.NewTweetHandler(tweetService)
	subHandler := handler.NewSubscriptionHandler(subService)

	r := router.SetupRouter(tokens, userHandler, videoHandler, commentHandler, likeHandler, tweetHandler, subHandler)

	logger.Log.Infof("服务器将在%s启动", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.Log.Fatalf("服务器启动失败: %v", err)
	}
}
