package main

import (
	"encoding/json"

	"VidTube/internal/config"
	"VidTube/internal/repository"
	"VidTube/internal/service"
	"VidTube/pkg/logger"
	"VidTube/pkg/rabbitmq"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 消费者进程：从队列取观看事件，给视频播放量+1，登录用户再记一条观看历史
// 和HTTP进程分开部署，读高峰时写压力不影响接口响应
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger.InitLogger(cfg.LogFile)

	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到数据库: %v", err)
	}

	rabbitMQConn, err := rabbitmq.InitRabbitMQ(cfg.AMQPURL)
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close()

	// 消费者不读缓存，rdb传nil
	videoRepo := repository.NewVideoRepository(db, nil)
	userRepo := repository.NewUserRepository(db)
	viewHandler := service.NewViewEventHandler(videoRepo, userRepo)

	consumeViews(rabbitMQConn, viewHandler)
}

func consumeViews(conn *amqp.Connection, viewHandler *service.ViewEventHandler) {
	ch, err := conn.Channel()
	if err != nil {
		logger.Log.Fatalf("无法打开Channel: %v", err)
	}
	defer ch.Close()

	// 声明是幂等的，消费者先起也不会找不到队列
	if _, err := ch.QueueDeclare(service.QueueView, true, false, false, false, nil); err != nil {
		logger.Log.Fatalf("无法声明观看事件队列: %v", err)
	}

	msgs, err := ch.Consume(
		service.QueueView, // queue
		"",                // consumer
		false,             // auto-ack：手动确认，处理完才算消费
		false,             // exclusive
		false,             // no-local
		false,             // no-wait
		nil,               // args
	)
	if err != nil {
		logger.Log.Fatalf("无法注册观看事件消费者: %v", err)
	}

	forever := make(chan bool)

	go func() {
		// msgs是通道，队列空了就阻塞在这里等
		for d := range msgs {
			logCtx := logger.Log.WithField("body", string(d.Body)).WithField("redelivered", d.Redelivered)

			var msg service.ViewMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				logCtx.WithError(err).Error("观看事件JSON解析失败")
				// 坏消息重投多少次都解析不了，直接丢弃
				d.Nack(false, false)
				continue
			}

			if err := viewHandler.Handle(msg); err != nil {
				logCtx.WithError(err).Error("观看事件处理失败，消息重新入队")
				d.Nack(false, true)
				continue
			}

			d.Ack(false)
		}
	}()

	logger.Log.Info("观看事件消费者已启动，等待消息中...")
	<-forever
}
