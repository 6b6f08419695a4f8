package main

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"VidTube/internal/config"
	"VidTube/internal/model"

	"github.com/go-faker/faker/v4"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 填充测试数据：用户、视频、订阅、点赞
// 注意：会先删掉所有旧表，只用于开发环境
func main() {
	fmt.Println("开始填充测试数据...")

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("无法连接到数据库: %v", err)
	}

	// 先删后建，保证每次填充都是干净的
	db.Migrator().DropTable(
		&model.WatchHistory{},
		&model.Subscription{},
		&model.Like{},
		&model.Comment{},
		&model.Tweet{},
		&model.Video{},
		&model.User{},
	)
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
		log.Fatalf("数据库迁移失败: %v", err)
	}
	fmt.Println("数据库重建成功!")

	// 所有测试用户共用密码"password"，哈希一次就够
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码加密失败: %v", err)
	}

	userCount := 50
	for i := 0; i < userCount; i++ {
		// faker可能撞名，带上序号保证唯一
		user := model.User{
			Username: fmt.Sprintf("%s%d", strings.ToLower(faker.Username()), i),
			Email:    fmt.Sprintf("user%d_%s", i, faker.Email()),
			FullName: faker.Name(),
			Password: string(hashedPassword),
		}
		db.Create(&user)
	}
	fmt.Printf("成功创建 %d 个用户!\n", userCount)

	videoCount := 200
	for i := 0; i < videoCount; i++ {
		video := model.Video{
			OwnerID:      uint64(rand.Intn(userCount) + 1),
			Title:        faker.Sentence(),
			Description:  faker.Paragraph(),
			VideoURL:     "https://test.com/video.mp4",
			ThumbnailURL: "https://test.com/thumbnail.jpg",
			Duration:     float64(rand.Intn(600) + 10),
			Views:        uint64(rand.Intn(10000)),
			IsPublished:  true,
		}
		db.Create(&video)
	}
	fmt.Printf("成功创建 %d 个视频!\n", videoCount)

	subCount := 300
	for i := 0; i < subCount; i++ {
		subscriberID := uint64(rand.Intn(userCount) + 1)
		channelID := uint64(rand.Intn(userCount) + 1)
		if subscriberID == channelID {
			continue
		}
		sub := model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
		// 撞上唯一索引就什么都不做
		db.Clauses(clause.OnConflict{DoNothing: true}).Create(&sub)
	}
	fmt.Printf("成功创建(或尝试创建) %d 个订阅!\n", subCount)

	likeCount := 1000
	for i := 0; i < likeCount; i++ {
		videoID := uint64(rand.Intn(videoCount) + 1)
		like := model.Like{
			UserID:  uint64(rand.Intn(userCount) + 1),
			VideoID: &videoID,
		}
		db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	}
	fmt.Printf("成功创建(或尝试创建) %d 个点赞!\n", likeCount)

	fmt.Println("所有测试数据填充完毕!")
}
