// cmd/seeder/main.go

package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"Vidtube/internal/auth"
	"Vidtube/internal/config"
	"Vidtube/internal/model"
	"Vidtube/internal/repository"

	"github.com/go-faker/faker/v4"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	userCount     = 50
	videoCount    = 300
	commentCount  = 800
	likeCount     = 1500
	subscribeRuns = 400
	tweetCount    = 200
	playlistCount = 60
	historyRuns   = 600
	// 所有测试用户的默认密码
	seedPassword = "password123"
)

func main() {
	fmt.Println("🚀 开始填充测试数据...")

	// --- 1. 连接数据库 ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ 配置加载失败: %v", err)
	}
	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("❌ 无法连接到数据库: %v", err)
	}
	fmt.Println("✅ 数据库连接成功!")

	// --- 2. 清理旧数据 ---
	// 注意：这将删除所有数据！
	fmt.Println("🧹 正在清理旧数据...")
	if err := db.Migrator().DropTable(model.All()...); err != nil {
		log.Fatalf("❌ 删除旧表失败: %v", err)
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatalf("❌ 数据库迁移失败: %v", err)
	}
	fmt.Println("✅ 数据库迁移成功!")

	userIDs := seedUsers(db)
	videoIDs := seedVideos(db, userIDs)
	commentIDs := seedComments(db, userIDs, videoIDs)
	tweetIDs := seedTweets(db, userIDs)
	seedSubscriptions(db, userIDs)
	seedLikes(db, userIDs, map[model.LikeTargetType][]uint64{
		model.LikeTargetVideo:   videoIDs,
		model.LikeTargetComment: commentIDs,
		model.LikeTargetTweet:   tweetIDs,
	})
	seedPlaylists(db, userIDs, videoIDs)
	seedWatchHistory(db, userIDs, videoIDs)

	fmt.Printf("🎉🎉🎉 所有测试数据填充完毕! 默认密码: %s 🎉🎉🎉\n", seedPassword)
}

func pick(ids []uint64) uint64 {
	return ids[rand.IntN(len(ids))]
}

// --- 3. 创建用户 ---
// 密码只哈希一次，所有用户共用
func seedUsers(db *gorm.DB) []uint64 {
	fmt.Println("👥 正在创建用户...")
	hashed, err := auth.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("❌ 密码加密失败: %v", err)
	}
	ids := make([]uint64, 0, userCount)
	for i := 0; i < userCount; i++ {
		// faker生成的用户名可能重复，加上序号保证唯一，并统一小写
		username := strings.ToLower(fmt.Sprintf("%s%d", faker.Username(), i))
		user := model.User{
			Username:  username,
			Email:     fmt.Sprintf("%s@example.com", username),
			FullName:  faker.Name(),
			Password:  hashed,
			AvatarURL: fmt.Sprintf("https://picsum.photos/seed/%s/200", username),
			CoverURL:  fmt.Sprintf("https://picsum.photos/seed/%s-cover/1200/300", username),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("❌ 创建用户失败: %v", err)
		}
		ids = append(ids, user.ID)
	}
	fmt.Printf("✅ 成功创建 %d 个用户!\n", len(ids))
	return ids
}

// --- 4. 创建视频 ---
// 大约十分之一是未发布的草稿
func seedVideos(db *gorm.DB, userIDs []uint64) []uint64 {
	fmt.Println("🎬 正在创建视频...")
	ids := make([]uint64, 0, videoCount)
	for i := 0; i < videoCount; i++ {
		video := model.Video{
			OwnerID:      pick(userIDs),
			Title:        faker.Sentence(),
			Description:  faker.Paragraph(),
			VideoURL:     "https://test.com/video.mp4",
			ThumbnailURL: "https://test.com/thumbnail.jpg",
			Duration:     float64(30 + rand.IntN(1200)),
			Views:        uint64(rand.IntN(100000)),
			IsPublished:  rand.IntN(10) != 0,
		}
		// gorm对bool零值会用default:true，草稿要单独更新一次
		if err := db.Create(&video).Error; err != nil {
			log.Fatalf("❌ 创建视频失败: %v", err)
		}
		if !video.IsPublished {
			db.Model(&model.Video{}).Where("id = ?", video.ID).Update("is_published", false)
		}
		ids = append(ids, video.ID)
	}
	fmt.Printf("✅ 成功创建 %d 个视频!\n", len(ids))
	return ids
}

// --- 5. 创建评论 ---
func seedComments(db *gorm.DB, userIDs, videoIDs []uint64) []uint64 {
	fmt.Println("💬 正在创建评论...")
	ids := make([]uint64, 0, commentCount)
	for i := 0; i < commentCount; i++ {
		comment := model.Comment{
			VideoID: pick(videoIDs),
			OwnerID: pick(userIDs),
			Content: faker.Sentence(),
		}
		if err := db.Create(&comment).Error; err != nil {
			log.Fatalf("❌ 创建评论失败: %v", err)
		}
		ids = append(ids, comment.ID)
	}
	fmt.Printf("✅ 成功创建 %d 条评论!\n", len(ids))
	return ids
}

// --- 6. 创建推文 ---
func seedTweets(db *gorm.DB, userIDs []uint64) []uint64 {
	fmt.Println("🐦 正在创建推文...")
	ids := make([]uint64, 0, tweetCount)
	for i := 0; i < tweetCount; i++ {
		tweet := model.Tweet{OwnerID: pick(userIDs), Content: faker.Sentence()}
		if err := db.Create(&tweet).Error; err != nil {
			log.Fatalf("❌ 创建推文失败: %v", err)
		}
		ids = append(ids, tweet.ID)
	}
	fmt.Printf("✅ 成功创建 %d 条推文!\n", len(ids))
	return ids
}

// --- 7. 创建订阅关系 ---
// 不能订阅自己，重复的用OnConflict忽略
func seedSubscriptions(db *gorm.DB, userIDs []uint64) {
	fmt.Println("🔔 正在创建订阅关系...")
	for i := 0; i < subscribeRuns; i++ {
		subscriber, channel := pick(userIDs), pick(userIDs)
		if subscriber == channel {
			continue
		}
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subscriber_id"}, {Name: "channel_id"}},
			DoNothing: true,
		}).Create(&model.Subscription{SubscriberID: subscriber, ChannelID: channel})
	}
	fmt.Printf("✅ 成功创建(或尝试创建) %d 个订阅!\n", subscribeRuns)
}

// --- 8. 创建随机点赞 ---
// 使用GORM的 OnConflict 来避免因为重复点赞而报错
func seedLikes(db *gorm.DB, userIDs []uint64, targets map[model.LikeTargetType][]uint64) {
	fmt.Println("👍 正在创建随机点赞...")
	kinds := []model.LikeTargetType{model.LikeTargetVideo, model.LikeTargetComment, model.LikeTargetTweet}
	for i := 0; i < likeCount; i++ {
		kind := kinds[rand.IntN(len(kinds))]
		ids := targets[kind]
		if len(ids) == 0 {
			continue
		}
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "liked_by"}, {Name: "target_type"}, {Name: "target_id"}},
			DoNothing: true,
		}).Create(&model.Like{LikedBy: pick(userIDs), TargetType: kind, TargetID: pick(ids)})
	}
	fmt.Printf("✅ 成功创建(或尝试创建) %d 个随机点赞!\n", likeCount)
}

// --- 9. 创建歌单 ---
func seedPlaylists(db *gorm.DB, userIDs, videoIDs []uint64) {
	fmt.Println("📃 正在创建歌单...")
	for i := 0; i < playlistCount; i++ {
		playlist := model.Playlist{
			Name:        faker.Word() + " mix",
			Description: faker.Sentence(),
			OwnerID:     pick(userIDs),
		}
		if err := db.Create(&playlist).Error; err != nil {
			log.Fatalf("❌ 创建歌单失败: %v", err)
		}
		for j := 0; j < 1+rand.IntN(8); j++ {
			db.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&model.PlaylistVideo{PlaylistID: playlist.ID, VideoID: pick(videoIDs)})
		}
	}
	fmt.Printf("✅ 成功创建 %d 个歌单!\n", playlistCount)
}

// --- 10. 观看记录 ---
// 走仓库的RecordWatch，和线上写入方式一致
func seedWatchHistory(db *gorm.DB, userIDs, videoIDs []uint64) {
	fmt.Println("📺 正在创建观看记录...")
	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()
	now := time.Now()
	for i := 0; i < historyRuns; i++ {
		at := now.Add(-time.Duration(rand.IntN(30*24)) * time.Hour)
		if err := userRepo.RecordWatch(ctx, pick(userIDs), pick(videoIDs), at); err != nil {
			log.Fatalf("❌ 写入观看记录失败: %v", err)
		}
	}
	fmt.Printf("✅ 成功写入 %d 条观看记录!\n", historyRuns)
}
