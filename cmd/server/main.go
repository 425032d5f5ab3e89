package main

import (
	"log"
	"os"

	"Vidtube/internal/auth"
	"Vidtube/internal/config"
	"Vidtube/internal/data"
	"Vidtube/internal/handler"
	"Vidtube/internal/media"
	"Vidtube/internal/middleware"
	"Vidtube/internal/model"
	"Vidtube/internal/repository"
	"Vidtube/internal/router"
	"Vidtube/internal/service"
	"Vidtube/internal/validation"
	"Vidtube/pkg/logger"
	"Vidtube/pkg/rabbitmq"
	"Vidtube/pkg/redis"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	// 初始化logger
	logger.InitLogger(cfg.LogLevel, cfg.LogFile)
	gin.SetMode(cfg.GinMode)

	if err := validation.Register(); err != nil {
		logger.Log.Fatalf("注册校验规则失败: %v", err)
	}
	if err := os.MkdirAll(cfg.UploadTmpDir, 0o755); err != nil {
		logger.Log.Fatalf("无法创建上传临时目录: %v", err)
	}

	// 初始化Redis
	redisClient, err := redis.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Log.Fatalf("无法连接到Redis: %v", err)
	}
	logger.Log.Info("Redis连接成功")

	// 初始化RabbitMQ
	rabbitMQConn, err := rabbitmq.InitRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		logger.Log.Fatalf("无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close() // 确保程序退出时关闭连接
	logger.Log.Info("RabbitMQ连接成功")

	// 这个mysql包是gorm的第三方承包商，mysql.Open()后还是只能执行原始SQL语句，gorm.Open()后可以执行gorm的简化语句，但要注意性能
	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Log.Fatalf("无法连接到数据库: %v", err)
	}
	logger.Log.Info("数据库连接成功")
	// db.AutoMigrate(),没有这个表就创建,没有属性列则创建列,没有约束则增加约束;不会主动删除和修改
	if err := db.AutoMigrate(model.All()...); err != nil {
		logger.Log.Fatalf("数据库迁移失败: %v", err)
	}
	logger.Log.Info("数据库迁移成功")

	uploader, err := media.NewS3Uploader(cfg, media.NewFFProbe(cfg.FFProbePath))
	if err != nil {
		logger.Log.Fatalf("无法初始化媒体存储: %v", err)
	}
	janitor, err := service.NewMediaJanitor(rabbitMQConn)
	if err != nil {
		logger.Log.Fatalf("无法初始化媒体清理队列: %v", err)
	}
	tokens := auth.NewTokenManager(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db, redisClient)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	tweetRepo := repository.NewTweetRepository(db)

	uow := data.NewUnitOfWork(db, data.TransactionalRepositories{
		UserRepo:     userRepo,
		VideoRepo:    videoRepo,
		CommentRepo:  commentRepo,
		LikeRepo:     likeRepo,
		PlaylistRepo: playlistRepo,
		TweetRepo:    tweetRepo,
	})

	userService := service.NewUserService(userRepo, tokens, uploader, janitor)
	videoService := service.NewVideoService(videoRepo, uow, uploader, janitor)
	commentService := service.NewCommentService(commentRepo, videoRepo, uow)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo, uow)
	tweetService := service.NewTweetService(tweetRepo, uow)
	dashboardService := service.NewDashboardService(videoRepo)

	handlers := router.Handlers{
		User:         handler.NewUserHandler(userService, cfg.UploadTmpDir, cfg.CookieSecure),
		Video:        handler.NewVideoHandler(videoService, cfg.UploadTmpDir),
		Comment:      handler.NewCommentHandler(commentService),
		Like:         handler.NewLikeHandler(likeService),
		Subscription: handler.NewSubscriptionHandler(subscriptionService),
		Playlist:     handler.NewPlaylistHandler(playlistService),
		Tweet:        handler.NewTweetHandler(tweetService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
	}
	middlewares := router.Middlewares{
		Auth:         middleware.Auth(tokens, userRepo),
		OptionalAuth: middleware.OptionalAuth(tokens, userRepo),
		LoginLimiter: middleware.RateLimit(redisClient, "login", cfg.LoginRateLimit, cfg.LoginRateWindow),
	}

	r := router.SetupRouter(cfg, handlers, middlewares)
	logger.Log.WithField("port", cfg.ServerPort).Info("服务器启动")

	if err := r.Run(":" + cfg.ServerPort); err != nil {
		logger.Log.Fatalf("服务器启动失败: %v", err)
	}
}
