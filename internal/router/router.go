package router

import (
	"time"

	"Vidtube/internal/config"
	"Vidtube/internal/handler"
	"Vidtube/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers 路由需要的全部处理器
type Handlers struct {
	User         handler.UserHandler
	Video        handler.VideoHandler
	Comment      handler.CommentHandler
	Like         handler.LikeHandler
	Subscription handler.SubscriptionHandler
	Playlist     handler.PlaylistHandler
	Tweet        handler.TweetHandler
	Dashboard    handler.DashboardHandler
}

// Middlewares 由main组装好传进来，路由只负责挂载
type Middlewares struct {
	Auth         gin.HandlerFunc
	OptionalAuth gin.HandlerFunc
	LoginLimiter gin.HandlerFunc
}

// 全局中间件顺序：1、panic恢复 2、请求日志 3、统一错误输出 4、CORS 5、请求体大小限制
func SetupRouter(cfg *config.Config, h Handlers, mw Middlewares) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.MaxMultipartMemory = 32 << 20

	r.Use(
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.BodyLimit(cfg.MaxUploadBytes),
	)
	r.NoRoute(middleware.NoRoute)
	r.NoMethod(middleware.NoMethod)

	r.GET("/healthcheck", handler.Healthcheck)

	apiV1 := r.Group("/api/v1")
	apiV1.GET("/healthcheck", handler.Healthcheck)

	users := apiV1.Group("/users")
	{
		users.POST("/register", h.User.Register)
		users.POST("/login", mw.LoginLimiter, h.User.Login)
		users.POST("/refresh-token", h.User.RefreshToken)
		users.GET("/c/:username", mw.OptionalAuth, h.User.ChannelProfile)

		users.POST("/logout", mw.Auth, h.User.Logout)
		users.POST("/change-password", mw.Auth, h.User.ChangePassword)
		users.GET("/current-user", mw.Auth, h.User.CurrentUser)
		users.PATCH("/update-account", mw.Auth, h.User.UpdateAccount)
		users.PATCH("/avatar", mw.Auth, h.User.UpdateAvatar)
		users.PATCH("/cover-image", mw.Auth, h.User.UpdateCover)
		users.GET("/history", mw.Auth, h.User.WatchHistory)
	}

	videos := apiV1.Group("/videos")
	{
		videos.GET("", mw.OptionalAuth, h.Video.ListVideos)
		videos.GET("/:videoId", mw.OptionalAuth, h.Video.GetVideoByID)

		videos.POST("", mw.Auth, h.Video.PublishVideo)
		videos.PATCH("/:videoId", mw.Auth, h.Video.UpdateVideo)
		videos.DELETE("/:videoId", mw.Auth, h.Video.DeleteVideo)
		videos.PATCH("/:videoId/toggle-publish", mw.Auth, h.Video.TogglePublish)
	}

	comments := apiV1.Group("/comments")
	{
		comments.GET("/:videoId", mw.OptionalAuth, h.Comment.GetComments)
		comments.POST("/:videoId", mw.Auth, h.Comment.CreateComment)
		comments.PATCH("/c/:commentId", mw.Auth, h.Comment.UpdateComment)
		comments.DELETE("/c/:commentId", mw.Auth, h.Comment.DeleteComment)
	}

	likes := apiV1.Group("/likes", mw.Auth)
	{
		likes.POST("/toggle/v/:videoId", h.Like.ToggleVideoLike)
		likes.POST("/toggle/c/:commentId", h.Like.ToggleCommentLike)
		likes.POST("/toggle/t/:tweetId", h.Like.ToggleTweetLike)
		likes.GET("/videos", h.Like.LikedVideos)
	}

	subscriptions := apiV1.Group("/subscriptions")
	{
		subscriptions.POST("/c/:channelId", mw.Auth, h.Subscription.ToggleSubscription)
		subscriptions.GET("/c/:channelId", mw.OptionalAuth, h.Subscription.ChannelSubscribers)
		subscriptions.GET("/u/:subscriberId", h.Subscription.SubscribedChannels)
	}

	playlists := apiV1.Group("/playlist")
	{
		playlists.POST("", mw.Auth, h.Playlist.CreatePlaylist)
		playlists.GET("/user/:userId", h.Playlist.UserPlaylists)
		playlists.GET("/:playlistId", mw.OptionalAuth, h.Playlist.GetPlaylist)
		playlists.PATCH("/:playlistId", mw.Auth, h.Playlist.UpdatePlaylist)
		playlists.DELETE("/:playlistId", mw.Auth, h.Playlist.DeletePlaylist)
		playlists.PATCH("/add/:videoId/:playlistId", mw.Auth, h.Playlist.AddVideo)
		playlists.PATCH("/remove/:videoId/:playlistId", mw.Auth, h.Playlist.RemoveVideo)
	}

	tweets := apiV1.Group("/tweets")
	{
		tweets.POST("", mw.Auth, h.Tweet.CreateTweet)
		tweets.GET("/user/:userId", h.Tweet.UserTweets)
		tweets.PATCH("/:tweetId", mw.Auth, h.Tweet.UpdateTweet)
		tweets.DELETE("/:tweetId", mw.Auth, h.Tweet.DeleteTweet)
	}

	dashboard := apiV1.Group("/dashboard", mw.Auth)
	{
		dashboard.GET("/stats", h.Dashboard.ChannelStats)
		dashboard.GET("/videos", h.Dashboard.ChannelVideos)
	}

	return r
}
