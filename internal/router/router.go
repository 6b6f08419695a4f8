package router

import (
	"net/http"

	"VidTube/internal/auth"
	"VidTube/internal/handler"
	"VidTube/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRouter 注册全部路由
// 公开接口不挂认证，详情/列表类挂可选认证，写操作一律强制认证
func SetupRouter(
	tokens *auth.TokenIssuer,
	userHandler *handler.UserHandler,
	videoHandler *handler.VideoHandler,
	commentHandler *handler.CommentHandler,
	likeHandler *handler.LikeHandler,
	tweetHandler *handler.TweetHandler,
	subscriptionHandler *handler.SubscriptionHandler,
) *gin.Engine {
	r := gin.Default()

	requireAuth := middleware.RequireAuth(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)

	v1 := r.Group("/api/v1")

	v1.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"statusCode": http.StatusOK,
			"data":       "OK",
			"message":    "服务运行正常",
			"success":    true,
		})
	})

	users := v1.Group("/users")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)
		users.POST("/refresh-token", userHandler.RefreshToken)

		users.POST("/logout", requireAuth, userHandler.Logout)
		users.POST("/change-password", requireAuth, userHandler.ChangePassword)
		users.GET("/current-user", requireAuth, userHandler.GetCurrentUser)
		users.PATCH("/update-account", requireAuth, userHandler.UpdateAccount)
		users.PATCH("/avatar", requireAuth, userHandler.UpdateAvatar)
		users.PATCH("/cover-image", requireAuth, userHandler.UpdateCoverImage)
		users.GET("/history", requireAuth, userHandler.GetWatchHistory)

		// 频道主页对外公开，登录用户能多看到isSubscribed
		users.GET("/c/:username", optionalAuth, userHandler.GetChannelProfile)
	}

	videos := v1.Group("/videos")
	{
		videos.GET("", requireAuth, videoHandler.GetFeed)
		videos.POST("", requireAuth, videoHandler.CreateVideo)
		videos.GET("/:videoId", optionalAuth, videoHandler.GetVideoByID)
		videos.PATCH("/:videoId", requireAuth, videoHandler.UpdateVideo)
	}

	comments := v1.Group("/comments")
	{
		comments.GET("/:videoId", optionalAuth, commentHandler.GetComments)
		comments.POST("/:videoId", requireAuth, commentHandler.CreateComment)
		comments.PATCH("/c/:commentId", requireAuth, commentHandler.UpdateComment)
		comments.DELETE("/c/:commentId", requireAuth, commentHandler.DeleteComment)
	}

	likes := v1.Group("/likes", requireAuth)
	{
		likes.POST("/toggle/v/:videoId", likeHandler.ToggleVideoLike)
		likes.POST("/toggle/c/:commentId", likeHandler.ToggleCommentLike)
		likes.POST("/toggle/t/:tweetId", likeHandler.ToggleTweetLike)
		likes.GET("/videos", likeHandler.GetLikedVideos)
	}

	tweets := v1.Group("/tweets", requireAuth)
	{
		tweets.POST("", tweetHandler.CreateTweet)
		tweets.GET("/user/:userId", tweetHandler.GetUserTweets)
	}

	subscriptions := v1.Group("/subscriptions", requireAuth)
	{
		subscriptions.POST("/c/:channelId", subscriptionHandler.ToggleSubscription)
	}

	return r
}
