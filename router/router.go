package router

import (
	"time"

	"contenthub/controllers"
	"contenthub/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter 装配中间件与路由表
func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
		}

		api.GET("/articles", controllers.GetArticles)
		api.GET("/articles/:id", controllers.GetArticleByID)
		api.GET("/articles/:id/comments", controllers.GetComments)
		api.GET("/users/:id/stats", controllers.GetUserStats)
		api.GET("/users/:id/followers", controllers.GetFollowers)
		api.GET("/users/:id/following", controllers.GetFollowing)
		api.GET("/leaderboard/articles", controllers.GetTopArticles)
		api.GET("/leaderboard/reputation", controllers.GetReputationLeaderboard)

		authed := api.Group("", middlewares.AuthMiddleware())
		{
			authed.POST("/articles", controllers.CreateArticle)
			authed.DELETE("/articles/:id", controllers.DeleteArticle)
			authed.POST("/articles/:id/comments", controllers.CreateComment)

			authed.POST("/targets/:kind/:id/toggle/:relation", controllers.ToggleRelation)
			authed.GET("/targets/:kind/:id/state/:relation", controllers.GetRelationState)
			authed.GET("/users/me/bookmarks", controllers.GetMyBookmarks)

			authed.GET("/notifications", controllers.GetNotifications)
			authed.PUT("/notifications/:id/read", controllers.MarkNotificationRead)

			authed.POST("/users/:id/follow", controllers.FollowUser)
			authed.DELETE("/users/:id/follow", controllers.UnfollowUser)
		}
	}

	return r
}
