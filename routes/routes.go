// File: /routes/routes.go
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"socialnet-api/config"
	"socialnet-api/controllers"
	"socialnet-api/middleware"
	"socialnet-api/services"
)

func SetupCORS(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, sessions services.SessionStore, emailService *services.EmailService) {
	// Controllers
	authController := controllers.NewAuthController(db, sessions, emailService, cfg)
	userController := controllers.NewUserController(db, cfg)
	postController := controllers.NewPostController(db, cfg)
	likeController := controllers.NewLikeController(db)
	friendController := controllers.NewFriendController(db)

	r.MaxMultipartMemory = cfg.MaxUploadSize

	// Every route sees the resolved identity (or anonymity).
	r.Use(middleware.IdentityResolver(sessions))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "healthy"})
	})

	// Uploaded files are served statically; entity records reference them
	// by these paths.
	r.Static("/uploads", cfg.UploadDir)

	auth := r.Group("/auth")
	auth.Use(middleware.RateLimit(120, 30))
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/me", authController.Me)
		auth.POST("/logout", authController.Logout)
		auth.POST("/update-password", middleware.RequireAuth(), authController.UpdatePassword)
	}

	posts := r.Group("/posts")
	{
		posts.GET("", postController.GetPosts)
		posts.POST("/create", middleware.RequireAuth(), postController.CreatePost)
		posts.PUT("/update/:id", middleware.RequireAuth(), postController.UpdatePost)
		posts.DELETE("/delete/:id", middleware.RequireAuth(), postController.DeletePost)
	}

	r.POST("/likes", middleware.RequireAuth(), likeController.ToggleLike)

	friends := r.Group("/friends")
	friends.Use(middleware.RequireAuth())
	{
		friends.GET("", friendController.GetFriends)
		friends.POST("/request", friendController.SendRequest)
		friends.POST("/accept", friendController.AcceptRequest)
	}

	r.POST("/user/update", middleware.RequireAuth(), userController.UpdateProfile)
}
