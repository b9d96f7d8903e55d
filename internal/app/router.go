package app

import (
	"devlingo_backend/docs"
	"devlingo_backend/internal/config"
	"devlingo_backend/internal/middleware"
	"devlingo_backend/internal/model"
	"devlingo_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. Public routes, no login required
	a.registerPublicRoutes(router, c)

	// 2. Practice routes: guests may play, logged-in users get progress
	a.registerPracticeRoutes(router, c, repos)

	// 3. Authorized routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 4. Admin routes
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		public.GET("/leaderboard", c.leaderboard.Top)
	}
}

func (a *App) registerPracticeRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	practice := router.Group("/api/practice")
	practice.Use(middleware.TryAuthMiddleware(a.Config), middleware.ActivityMiddleware(repos.user))
	{
		practice.GET("/tasks", c.practice.ListTasks)
		practice.GET("/tasks/:taskId", c.practice.GetTask)
		practice.POST("/tasks/:taskId/submit", c.practice.Submit)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)

	// progress and stats
	rg.GET("/progress", c.progress.Completed)
	rg.GET("/progress/activity", c.progress.Activity)
	rg.GET("/progress/stats", c.progress.Stats)

	rg.GET("/leaderboard/me", c.leaderboard.MyRank)

	// personal dictionary
	rg.GET("/notes", c.note.List)
	rg.POST("/notes", c.note.Create)
	rg.DELETE("/notes/:id", c.note.Delete)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/tasks", c.task.List)
		admin.POST("/tasks", c.task.Create)
		admin.PUT("/tasks/:id", c.task.Update)
		admin.DELETE("/tasks/:id", c.task.Delete)
	}
}
