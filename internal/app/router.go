package app

import (
	"brainink_backend/docs"
	"brainink_backend/internal/config"
	"brainink_backend/internal/middleware"
	"brainink_backend/internal/model"
	"brainink_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		// 学生/通用 授权接口
		a.registerStudentRoutes(authGroup, c)

		// 教师相关接口
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// 课程目录
	rg.GET("/courses", c.course.ListCourses)
	rg.GET("/courses/:id", c.course.GetCourse)
	rg.GET("/lessons/:id", c.course.GetLesson)

	// 作业（带门控状态）
	rg.GET("/courses/:id/assignments", c.assignment.ListForCourse)
	rg.GET("/assignments/:id", c.assignment.GetAssignment)
	rg.POST("/assignments/:id/submit", c.assignment.Submit)
	rg.GET("/assignments/:id/grade", c.assignment.GradeDetail)

	// 模块学习
	rg.POST("/blocks/:id/study/start", c.study.StartSession)
	rg.POST("/blocks/:id/study/complete", c.study.CompleteSession)

	// 进度
	rg.GET("/progress/courses/:id", c.progress.CourseProgress)
	rg.GET("/progress/weekly", c.progress.WeeklyActivity)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/courses", c.course.CreateCourse)
		teacher.POST("/courses/:id/blocks", c.course.CreateBlock)
		teacher.POST("/blocks/:id/lessons", c.course.CreateLesson)
		teacher.POST("/assignments", c.assignment.CreateDefinition)
		teacher.POST("/assignments/assign", c.assignment.Assign)
	}
}
