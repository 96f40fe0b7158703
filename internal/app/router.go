package app

import (
	"eduagent_backend/docs"
	"eduagent_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		// 系统
		api.GET("/health", c.system.HealthCheck)
		api.GET("/stats", c.system.Stats)

		// 试卷
		api.POST("/paper/upload", c.paper.Upload)
		api.POST("/paper/analyse", c.paper.Analyse)
		api.GET("/paper/pdf/:filename", c.paper.DownloadPDF)

		// 评分
		api.POST("/answers/upload", c.grading.UploadAnswers)
		api.POST("/grade", c.grading.Grade)

		// 学习
		api.POST("/learn", c.learning.Learn)

		// 评测
		api.GET("/evaluate/baseline", c.evaluation.Baseline)

		// 会话
		api.GET("/session/:id", c.session.GetSession)
	}
}
