package devserver

import (
	"net/http"
	"time"

	"pocbuilder/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter 组装本地模拟后端的路由
// 路径和响应字段对齐真实的多 Agent 构建服务，客户端可以离线联调
func NewRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CORS配置
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig := cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     cfg.CORS.AllowedMethods,
			AllowHeaders:     cfg.CORS.AllowedHeaders,
			ExposeHeaders:    cfg.CORS.ExposedHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
		}
		router.Use(cors.New(corsConfig))
	}

	h := newBuildHandler(cfg)

	// 健康检查
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})

	// API路由
	api := router.Group("/api")
	{
		api.GET("/models", h.ListModels)
		api.POST("/build-poc", h.BuildPOC)
	}

	return router
}
