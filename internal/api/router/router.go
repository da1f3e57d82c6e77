package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TheBadshahKid/unolo-field-force-tracker/config"
	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/api/handler"
	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/api/middleware"
	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/model"
	"github.com/TheBadshahKid/unolo-field-force-tracker/pkg/jwt"
	"github.com/TheBadshahKid/unolo-field-force-tracker/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎；rdb 可为 nil
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// 认证模块（无需认证）
		auth := api.Group("/auth")
		{
			auth.POST("/login",
				middleware.RateLimit(rdb, cfg.Server.LoginLimit, cfg.Server.LoginWindow, logger),
				h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 签到模块
			checkin := authorized.Group("/checkin")
			{
				checkin.GET("/clients", h.Checkin.ListClients)
				checkin.POST("", h.Checkin.CheckIn)
				checkin.PUT("/checkout", h.Checkin.CheckOut)
				checkin.GET("/active", h.Checkin.Active)
				checkin.GET("/history", h.Checkin.History)
			}

			// 报表模块（仅经理）
			reports := authorized.Group("/reports")
			reports.Use(middleware.RoleAuth(model.RoleManager))
			{
				reports.GET("/daily-summary", h.Report.DailySummary)
				reports.GET("/daily-summary/export", h.Export.ExportDailySummary)
			}
		}
	}

	return r
}
