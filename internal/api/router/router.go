package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KarthikeyanSA369/LearnExa/config"
	"github.com/KarthikeyanSA369/LearnExa/internal/api/handler"
	"github.com/KarthikeyanSA369/LearnExa/internal/api/middleware"
	"github.com/KarthikeyanSA369/LearnExa/internal/model"
	"github.com/KarthikeyanSA369/LearnExa/internal/service"
	"github.com/KarthikeyanSA369/LearnExa/pkg/redis"
)

// HealthChecker 健康检查依赖
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时登录限流降级放行
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	auth service.AuthService,
	db HealthChecker,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// 登录（无需认证，按 IP 限流）
		api.POST("/login",
			middleware.RateLimit(rdb, "login", cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow, logger),
			h.Auth.Login,
		)
		// 登出只按令牌删除会话，不重新加载实体
		api.POST("/logout", h.Auth.Logout)

		authorized := api.Group("")
		authorized.Use(middleware.SessionAuth(auth, cfg.Auth.Cookie.Name))
		{
			authorized.GET("/auth/me", h.Auth.Me)

			// 管理员：教师账号
			admin := authorized.Group("/admin", middleware.RoleAuth(model.RoleAdmin))
			{
				admin.GET("/teachers", h.Teacher.List)
				admin.POST("/teachers", h.Teacher.Create)
				admin.PUT("/teachers/:id", h.Teacher.Update)
			}

			// 教师：名册
			teacher := authorized.Group("/teacher", middleware.RoleAuth(model.RoleTeacher))
			{
				teacher.GET("/students", h.Student.Roster)
				teacher.POST("/students/import", h.Student.Import)
			}

			// 教师：单个学生的成绩、评语、报告（Handler 层校验班级范围）
			students := authorized.Group("/students/:id", middleware.RoleAuth(model.RoleTeacher))
			{
				students.GET("/marks", h.Mark.List)
				students.POST("/marks", h.Mark.Upsert)
				students.GET("/stats", h.Mark.Stats)
				students.GET("/suggestions", h.Suggestion.List)
				students.POST("/suggestions", h.Suggestion.Create)
				students.GET("/report", h.Export.Report)
			}

			// 学生本人
			authorized.GET("/student/me", middleware.RoleAuth(model.RoleStudent), h.Student.Me)
		}
	}

	return r
}
