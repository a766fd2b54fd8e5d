package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KarthikeyanSA369/LearnExa/config"
	"github.com/KarthikeyanSA369/LearnExa/internal/api/middleware"
	"github.com/KarthikeyanSA369/LearnExa/internal/dto"
	"github.com/KarthikeyanSA369/LearnExa/internal/model"
	"github.com/KarthikeyanSA369/LearnExa/internal/service"
	"github.com/KarthikeyanSA369/LearnExa/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	cfg     *config.AuthConfig
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, cfg *config.AuthConfig) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, cfg: cfg}
}

// Login 登录并建立会话
// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLoginRequest):
			response.BadRequest(c, 10001, "参数校验失败")
		case errors.Is(err, service.ErrMissingCredentials):
			response.BadRequest(c, 11002, "缺少登录凭据")
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, 11001, "用户名或密码错误")
		case errors.Is(err, service.ErrStudentNotFound):
			response.Unauthorized(c, 11004, "学生信息不匹配")
		case errors.Is(err, service.ErrAccountDeactivated):
			response.Forbidden(c, 11003, "账号已停用")
		default:
			_ = c.Error(err)
			response.InternalError(c)
		}
		return
	}

	h.setSessionCookie(c, result.Token, result.ExpiresIn)
	response.OK(c, result)
}

// Logout 销毁服务端会话并清除 Cookie
// 不经过 SessionAuth，停用账号也能销毁自己的会话
// POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	tokens := middleware.ExtractTokens(c, h.cfg.Cookie.Name)
	h.setSessionCookie(c, "", -1)
	if len(tokens) == 0 {
		response.Unauthorized(c, 10002, "未登录")
		return
	}

	loggedOut := false
	for _, token := range tokens {
		err := h.authSvc.Logout(c.Request.Context(), token)
		switch {
		case err == nil:
			loggedOut = true
		case errors.Is(err, service.ErrUnauthorized):
			// 无效令牌跳过
		default:
			_ = c.Error(err)
			response.InternalError(c)
			return
		}
	}
	if !loggedOut {
		response.Unauthorized(c, 10002, "会话无效或已过期")
		return
	}

	response.Message(c, "已退出登录")
}

// Me 当前登录身份
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var user interface{}
	switch p.Role {
	case model.RoleAdmin, model.RoleTeacher:
		user = dto.NewUserResponse(p.User)
	case model.RoleStudent:
		user = dto.NewStudentResponse(p.Student)
	default:
		response.Unauthorized(c, 10002, "未认证")
		return
	}

	response.OK(c, dto.CurrentIdentityResponse{User: user, Role: p.Role})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(parseSameSite(h.cfg.Cookie.SameSite))
	c.SetCookie(h.cfg.Cookie.Name, value, maxAge, "/", h.cfg.Cookie.Domain, h.cfg.Cookie.Secure, true)
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
