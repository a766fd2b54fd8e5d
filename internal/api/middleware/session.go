package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KarthikeyanSA369/LearnExa/internal/model"
	"github.com/KarthikeyanSA369/LearnExa/internal/service"
	"github.com/KarthikeyanSA369/LearnExa/pkg/response"
)

// PrincipalKey gin.Context 中保存已认证身份的键
const PrincipalKey = "principal"

// SessionAuth 会话认证中间件
// 先读 Authorization: Bearer <token>，再读会话 Cookie；
// 前一个令牌的会话无效时继续尝试下一个，结果注入上下文
func SessionAuth(auth service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokens := ExtractTokens(c, cookieName)
		if len(tokens) == 0 {
			response.Unauthorized(c, 10002, "未登录")
			c.Abort()
			return
		}

		var (
			p   *service.Principal
			err error
		)
		for _, token := range tokens {
			p, err = auth.Authenticate(c.Request.Context(), token)
			if !errors.Is(err, service.ErrUnauthorized) {
				break
			}
		}
		if err != nil {
			switch {
			case errors.Is(err, service.ErrAccountDeactivated):
				response.Forbidden(c, 11003, "账号已停用")
			case errors.Is(err, service.ErrUnauthorized):
				response.Unauthorized(c, 10002, "会话无效或已过期")
			default:
				_ = c.Error(err)
				response.InternalError(c)
			}
			c.Abort()
			return
		}

		c.Set(PrincipalKey, p)
		c.Next()
	}
}

// RoleAuth 角色权限中间件，须在 SessionAuth 之后使用
func RoleAuth(allowed ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := service.Authorize(GetPrincipal(c), allowed...)
		switch {
		case err == nil:
			c.Next()
			return
		case errors.Is(err, service.ErrUnauthorized):
			response.Unauthorized(c, 10002, "未登录")
		default:
			response.Forbidden(c, 10003, "无权限访问")
		}
		c.Abort()
	}
}

// GetPrincipal 读取当前请求的已认证身份，未认证时返回 nil
func GetPrincipal(c *gin.Context) *service.Principal {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*service.Principal)
	return p
}

// ExtractTokens 按优先级返回请求携带的令牌：Bearer 头在前，Cookie 在后
func ExtractTokens(c *gin.Context, cookieName string) []string {
	var tokens []string
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if t := strings.TrimSpace(parts[1]); t != "" {
			tokens = append(tokens, t)
		}
	}
	if v, err := c.Cookie(cookieName); err == nil && v != "" && (len(tokens) == 0 || tokens[0] != v) {
		tokens = append(tokens, v)
	}
	return tokens
}
