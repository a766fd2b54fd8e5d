package service

import (
	"errors"

	"github.com/KarthikeyanSA369/LearnExa/internal/model"
)

// ── 访问控制错误 ──

var (
	ErrUnauthorized       = errors.New("未登录或会话已失效")
	ErrForbidden          = errors.New("无权访问")
	ErrAccountDeactivated = errors.New("账号已停用")
)

// Principal 当前请求的已认证身份
// 教职工身份 User 非空，学生身份 Student 非空
type Principal struct {
	SessionID string
	Role      model.Role
	User      *model.User
	Student   *model.Student
}

// SubjectID 返回身份对应实体的 ID
func (p *Principal) SubjectID() uint {
	switch {
	case p.User != nil:
		return p.User.ID
	case p.Student != nil:
		return p.Student.ID
	default:
		return 0
	}
}

// Authorize 访问守卫：纯函数，不产生副作用
// p 为 nil 表示未认证；allowed 为空表示任意已认证角色均可
func Authorize(p *Principal, allowed ...model.Role) error {
	if p == nil {
		return ErrUnauthorized
	}
	if len(allowed) == 0 {
		return nil
	}
	for _, r := range allowed {
		if p.Role == r {
			return nil
		}
	}
	return ErrForbidden
}
