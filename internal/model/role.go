package model

import "fmt"

// Role 登录角色
// admin / teacher 对应 users 表，student 对应 students 表
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole 将字符串解析为受支持的角色
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// IsStaff 是否为账号密码登录的教职工角色
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleTeacher
}

func (r Role) String() string { return string(r) }
