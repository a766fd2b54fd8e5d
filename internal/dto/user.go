package dto

import "github.com/KarthikeyanSA369/LearnExa/internal/model"

// ── 教师账号管理 DTO ──

// CreateTeacherRequest 创建教师账号请求
type CreateTeacherRequest struct {
	Username        string  `json:"username"        binding:"required,min=3,max=64"`
	Password        string  `json:"password"        binding:"required,min=6,max=72"`
	Name            string  `json:"name"            binding:"required,max=100"`
	AssignedClass   *string `json:"assignedClass"   binding:"omitempty,max=50"`
	AssignedSection *string `json:"assignedSection" binding:"omitempty,max=20"`
	IsActive        *bool   `json:"isActive"`
}

// UpdateTeacherRequest 更新教师账号请求（仅更新非 nil 字段）
type UpdateTeacherRequest struct {
	Name            *string `json:"name"            binding:"omitempty,min=1,max=100"`
	Password        *string `json:"password"        binding:"omitempty,min=6,max=72"`
	AssignedClass   *string `json:"assignedClass"   binding:"omitempty,max=50"`
	AssignedSection *string `json:"assignedSection" binding:"omitempty,max=20"`
	IsActive        *bool   `json:"isActive"`
}

// UserResponse 教职工信息响应（不含密码）
type UserResponse struct {
	ID              uint       `json:"id"`
	Username        string     `json:"username"`
	Role            model.Role `json:"role"`
	Name            string     `json:"name"`
	AssignedClass   *string    `json:"assignedClass"`
	AssignedSection *string    `json:"assignedSection"`
	IsActive        bool       `json:"isActive"`
}

// NewUserResponse 将 model.User 转换为 UserResponse
func NewUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Role:            u.Role,
		Name:            u.Name,
		AssignedClass:   u.AssignedClass,
		AssignedSection: u.AssignedSection,
		IsActive:        u.IsActive,
	}
}
