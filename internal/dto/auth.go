package dto

import "github.com/KarthikeyanSA369/LearnExa/internal/model"

// ── 认证模块 DTO ──

// LoginRequest 登录请求
// admin / teacher 使用 username + password；student 使用 name + class + dob
type LoginRequest struct {
	Role     string `json:"role"     binding:"required,oneof=admin teacher student"`
	Username string `json:"username" binding:"omitempty,max=64"`
	Password string `json:"password" binding:"omitempty,max=72"`
	Name     string `json:"name"     binding:"omitempty,max=100"`
	Class    string `json:"class"    binding:"omitempty,max=50"`
	DOB      string `json:"dob"      binding:"omitempty,max=10"`
}

// LoginResponse 登录成功响应
// User 为 UserResponse（教职工）或 StudentResponse（学生）
type LoginResponse struct {
	User      interface{} `json:"user"`
	Role      model.Role  `json:"role"`
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expiresIn"` // 秒
}

// CurrentIdentityResponse 当前登录身份（GET /api/auth/me）
type CurrentIdentityResponse struct {
	User interface{} `json:"user"`
	Role model.Role  `json:"role"`
}
