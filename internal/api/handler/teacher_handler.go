package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/KarthikeyanSA369/LearnExa/internal/dto"
	"github.com/KarthikeyanSA369/LearnExa/internal/service"
	"github.com/KarthikeyanSA369/LearnExa/pkg/response"
)

// TeacherHandler 教师账号管理（管理员）
type TeacherHandler struct {
	teacherSvc service.TeacherService
}

// NewTeacherHandler 创建 TeacherHandler
func NewTeacherHandler(teacherSvc service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherSvc: teacherSvc}
}

// List 教师列表
// GET /api/admin/teachers
func (h *TeacherHandler) List(c *gin.Context) {
	list, err := h.teacherSvc.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, list)
}

// Create 创建教师账号
// POST /api/admin/teachers
func (h *TeacherHandler) Create(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.teacherSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, result)
}

// Update 更新教师账号
// PUT /api/admin/teachers/:id
func (h *TeacherHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTeacherRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.teacherSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *TeacherHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 20101, "教师不存在")
	case errors.Is(err, service.ErrUsernameTaken):
		response.Conflict(c, 20102, "用户名已被占用")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
