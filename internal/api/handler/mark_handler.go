package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/KarthikeyanSA369/LearnExa/internal/dto"
	"github.com/KarthikeyanSA369/LearnExa/internal/service"
	"github.com/KarthikeyanSA369/LearnExa/pkg/response"
)

// MarkHandler 成绩录入与统计（教师）
type MarkHandler struct {
	studentSvc service.StudentService
	markSvc    service.MarkService
}

// NewMarkHandler 创建 MarkHandler
func NewMarkHandler(studentSvc service.StudentService, markSvc service.MarkService) *MarkHandler {
	return &MarkHandler{studentSvc: studentSvc, markSvc: markSvc}
}

// List 学生成绩
// GET /api/students/:id/marks
func (h *MarkHandler) List(c *gin.Context) {
	student, ok := loadScopedStudent(c, h.studentSvc)
	if !ok {
		return
	}

	marks, err := h.markSvc.List(c.Request.Context(), student.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, marks)
}

// Upsert 合并提交的成绩，请求体为成绩数组
// POST /api/students/:id/marks
func (h *MarkHandler) Upsert(c *gin.Context) {
	student, ok := loadScopedStudent(c, h.studentSvc)
	if !ok {
		return
	}

	var entries []dto.MarkEntry
	if !bindJSON(c, &entries) {
		return
	}

	result, err := h.markSvc.Upsert(c.Request.Context(), student.ID, entries)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// Stats 学生成绩统计
// GET /api/students/:id/stats
func (h *MarkHandler) Stats(c *gin.Context) {
	student, ok := loadScopedStudent(c, h.studentSvc)
	if !ok {
		return
	}

	stats, err := h.markSvc.Stats(c.Request.Context(), student.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *MarkHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidMarks):
		response.BadRequest(c, 20301, err.Error())
	default:
		handleStudentError(c, err)
	}
}
