package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/KarthikeyanSA369/LearnExa/internal/dto"
	"github.com/KarthikeyanSA369/LearnExa/internal/service"
	"github.com/KarthikeyanSA369/LearnExa/pkg/response"
)

// SuggestionHandler 教师评语
type SuggestionHandler struct {
	studentSvc    service.StudentService
	suggestionSvc service.SuggestionService
}

// NewSuggestionHandler 创建 SuggestionHandler
func NewSuggestionHandler(studentSvc service.StudentService, suggestionSvc service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{studentSvc: studentSvc, suggestionSvc: suggestionSvc}
}

// List 学生评语
// GET /api/students/:id/suggestions
func (h *SuggestionHandler) List(c *gin.Context) {
	student, ok := loadScopedStudent(c, h.studentSvc)
	if !ok {
		return
	}

	list, err := h.suggestionSvc.List(c.Request.Context(), student.ID)
	if err != nil {
		handleStudentError(c, err)
		return
	}
	response.OK(c, list)
}

// Create 添加评语
// POST /api/students/:id/suggestions
func (h *SuggestionHandler) Create(c *gin.Context) {
	teacher, ok := MustGetTeacher(c)
	if !ok {
		return
	}
	student, ok := loadScopedStudent(c, h.studentSvc)
	if !ok {
		return
	}

	var req dto.CreateSuggestionRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.suggestionSvc.Create(c.Request.Context(), student.ID, teacher.ID, &req)
	if err != nil {
		if errors.Is(err, service.ErrSuggestionEmpty) {
			response.BadRequest(c, 20401, "评语内容不能为空")
			return
		}
		handleStudentError(c, err)
		return
	}
	response.Created(c, result)
}
