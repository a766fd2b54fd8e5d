package dto

import (
	"time"

	"github.com/KarthikeyanSA369/LearnExa/internal/model"
)

// ── 评语模块 DTO ──

// CreateSuggestionRequest 新增评语请求
type CreateSuggestionRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// SuggestionResponse 评语信息
type SuggestionResponse struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"studentId"`
	TeacherID uint      `json:"teacherId"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
}

// NewSuggestionResponse 将 model.Suggestion 转换为 SuggestionResponse
func NewSuggestionResponse(s *model.Suggestion) *SuggestionResponse {
	return &SuggestionResponse{
		ID:        s.ID,
		StudentID: s.StudentID,
		TeacherID: s.TeacherID,
		Content:   s.Content,
		Date:      s.Date,
	}
}

// NewSuggestionResponses 批量转换评语
func NewSuggestionResponses(list []model.Suggestion) []SuggestionResponse {
	result := make([]SuggestionResponse, 0, len(list))
	for i := range list {
		result = append(result, *NewSuggestionResponse(&list[i]))
	}
	return result
}
