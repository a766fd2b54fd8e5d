package dto

import "github.com/KarthikeyanSA369/LearnExa/internal/model"

// ── 成绩模块 DTO ──

// MarkEntry 提交的单条成绩
// StudentID 可省略；若填写必须与路径中的学生一致
type MarkEntry struct {
	StudentID *uint  `json:"studentId"`
	ExamName  string `json:"examName"`
	Subject   string `json:"subject"`
	Score     *int   `json:"score"`
	Total     *int   `json:"total"`
}

// MarkResponse 成绩信息
type MarkResponse struct {
	ID        uint   `json:"id"`
	StudentID uint   `json:"studentId"`
	ExamName  string `json:"examName"`
	Subject   string `json:"subject"`
	Score     int    `json:"score"`
	Total     int    `json:"total"`
}

// UpsertMarksResponse 成绩合并结果
type UpsertMarksResponse struct {
	Message  string `json:"message"`
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
}

// NewMarkResponses 批量转换成绩，空输入返回空切片而非 nil
func NewMarkResponses(marks []model.Mark) []MarkResponse {
	result := make([]MarkResponse, 0, len(marks))
	for _, m := range marks {
		result = append(result, MarkResponse{
			ID:        m.ID,
			StudentID: m.StudentID,
			ExamName:  m.ExamName,
			Subject:   m.Subject,
			Score:     m.Score,
			Total:     m.Total,
		})
	}
	return result
}
