package dto

import "github.com/KarthikeyanSA369/LearnExa/internal/model"

// ── 学生模块 DTO ──

// StudentResponse 学生信息
type StudentResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Class          string `json:"class"`
	Section        string `json:"section"`
	RollNumber     string `json:"rollNumber"`
	RegisterNumber string `json:"registerNumber"`
	ParentName     string `json:"parentName"`
	Address        string `json:"address"`
	DOB            string `json:"dob"`
}

// NewStudentResponse 将 model.Student 转换为 StudentResponse
func NewStudentResponse(s *model.Student) *StudentResponse {
	return &StudentResponse{
		ID:             s.ID,
		Name:           s.Name,
		Class:          s.Class,
		Section:        s.Section,
		RollNumber:     s.RollNumber,
		RegisterNumber: s.RegisterNumber,
		ParentName:     s.ParentName,
		Address:        s.Address,
		DOB:            s.DOB,
	}
}

// ImportStudentsRequest 名册文本导入请求
// 仅拒绝缺失字段，空字符串按空名册处理
type ImportStudentsRequest struct {
	CSVContent *string `json:"csvContent" binding:"required"`
}

// ImportStudentsResponse 名册导入结果
type ImportStudentsResponse struct {
	Count   int `json:"count"`   // 实际新建的学生数
	Skipped int `json:"skipped"` // 因重复而跳过的行数
}

// StudentDashboardResponse 学生本人数据（GET /api/student/me）
type StudentDashboardResponse struct {
	Student     *StudentResponse     `json:"student"`
	Marks       []MarkResponse       `json:"marks"`
	Suggestions []SuggestionResponse `json:"suggestions"`
	Stats       *StatsResponse       `json:"stats"`
}
