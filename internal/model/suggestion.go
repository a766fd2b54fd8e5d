package model

import "time"

// Suggestion 教师评语：对应 suggestions，只追加不修改
type Suggestion struct {
	BaseModel
	StudentID uint      `gorm:"not null;index:idx_suggestions_student,priority:1" json:"studentId"`
	TeacherID uint      `gorm:"not null"                                          json:"teacherId"`
	Content   string    `gorm:"type:text;not null"                                json:"content"`
	Date      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_suggestions_student,priority:2" json:"date"`
}

// TableName 指定表名
func (Suggestion) TableName() string { return "suggestions" }
