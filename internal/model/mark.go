package model

// Mark 考试成绩：对应 marks
// (StudentID, ExamName, Subject) 为自然键，ID 仅作代理主键
type Mark struct {
	BaseModel
	StudentID uint   `gorm:"not null;uniqueIndex:uk_marks_natural,priority:1"                   json:"studentId"`
	ExamName  string `gorm:"type:varchar(100);not null;uniqueIndex:uk_marks_natural,priority:2" json:"examName"`
	Subject   string `gorm:"type:varchar(100);not null;uniqueIndex:uk_marks_natural,priority:3" json:"subject"`
	Score     int    `gorm:"not null"                                                           json:"score"`
	Total     int    `gorm:"not null"                                                           json:"total"`
}

// TableName 指定表名
func (Mark) TableName() string { return "marks" }

// MarkKey 成绩自然键（学生维度内）
type MarkKey struct {
	ExamName string
	Subject  string
}

// Key 返回成绩在所属学生内的自然键
func (m *Mark) Key() MarkKey {
	return MarkKey{ExamName: m.ExamName, Subject: m.Subject}
}
