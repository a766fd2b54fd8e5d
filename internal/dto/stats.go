package dto

// ── 成绩统计 DTO ──

// StatsResponse 学生成绩统计
type StatsResponse struct {
	Exams    []ExamStat    `json:"exams"`
	Overall  float64       `json:"overall"`
	Subjects []SubjectStat `json:"subjects"`
	Rank     string        `json:"rank"`
}

// ExamStat 单场考试汇总：所有科目得分之和 / 满分之和
type ExamStat struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

// SubjectStat 单科汇总
type SubjectStat struct {
	Name   string `json:"name"`
	Avg    int    `json:"avg"`
	Status string `json:"status"` // strong | average | weak
}
