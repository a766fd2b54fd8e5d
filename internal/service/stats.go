package service

import (
	"math"

	"github.com/KarthikeyanSA369/LearnExa/internal/dto"
	"github.com/KarthikeyanSA369/LearnExa/internal/model"
)

// 科目状态阈值（基于未取整的平均分）
const (
	strongThreshold  = 80
	averageThreshold = 60
)

// 综合评级
const (
	RankTopPerformer = "Top Performer"
	RankExcellent    = "Excellent"
	RankImproving    = "Improving"
	RankBeginner     = "Beginner"
)

// roundHalfUp 四舍五入到整数，仅用于非负输入
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

type examAgg struct {
	name         string
	score, total int
}

type subjectAgg struct {
	name  string
	sum   int
	count int
}

// ComputeStats 由成绩集合计算统计结果
// 纯函数：考试与科目均按首次出现顺序输出；空输入返回空切片
func ComputeStats(marks []model.Mark) *dto.StatsResponse {
	var (
		exams      []*examAgg
		examIdx    = make(map[string]*examAgg)
		subjects   []*subjectAgg
		subjectIdx = make(map[string]*subjectAgg)
	)

	for i := range marks {
		m := &marks[i]

		e, ok := examIdx[m.ExamName]
		if !ok {
			e = &examAgg{name: m.ExamName}
			examIdx[m.ExamName] = e
			exams = append(exams, e)
		}
		e.score += m.Score
		e.total += m.Total

		s, ok := subjectIdx[m.Subject]
		if !ok {
			s = &subjectAgg{name: m.Subject}
			subjectIdx[m.Subject] = s
			subjects = append(subjects, s)
		}
		s.sum += m.Score
		s.count++
	}

	result := &dto.StatsResponse{
		Exams:    make([]dto.ExamStat, 0, len(exams)),
		Subjects: make([]dto.SubjectStat, 0, len(subjects)),
	}

	for _, e := range exams {
		pct := 0
		if e.total > 0 {
			pct = roundHalfUp(100 * float64(e.score) / float64(e.total))
		}
		result.Exams = append(result.Exams, dto.ExamStat{Name: e.name, Percentage: pct})
	}

	avgSum := 0
	for _, s := range subjects {
		mean := float64(s.sum) / float64(s.count)
		avg := roundHalfUp(mean)
		avgSum += avg
		result.Subjects = append(result.Subjects, dto.SubjectStat{
			Name:   s.name,
			Avg:    avg,
			Status: subjectStatus(mean),
		})
	}

	if len(subjects) > 0 {
		result.Overall = float64(avgSum) / float64(len(subjects))
	}
	result.Rank = rankFor(result.Overall)

	return result
}

func subjectStatus(mean float64) string {
	switch {
	case mean >= strongThreshold:
		return "strong"
	case mean >= averageThreshold:
		return "average"
	default:
		return "weak"
	}
}

func rankFor(overall float64) string {
	switch {
	case overall >= 90:
		return RankTopPerformer
	case overall >= 75:
		return RankExcellent
	case overall >= 50:
		return RankImproving
	default:
		return RankBeginner
	}
}
