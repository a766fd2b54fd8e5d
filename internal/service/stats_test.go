package service

import (
	"testing"

	"github.com/KarthikeyanSA369/LearnExa/internal/model"
)

func mark(exam, subject string, score, total int) model.Mark {
	return model.Mark{ExamName: exam, Subject: subject, Score: score, Total: total}
}

func TestComputeStats_Empty(t *testing.T) {
	got := ComputeStats(nil)

	if got.Exams == nil || len(got.Exams) != 0 {
		t.Errorf("期望 exams 为空切片，实际 %#v", got.Exams)
	}
	if got.Subjects == nil || len(got.Subjects) != 0 {
		t.Errorf("期望 subjects 为空切片，实际 %#v", got.Subjects)
	}
	if got.Overall != 0 {
		t.Errorf("期望 overall=0，实际 %v", got.Overall)
	}
	if got.Rank != RankBeginner {
		t.Errorf("期望 rank=%s，实际 %s", RankBeginner, got.Rank)
	}
}

func TestComputeStats_ExamPercentage(t *testing.T) {
	got := ComputeStats([]model.Mark{
		mark("E1", "Math", 90, 100),
		mark("E1", "Physics", 70, 100),
	})

	if len(got.Exams) != 1 {
		t.Fatalf("期望 1 场考试，实际 %d", len(got.Exams))
	}
	if got.Exams[0].Name != "E1" || got.Exams[0].Percentage != 80 {
		t.Errorf("期望 E1=80，实际 %+v", got.Exams[0])
	}
}

func TestComputeStats_SubjectAverageRoundsHalfUp(t *testing.T) {
	got := ComputeStats([]model.Mark{
		mark("E1", "Math", 85, 100),
		mark("E2", "Math", 90, 100),
	})

	if len(got.Subjects) != 1 {
		t.Fatalf("期望 1 个科目，实际 %d", len(got.Subjects))
	}
	sub := got.Subjects[0]
	if sub.Avg != 88 {
		t.Errorf("期望 avg=88，实际 %d", sub.Avg)
	}
	if sub.Status != "strong" {
		t.Errorf("期望 status=strong，实际 %s", sub.Status)
	}
}

func TestComputeStats_StatusUsesUnroundedMean(t *testing.T) {
	// 均分 79.5 取整为 80，但状态按 79.5 判定
	got := ComputeStats([]model.Mark{
		mark("E1", "Chem", 79, 100),
		mark("E2", "Chem", 80, 100),
	})

	sub := got.Subjects[0]
	if sub.Avg != 80 {
		t.Errorf("期望 avg=80，实际 %d", sub.Avg)
	}
	if sub.Status != "average" {
		t.Errorf("期望 status=average，实际 %s", sub.Status)
	}
}

func TestComputeStats_FirstAppearanceOrder(t *testing.T) {
	got := ComputeStats([]model.Mark{
		mark("Final", "Physics", 50, 100),
		mark("Mid", "Math", 60, 100),
		mark("Final", "Math", 70, 100),
	})

	if got.Exams[0].Name != "Final" || got.Exams[1].Name != "Mid" {
		t.Errorf("考试顺序错误: %+v", got.Exams)
	}
	if got.Subjects[0].Name != "Physics" || got.Subjects[1].Name != "Math" {
		t.Errorf("科目顺序错误: %+v", got.Subjects)
	}
}

func TestComputeStats_OverallAndRank(t *testing.T) {
	tests := []struct {
		name    string
		marks   []model.Mark
		overall float64
		rank    string
	}{
		{"top", []model.Mark{mark("E", "A", 95, 100), mark("E", "B", 90, 100)}, 92.5, RankTopPerformer},
		{"excellent", []model.Mark{mark("E", "A", 75, 100)}, 75, RankExcellent},
		{"improving", []model.Mark{mark("E", "A", 60, 100), mark("E", "B", 41, 100)}, 50.5, RankImproving},
		{"beginner", []model.Mark{mark("E", "A", 49, 100)}, 49, RankBeginner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStats(tt.marks)
			if got.Overall != tt.overall {
				t.Errorf("期望 overall=%v，实际 %v", tt.overall, got.Overall)
			}
			if got.Rank != tt.rank {
				t.Errorf("期望 rank=%s，实际 %s", tt.rank, got.Rank)
			}
		})
	}
}

func TestComputeStats_ZeroTotalExam(t *testing.T) {
	got := ComputeStats([]model.Mark{mark("E1", "Math", 0, 0)})
	if got.Exams[0].Percentage != 0 {
		t.Errorf("满分之和为 0 时期望 percentage=0，实际 %d", got.Exams[0].Percentage)
	}
}

func TestComputeStats_Deterministic(t *testing.T) {
	marks := []model.Mark{
		mark("E1", "Math", 67, 100),
		mark("E1", "Bio", 88, 90),
		mark("E2", "Math", 71, 80),
	}
	a, b := ComputeStats(marks), ComputeStats(marks)
	if a.Overall != b.Overall || a.Rank != b.Rank || len(a.Exams) != len(b.Exams) {
		t.Fatal("相同输入应得到相同结果")
	}
	for i := range a.Exams {
		if a.Exams[i] != b.Exams[i] {
			t.Errorf("exams[%d] 不一致: %+v vs %+v", i, a.Exams[i], b.Exams[i])
		}
	}
}
