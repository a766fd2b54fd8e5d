package service

import (
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/KarthikeyanSA369/LearnExa/internal/model"
)

func TestExportService_ExportReport(t *testing.T) {
	m := newMockRepos()
	svc := NewExportService(m.repo, zap.NewNop())
	st := m.addStudent("Alice", "CSE-A", "2001-02-03")
	ctx := context.Background()

	_ = m.marks.Upsert(ctx, []model.Mark{
		{StudentID: st.ID, ExamName: "Mid", Subject: "Math", Score: 90, Total: 100},
		{StudentID: st.ID, ExamName: "Mid", Subject: "Physics", Score: 70, Total: 100},
		{StudentID: st.ID, ExamName: "Final", Subject: "Math", Score: 80, Total: 100},
	})

	buf, filename, err := svc.ExportReport(ctx, st)
	if err != nil {
		t.Fatalf("ExportReport 应成功: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("期望 .xlsx 文件名，实际 %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("输出应为合法 xlsx: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != marksSheet || sheets[1] != summarySheet {
		t.Fatalf("期望工作表 [Marks Summary]，实际 %v", sheets)
	}

	if v, _ := f.GetCellValue(marksSheet, "B2"); v != "90/100" {
		t.Errorf("Mid/Math 期望 90/100，实际 %q", v)
	}
	if v, _ := f.GetCellValue(marksSheet, "C3"); v != "-" {
		t.Errorf("Final/Physics 缺失期望 -，实际 %q", v)
	}
	if v, _ := f.GetCellValue(summarySheet, "B4"); v != RankExcellent {
		t.Errorf("期望 rank=%s，实际 %q", RankExcellent, v)
	}
}

func TestExportService_ExportReport_NoMarks(t *testing.T) {
	m := newMockRepos()
	svc := NewExportService(m.repo, zap.NewNop())
	st := m.addStudent("Alice", "CSE-A", "2001-02-03")

	buf, _, err := svc.ExportReport(context.Background(), st)
	if err != nil {
		t.Fatalf("无成绩时也应生成报告: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("期望非空文件")
	}
}
