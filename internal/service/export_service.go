package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/KarthikeyanSA369/LearnExa/internal/model"
	"github.com/KarthikeyanSA369/LearnExa/internal/repository"
)

// ErrExportGenerateFail 生成 Excel 失败
var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

const (
	marksSheet   = "Marks"
	summarySheet = "Summary"
)

// ExportService 成绩报告导出接口
// 返回 xlsx 内容与建议文件名，由 Handler 设置响应头
type ExportService interface {
	ExportReport(ctx context.Context, student *model.Student) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportReport 导出单个学生的成绩报告
//
//   - Sheet "Marks"：行为考试、列为科目，单元格为 score/total
//   - Sheet "Summary"：考试百分比、科目均分与状态、综合分与评级
func (s *exportService) ExportReport(ctx context.Context, student *model.Student) (*bytes.Buffer, string, error) {
	marks, err := s.repo.Mark.ListByStudent(ctx, student.ID)
	if err != nil {
		s.logger.Error("查询成绩失败", zap.Uint("student_id", student.ID), zap.Error(err))
		return nil, "", err
	}
	stats := ComputeStats(marks)

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(marksSheet)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// ── Marks ──
	grid := make(map[model.MarkKey]model.Mark, len(marks))
	for _, m := range marks {
		grid[m.Key()] = m
	}

	f.SetCellValue(marksSheet, "A1", "Exam")
	f.SetColWidth(marksSheet, "A", "A", 20)
	for i, sub := range stats.Subjects {
		col := colName(i + 1)
		f.SetCellValue(marksSheet, cell(col, 1), sub.Name)
		f.SetColWidth(marksSheet, col, col, 14)
	}
	lastHeader := cell(colName(len(stats.Subjects)), 1)
	f.SetCellStyle(marksSheet, "A1", lastHeader, headerStyle)

	for r, exam := range stats.Exams {
		row := r + 2
		f.SetCellValue(marksSheet, cell("A", row), exam.Name)
		for i, sub := range stats.Subjects {
			text := "-"
			if m, ok := grid[model.MarkKey{ExamName: exam.Name, Subject: sub.Name}]; ok {
				text = fmt.Sprintf("%d/%d", m.Score, m.Total)
			}
			f.SetCellValue(marksSheet, cell(colName(i+1), row), text)
		}
	}

	// ── Summary ──
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetColWidth(summarySheet, "A", "A", 20)
	f.SetColWidth(summarySheet, "B", "C", 14)

	f.SetCellValue(summarySheet, "A1", "Student")
	f.SetCellValue(summarySheet, "B1", student.Name)
	f.SetCellValue(summarySheet, "A2", "Class")
	f.SetCellValue(summarySheet, "B2", student.Class)
	f.SetCellValue(summarySheet, "A3", "Overall")
	f.SetCellValue(summarySheet, "B3", stats.Overall)
	f.SetCellValue(summarySheet, "A4", "Rank")
	f.SetCellValue(summarySheet, "B4", stats.Rank)

	row := 6
	f.SetCellValue(summarySheet, cell("A", row), "Exam")
	f.SetCellValue(summarySheet, cell("B", row), "Percentage")
	f.SetCellStyle(summarySheet, cell("A", row), cell("B", row), headerStyle)
	for _, e := range stats.Exams {
		row++
		f.SetCellValue(summarySheet, cell("A", row), e.Name)
		f.SetCellValue(summarySheet, cell("B", row), e.Percentage)
	}

	row += 2
	f.SetCellValue(summarySheet, cell("A", row), "Subject")
	f.SetCellValue(summarySheet, cell("B", row), "Average")
	f.SetCellValue(summarySheet, cell("C", row), "Status")
	f.SetCellStyle(summarySheet, cell("A", row), cell("C", row), headerStyle)
	for _, sub := range stats.Subjects {
		row++
		f.SetCellValue(summarySheet, cell("A", row), sub.Name)
		f.SetCellValue(summarySheet, cell("B", row), sub.Avg)
		f.SetCellValue(summarySheet, cell("C", row), sub.Status)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("report_%s_%d.xlsx", student.Class, student.ID)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
