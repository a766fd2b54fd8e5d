package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KarthikeyanSA369/LearnExa/internal/dto"
	"github.com/KarthikeyanSA369/LearnExa/internal/model"
	"github.com/KarthikeyanSA369/LearnExa/internal/repository"
)

var (
	ErrStudentNotFound       = errors.New("学生不存在")
	ErrStudentOutOfScope     = errors.New("该学生不在您负责的班级")
	ErrStudentExists         = errors.New("学生已存在")
	ErrImportTooManyRows     = errors.New("导入行数超过上限")
	ErrImportUnsupportedFile = errors.New("仅支持 .csv 或 .xlsx 文件")
)

// StudentService 学生业务接口
type StudentService interface {
	// ListRoster 教师所负责班级的学生名册，未分配班级时返回空列表
	ListRoster(ctx context.Context, teacher *model.User) ([]dto.StudentResponse, error)
	// GetForTeacher 按 ID 读取学生并校验教师的班级范围
	GetForTeacher(ctx context.Context, teacher *model.User, studentID uint) (*model.Student, error)
	Dashboard(ctx context.Context, student *model.Student) (*dto.StudentDashboardResponse, error)
	ImportText(ctx context.Context, content string) (*dto.ImportStudentsResponse, error)
	ImportFile(ctx context.Context, filename string, r io.Reader) (*dto.ImportStudentsResponse, error)
}

type studentService struct {
	repo    *repository.Repository
	maxRows int
	logger  *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, maxRows int, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, maxRows: maxRows, logger: logger}
}

func (s *studentService) ListRoster(ctx context.Context, teacher *model.User) ([]dto.StudentResponse, error) {
	result := make([]dto.StudentResponse, 0)
	if teacher.AssignedClass == nil || *teacher.AssignedClass == "" {
		return result, nil
	}

	students, err := s.repo.Student.ListByClass(ctx, *teacher.AssignedClass)
	if err != nil {
		s.logger.Error("查询学生名册失败", zap.String("class", *teacher.AssignedClass), zap.Error(err))
		return nil, err
	}
	for i := range students {
		result = append(result, *dto.NewStudentResponse(&students[i]))
	}
	return result, nil
}

func (s *studentService) GetForTeacher(ctx context.Context, teacher *model.User, studentID uint) (*model.Student, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Uint("student_id", studentID), zap.Error(err))
		return nil, err
	}

	if teacher.AssignedClass == nil || *teacher.AssignedClass != student.Class {
		return nil, ErrStudentOutOfScope
	}
	return student, nil
}

func (s *studentService) Dashboard(ctx context.Context, student *model.Student) (*dto.StudentDashboardResponse, error) {
	marks, err := s.repo.Mark.ListByStudent(ctx, student.ID)
	if err != nil {
		s.logger.Error("查询成绩失败", zap.Uint("student_id", student.ID), zap.Error(err))
		return nil, err
	}
	suggestions, err := s.repo.Suggestion.ListByStudent(ctx, student.ID)
	if err != nil {
		s.logger.Error("查询评语失败", zap.Uint("student_id", student.ID), zap.Error(err))
		return nil, err
	}

	return &dto.StudentDashboardResponse{
		Student:     dto.NewStudentResponse(student),
		Marks:       dto.NewMarkResponses(marks),
		Suggestions: dto.NewSuggestionResponses(suggestions),
		Stats:       ComputeStats(marks),
	}, nil
}

// ────────────────────── 名册导入 ──────────────────────

func (s *studentService) ImportText(ctx context.Context, content string) (*dto.ImportStudentsResponse, error) {
	rows, err := ParseRosterText(content)
	if err != nil {
		return nil, err
	}
	return s.importRows(ctx, rows)
}

func (s *studentService) ImportFile(ctx context.Context, filename string, r io.Reader) (*dto.ImportStudentsResponse, error) {
	var (
		rows []RosterRow
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		data, readErr := io.ReadAll(r)
		if readErr != nil {
			return nil, fmt.Errorf("读取上传文件失败: %w", readErr)
		}
		rows, err = ParseRosterText(string(data))
	case ".xlsx":
		rows, err = ParseRosterSheet(r)
	default:
		return nil, ErrImportUnsupportedFile
	}
	if err != nil {
		return nil, err
	}
	return s.importRows(ctx, rows)
}

// importRows 第一阶段去重，第二阶段在单个事务内批量写入
func (s *studentService) importRows(ctx context.Context, rows []RosterRow) (*dto.ImportStudentsResponse, error) {
	if len(rows) > s.maxRows {
		return nil, fmt.Errorf("%w: %d > %d", ErrImportTooManyRows, len(rows), s.maxRows)
	}
	if len(rows) == 0 {
		return &dto.ImportStudentsResponse{}, nil
	}

	type identity struct{ name, class, dob string }

	classSet := make(map[string]struct{})
	var classes []string
	for _, r := range rows {
		if _, ok := classSet[r.Class]; !ok {
			classSet[r.Class] = struct{}{}
			classes = append(classes, r.Class)
		}
	}

	existing, err := s.repo.Student.ListByClasses(ctx, classes)
	if err != nil {
		s.logger.Error("查询已有学生失败", zap.Error(err))
		return nil, err
	}

	seen := make(map[identity]struct{}, len(existing)+len(rows))
	for _, st := range existing {
		seen[identity{st.Name, st.Class, st.DOB}] = struct{}{}
	}

	var (
		toCreate []*model.Student
		skipped  int
	)
	for _, r := range rows {
		id := identity{r.Name, r.Class, r.DOB}
		if _, dup := seen[id]; dup {
			skipped++
			continue
		}
		seen[id] = struct{}{}
		toCreate = append(toCreate, &model.Student{
			Name:           r.Name,
			Class:          r.Class,
			Section:        r.Section,
			RollNumber:     r.RollNumber,
			RegisterNumber: r.RegisterNumber,
			ParentName:     r.ParentName,
			Address:        r.Address,
			DOB:            r.DOB,
		})
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		return tx.Student.BatchCreate(ctx, toCreate)
	})
	if err != nil {
		// 并发导入同一学生时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStudentExists
		}
		s.logger.Error("批量创建学生失败", zap.Int("rows", len(toCreate)), zap.Error(err))
		return nil, err
	}

	s.logger.Info("名册导入完成", zap.Int("count", len(toCreate)), zap.Int("skipped", skipped))

	return &dto.ImportStudentsResponse{Count: len(toCreate), Skipped: skipped}, nil
}
