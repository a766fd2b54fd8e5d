package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KarthikeyanSA369/LearnExa/internal/dto"
	"github.com/KarthikeyanSA369/LearnExa/internal/model"
	"github.com/KarthikeyanSA369/LearnExa/internal/repository"
)

var ErrInvalidMarks = errors.New("成绩数据无效")

const marksSavedMessage = "成绩已保存"

// MarkService 成绩业务接口
type MarkService interface {
	List(ctx context.Context, studentID uint) ([]dto.MarkResponse, error)
	// Upsert 将一批成绩合并到学生现有成绩中，整批在单个事务内完成
	Upsert(ctx context.Context, studentID uint, entries []dto.MarkEntry) (*dto.UpsertMarksResponse, error)
	Stats(ctx context.Context, studentID uint) (*dto.StatsResponse, error)
}

type markService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMarkService 创建 MarkService 实例
func NewMarkService(repo *repository.Repository, logger *zap.Logger) MarkService {
	return &markService{repo: repo, logger: logger}
}

func (s *markService) List(ctx context.Context, studentID uint) ([]dto.MarkResponse, error) {
	if err := s.ensureStudent(ctx, s.repo, studentID); err != nil {
		return nil, err
	}
	marks, err := s.repo.Mark.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询成绩失败", zap.Uint("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return dto.NewMarkResponses(marks), nil
}

func (s *markService) Stats(ctx context.Context, studentID uint) (*dto.StatsResponse, error) {
	if err := s.ensureStudent(ctx, s.repo, studentID); err != nil {
		return nil, err
	}
	marks, err := s.repo.Mark.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询成绩失败", zap.Uint("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return ComputeStats(marks), nil
}

// ────────────────────── Upsert ──────────────────────

func (s *markService) Upsert(ctx context.Context, studentID uint, entries []dto.MarkEntry) (*dto.UpsertMarksResponse, error) {
	// 第一阶段：全量校验，任何一条失败则不写入
	candidates, err := validateMarkEntries(studentID, entries)
	if err != nil {
		return nil, err
	}

	// 空批次不改动现有成绩，学生不存在仍返回 404
	if len(candidates) == 0 {
		if err := s.ensureStudent(ctx, s.repo, studentID); err != nil {
			return nil, err
		}
		return &dto.UpsertMarksResponse{Message: marksSavedMessage}, nil
	}

	for i := range candidates {
		if candidates[i].Score > candidates[i].Total {
			s.logger.Warn("成绩高于满分",
				zap.Uint("student_id", studentID),
				zap.String("exam", candidates[i].ExamName),
				zap.String("subject", candidates[i].Subject),
				zap.Int("score", candidates[i].Score),
				zap.Int("total", candidates[i].Total),
			)
		}
	}

	// 第二阶段：事务内锁定现有成绩并合并写入
	var inserted, updated int
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := s.ensureStudent(ctx, tx, studentID); err != nil {
			return err
		}

		current, err := tx.Mark.ListByStudentForUpdate(ctx, studentID)
		if err != nil {
			return fmt.Errorf("锁定现有成绩失败: %w", err)
		}

		var changed []model.Mark
		changed, inserted, updated = MergeMarks(current, candidates)

		if err := tx.Mark.Upsert(ctx, changed); err != nil {
			return fmt.Errorf("写入成绩失败: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrStudentNotFound) {
			s.logger.Error("成绩合并失败", zap.Uint("student_id", studentID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("成绩已更新",
		zap.Uint("student_id", studentID),
		zap.Int("inserted", inserted),
		zap.Int("updated", updated),
	)

	return &dto.UpsertMarksResponse{
		Message:  marksSavedMessage,
		Inserted: inserted,
		Updated:  updated,
	}, nil
}

func (s *markService) ensureStudent(ctx context.Context, repo *repository.Repository, studentID uint) error {
	if _, err := repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	return nil
}

// validateMarkEntries 校验并规范化提交的成绩
func validateMarkEntries(studentID uint, entries []dto.MarkEntry) ([]model.Mark, error) {
	result := make([]model.Mark, 0, len(entries))
	for i, e := range entries {
		exam := strings.TrimSpace(e.ExamName)
		subject := strings.TrimSpace(e.Subject)

		switch {
		case e.StudentID != nil && *e.StudentID != studentID:
			return nil, fmt.Errorf("%w: 第 %d 条 studentId 与路径不一致", ErrInvalidMarks, i+1)
		case exam == "":
			return nil, fmt.Errorf("%w: 第 %d 条缺少 examName", ErrInvalidMarks, i+1)
		case subject == "":
			return nil, fmt.Errorf("%w: 第 %d 条缺少 subject", ErrInvalidMarks, i+1)
		case e.Score == nil || *e.Score < 0:
			return nil, fmt.Errorf("%w: 第 %d 条 score 必须为非负整数", ErrInvalidMarks, i+1)
		case e.Total == nil || *e.Total <= 0:
			return nil, fmt.Errorf("%w: 第 %d 条 total 必须为正整数", ErrInvalidMarks, i+1)
		}

		result = append(result, model.Mark{
			StudentID: studentID,
			ExamName:  exam,
			Subject:   subject,
			Score:     *e.Score,
			Total:     *e.Total,
		})
	}
	return result, nil
}

// MergeMarks 将候选成绩依次应用到现有成绩集合
// 同一 (examName, subject) 后出现者覆盖先出现者；返回需要写入的成绩及新增/更新计数
// 计数按去重后的自然键统计，未涉及的现有成绩保持不变
func MergeMarks(current, candidates []model.Mark) (changed []model.Mark, inserted, updated int) {
	existing := make(map[model.MarkKey]model.Mark, len(current))
	for _, m := range current {
		existing[m.Key()] = m
	}

	// 批内去重，保留最后一条，顺序按首次出现
	var order []model.MarkKey
	latest := make(map[model.MarkKey]model.Mark, len(candidates))
	for _, c := range candidates {
		k := c.Key()
		if _, seen := latest[k]; !seen {
			order = append(order, k)
		}
		latest[k] = c
	}

	changed = make([]model.Mark, 0, len(order))
	for _, k := range order {
		if _, ok := existing[k]; ok {
			updated++
		} else {
			inserted++
		}
		changed = append(changed, latest[k])
	}
	return changed, inserted, updated
}
