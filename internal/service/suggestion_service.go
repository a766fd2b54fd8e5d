package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KarthikeyanSA369/LearnExa/internal/dto"
	"github.com/KarthikeyanSA369/LearnExa/internal/model"
	"github.com/KarthikeyanSA369/LearnExa/internal/repository"
)

// ErrSuggestionEmpty 评语内容为空
var ErrSuggestionEmpty = errors.New("评语内容不能为空")

// SuggestionService 教师评语业务接口（只追加）
type SuggestionService interface {
	Create(ctx context.Context, studentID, teacherID uint, req *dto.CreateSuggestionRequest) (*dto.SuggestionResponse, error)
	List(ctx context.Context, studentID uint) ([]dto.SuggestionResponse, error)
}

type suggestionService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewSuggestionService 创建 SuggestionService 实例
func NewSuggestionService(repo *repository.Repository, logger *zap.Logger) SuggestionService {
	return &suggestionService{repo: repo, logger: logger, now: time.Now}
}

func (s *suggestionService) Create(ctx context.Context, studentID, teacherID uint, req *dto.CreateSuggestionRequest) (*dto.SuggestionResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrSuggestionEmpty
	}

	suggestion := &model.Suggestion{
		StudentID: studentID,
		TeacherID: teacherID,
		Content:   content,
		Date:      s.now().UTC(),
	}
	if err := s.repo.Suggestion.Create(ctx, suggestion); err != nil {
		s.logger.Error("创建评语失败", zap.Uint("student_id", studentID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("评语已添加", zap.Uint("student_id", studentID), zap.Uint("teacher_id", teacherID))
	return dto.NewSuggestionResponse(suggestion), nil
}

func (s *suggestionService) List(ctx context.Context, studentID uint) ([]dto.SuggestionResponse, error) {
	list, err := s.repo.Suggestion.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询评语失败", zap.Uint("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return dto.NewSuggestionResponses(list), nil
}
