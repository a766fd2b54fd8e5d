package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KarthikeyanSA369/LearnExa/internal/model"
)

// SuggestionRepository 评语数据访问接口（只追加）
type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *model.Suggestion) error
	ListByStudent(ctx context.Context, studentID uint) ([]model.Suggestion, error)
}

type suggestionRepo struct {
	db *gorm.DB
}

// NewSuggestionRepo 创建 SuggestionRepository 实例
func NewSuggestionRepo(db *gorm.DB) SuggestionRepository {
	return &suggestionRepo{db: db}
}

func (r *suggestionRepo) Create(ctx context.Context, suggestion *model.Suggestion) error {
	return r.db.WithContext(ctx).Create(suggestion).Error
}

func (r *suggestionRepo) ListByStudent(ctx context.Context, studentID uint) ([]model.Suggestion, error) {
	var list []model.Suggestion
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date DESC, id DESC").
		Find(&list).Error
	return list, err
}
