package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KarthikeyanSA369/LearnExa/internal/model"
)

// MarkRepository 成绩数据访问接口
type MarkRepository interface {
	ListByStudent(ctx context.Context, studentID uint) ([]model.Mark, error)
	// ListByStudentForUpdate 读取并锁定学生现有成绩，须在事务中调用
	ListByStudentForUpdate(ctx context.Context, studentID uint) ([]model.Mark, error)
	// Upsert 按 (student_id, exam_name, subject) 插入或覆盖 score/total
	Upsert(ctx context.Context, marks []model.Mark) error
}

type markRepo struct {
	db *gorm.DB
}

// NewMarkRepo 创建 MarkRepository 实例
func NewMarkRepo(db *gorm.DB) MarkRepository {
	return &markRepo{db: db}
}

func (r *markRepo) ListByStudent(ctx context.Context, studentID uint) ([]model.Mark, error) {
	var marks []model.Mark
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&marks).Error
	return marks, err
}

func (r *markRepo) ListByStudentForUpdate(ctx context.Context, studentID uint) ([]model.Mark, error) {
	var marks []model.Mark
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&marks).Error
	return marks, err
}

func (r *markRepo) Upsert(ctx context.Context, marks []model.Mark) error {
	if len(marks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "student_id"}, {Name: "exam_name"}, {Name: "subject"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"score", "total", "updated_at"}),
		}).
		Create(&marks).Error
}
