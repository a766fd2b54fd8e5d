package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KarthikeyanSA369/LearnExa/internal/model"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	BatchCreate(ctx context.Context, students []*model.Student) error
	GetByID(ctx context.Context, id uint) (*model.Student, error)
	GetByIdentity(ctx context.Context, name, class, dob string) (*model.Student, error)
	ListByClass(ctx context.Context, class string) ([]model.Student, error)
	ListByClasses(ctx context.Context, classes []string) ([]model.Student, error)
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) BatchCreate(ctx context.Context, students []*model.Student) error {
	if len(students) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(students, 200).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id uint) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByIdentity(ctx context.Context, name, class, dob string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("name = ? AND class = ? AND dob = ?", name, class, dob).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) ListByClass(ctx context.Context, class string) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Where("class = ?", class).
		Order("roll_number ASC, id ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) ListByClasses(ctx context.Context, classes []string) ([]model.Student, error) {
	var students []model.Student
	if len(classes) == 0 {
		return students, nil
	}
	err := r.db.WithContext(ctx).
		Where("class IN ?", classes).
		Find(&students).Error
	return students, err
}
