package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/KarthikeyanSA369/LearnExa/config"
	"github.com/KarthikeyanSA369/LearnExa/internal/model"
	"github.com/KarthikeyanSA369/LearnExa/internal/repository"
)

// 演示数据
const (
	demoTeacherUsername = "teacher"
	demoTeacherPassword = "password"
	demoClass           = "CSE-A"
	demoSection         = "A"
	demoStudentName     = "Student One"
	demoStudentDOB      = "2000-01-01"
)

// Seeder 启动时初始化必需账号与演示数据，可重复执行
type Seeder struct {
	cfg    *config.SeedConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSeeder 创建 Seeder
func NewSeeder(cfg *config.SeedConfig, repo *repository.Repository, logger *zap.Logger) *Seeder {
	return &Seeder{cfg: cfg, repo: repo, logger: logger}
}

// Bootstrap 管理员不存在时创建；启用 demo 时补齐演示教师、学生及其成绩
func (s *Seeder) Bootstrap(ctx context.Context) error {
	if _, err := s.ensureUser(ctx, &model.User{
		Username: s.cfg.AdminUsername,
		Role:     model.RoleAdmin,
		Name:     "Administrator",
		IsActive: true,
	}, s.cfg.AdminPassword); err != nil {
		return fmt.Errorf("初始化管理员失败: %w", err)
	}

	if !s.cfg.Demo {
		return nil
	}

	class, section := demoClass, demoSection
	teacher, err := s.ensureUser(ctx, &model.User{
		Username:        demoTeacherUsername,
		Role:            model.RoleTeacher,
		Name:            "John Doe",
		AssignedClass:   &class,
		AssignedSection: &section,
		IsActive:        true,
	}, demoTeacherPassword)
	if err != nil {
		return fmt.Errorf("初始化演示教师失败: %w", err)
	}

	if err := s.ensureDemoStudent(ctx, teacher.ID); err != nil {
		return fmt.Errorf("初始化演示学生失败: %w", err)
	}
	return nil
}

func (s *Seeder) ensureUser(ctx context.Context, user *model.User, password string) (*model.User, error) {
	existing, err := s.repo.User.GetByUsername(ctx, user.Username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("已创建初始账号", zap.String("username", user.Username), zap.String("role", user.Role.String()))
	return user, nil
}

func (s *Seeder) ensureDemoStudent(ctx context.Context, teacherID uint) error {
	_, err := s.repo.Student.GetByIdentity(ctx, demoStudentName, demoClass, demoStudentDOB)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		student := &model.Student{
			Name:           demoStudentName,
			Class:          demoClass,
			Section:        demoSection,
			RollNumber:     "101",
			RegisterNumber: "REG101",
			ParentName:     "Parent One",
			Address:        "123 St",
			DOB:            demoStudentDOB,
		}
		if err := tx.Student.Create(ctx, student); err != nil {
			return err
		}

		marks := []model.Mark{
			{StudentID: student.ID, ExamName: "Midterm Test-1", Subject: "Math", Score: 85, Total: 100},
			{StudentID: student.ID, ExamName: "Midterm Test-1", Subject: "Physics", Score: 78, Total: 100},
			{StudentID: student.ID, ExamName: "Quarterly Exam", Subject: "Math", Score: 90, Total: 100},
		}
		if err := tx.Mark.Upsert(ctx, marks); err != nil {
			return err
		}

		if err := tx.Suggestion.Create(ctx, &model.Suggestion{
			StudentID: student.ID,
			TeacherID: teacherID,
			Content:   "Great progress in Math, keep it up!",
			Date:      time.Now().UTC(),
		}); err != nil {
			return err
		}

		s.logger.Info("已创建演示学生", zap.Uint("student_id", student.ID))
		return nil
	})
}
