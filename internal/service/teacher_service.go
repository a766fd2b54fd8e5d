package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/KarthikeyanSA369/LearnExa/internal/dto"
	"github.com/KarthikeyanSA369/LearnExa/internal/model"
	"github.com/KarthikeyanSA369/LearnExa/internal/repository"
)

var (
	ErrUsernameTaken   = errors.New("用户名已被占用")
	ErrTeacherNotFound = errors.New("教师不存在")
)

// TeacherService 教师账号管理接口（仅管理员）
type TeacherService interface {
	List(ctx context.Context) ([]dto.UserResponse, error)
	Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateTeacherRequest) (*dto.UserResponse, error)
}

type teacherService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(repo *repository.Repository, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, logger: logger}
}

func (s *teacherService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.ListByRole(ctx, model.RoleTeacher)
	if err != nil {
		s.logger.Error("查询教师列表失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *dto.NewUserResponse(&users[i]))
	}
	return result, nil
}

func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(req.Username)

	if _, err := s.repo.User.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户名失败", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user := &model.User{
		Username:        username,
		PasswordHash:    string(hash),
		Role:            model.RoleTeacher,
		Name:            strings.TrimSpace(req.Name),
		AssignedClass:   trimOptional(req.AssignedClass),
		AssignedSection: trimOptional(req.AssignedSection),
		IsActive:        isActive,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		s.logger.Error("创建教师失败", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	s.logger.Info("教师账号已创建", zap.Uint("user_id", user.ID), zap.String("username", username))
	return dto.NewUserResponse(user), nil
}

func (s *teacherService) Update(ctx context.Context, id uint, req *dto.UpdateTeacherRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	if user.Role != model.RoleTeacher {
		return nil, ErrTeacherNotFound
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("密码哈希失败", zap.Error(err))
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.AssignedClass != nil {
		user.AssignedClass = trimOptional(req.AssignedClass)
	}
	if req.AssignedSection != nil {
		user.AssignedSection = trimOptional(req.AssignedSection)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新教师失败", zap.Uint("user_id", id), zap.Error(err))
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// trimOptional 空白字符串视为未设置
func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
