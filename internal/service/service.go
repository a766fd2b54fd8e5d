package service

import (
	"go.uber.org/zap"

	"github.com/KarthikeyanSA369/LearnExa/config"
	"github.com/KarthikeyanSA369/LearnExa/internal/repository"
	"github.com/KarthikeyanSA369/LearnExa/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Teacher    TeacherService
	Student    StudentService
	Mark       MarkService
	Suggestion SuggestionService
	Export     ExportService
	Seeder     *Seeder
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	sessions SessionStore,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(repo, jwtMgr, sessions, logger),
		Teacher:    NewTeacherService(repo, logger),
		Student:    NewStudentService(repo, cfg.Import.MaxRows, logger),
		Mark:       NewMarkService(repo, logger),
		Suggestion: NewSuggestionService(repo, logger),
		Export:     NewExportService(repo, logger),
		Seeder:     NewSeeder(&cfg.Seed, repo, logger),
	}
}
