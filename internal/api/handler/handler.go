package handler

import (
	"github.com/KarthikeyanSA369/LearnExa/config"
	"github.com/KarthikeyanSA369/LearnExa/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Teacher    *TeacherHandler
	Student    *StudentHandler
	Mark       *MarkHandler
	Suggestion *SuggestionHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, authCfg *config.AuthConfig) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth, authCfg),
		Teacher:    NewTeacherHandler(svc.Teacher),
		Student:    NewStudentHandler(svc.Student),
		Mark:       NewMarkHandler(svc.Student, svc.Mark),
		Suggestion: NewSuggestionHandler(svc.Student, svc.Suggestion),
		Export:     NewExportHandler(svc.Student, svc.Export),
	}
}
