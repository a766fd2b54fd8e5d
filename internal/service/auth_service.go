package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/KarthikeyanSA369/LearnExa/internal/dto"
	"github.com/KarthikeyanSA369/LearnExa/internal/model"
	"github.com/KarthikeyanSA369/LearnExa/internal/repository"
	"github.com/KarthikeyanSA369/LearnExa/pkg/jwt"
)

var (
	ErrInvalidLoginRequest = errors.New("登录参数无效")
	ErrMissingCredentials  = errors.New("缺少登录凭据")
	ErrInvalidCredentials  = errors.New("用户名或密码错误")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Logout 按令牌删除会话，不加载实体，停用账号同样可以登出
	Logout(ctx context.Context, token string) error
	// Authenticate 校验令牌并按会话重新加载实体
	Authenticate(ctx context.Context, token string) (*Principal, error)
}

type authService struct {
	repo     *repository.Repository
	jwtMgr   *jwt.Manager
	sessions SessionStore
	logger   *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	sessions SessionStore,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:     repo,
		jwtMgr:   jwtMgr,
		sessions: sessions,
		logger:   logger,
	}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return nil, ErrInvalidLoginRequest
	}

	var (
		subjectID uint
		user      interface{}
	)

	switch role {
	case model.RoleAdmin, model.RoleTeacher:
		u, err := s.loginStaff(ctx, role, req.Username, req.Password)
		if err != nil {
			return nil, err
		}
		subjectID, user = u.ID, dto.NewUserResponse(u)
	case model.RoleStudent:
		st, err := s.loginStudent(ctx, req.Name, req.Class, req.DOB)
		if err != nil {
			return nil, err
		}
		subjectID, user = st.ID, dto.NewStudentResponse(st)
	default:
		return nil, ErrInvalidLoginRequest
	}

	token, err := s.openSession(ctx, SessionData{SubjectID: subjectID, Role: role})
	if err != nil {
		return nil, err
	}

	s.logger.Info("登录成功", zap.String("role", role.String()), zap.Uint("subject_id", subjectID))

	return &dto.LoginResponse{
		User:      user,
		Role:      role,
		Token:     token,
		ExpiresIn: int(s.jwtMgr.TTL().Seconds()),
	}, nil
}

func (s *authService) loginStaff(ctx context.Context, role model.Role, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.repo.User.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Role != role {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}
	return user, nil
}

// loginStudent 学生凭 (姓名, 班级, 出生日期) 登录，无密码
// 该三元组可被猜测，属于已知的安全弱点，保持与现有前端兼容
func (s *authService) loginStudent(ctx context.Context, name, class, dob string) (*model.Student, error) {
	name, class, dob = strings.TrimSpace(name), strings.TrimSpace(class), strings.TrimSpace(dob)
	if name == "" || class == "" || dob == "" {
		return nil, ErrMissingCredentials
	}

	student, err := s.repo.Student.GetByIdentity(ctx, name, class, dob)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, err
	}
	return student, nil
}

func (s *authService) openSession(ctx context.Context, data SessionData) (string, error) {
	sid := jwt.NewSessionID()

	token, _, err := s.jwtMgr.Sign(sid)
	if err != nil {
		s.logger.Error("签发会话令牌失败", zap.Error(err))
		return "", err
	}

	if err := s.sessions.Save(ctx, sid, data, s.jwtMgr.TTL()); err != nil {
		s.logger.Error("写入会话失败", zap.Error(err))
		return "", fmt.Errorf("写入会话失败: %w", err)
	}
	return token, nil
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtMgr.Parse(token)
	if err != nil {
		return ErrUnauthorized
	}
	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil {
		s.logger.Error("删除会话失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Authenticate ──────────────────────

func (s *authService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.jwtMgr.Parse(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	data, err := s.sessions.Load(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrUnauthorized
		}
		s.logger.Error("读取会话失败", zap.Error(err))
		return nil, err
	}

	p := &Principal{SessionID: claims.SessionID, Role: data.Role}

	switch data.Role {
	case model.RoleAdmin, model.RoleTeacher:
		user, err := s.repo.User.GetByID(ctx, data.SubjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnauthorized
			}
			return nil, err
		}
		if user.Role != data.Role {
			return nil, ErrUnauthorized
		}
		// 每次请求重新校验，停用立即生效
		if !user.IsActive {
			return nil, ErrAccountDeactivated
		}
		p.User = user
	case model.RoleStudent:
		student, err := s.repo.Student.GetByID(ctx, data.SubjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnauthorized
			}
			return nil, err
		}
		p.Student = student
	default:
		return nil, ErrUnauthorized
	}

	return p, nil
}
