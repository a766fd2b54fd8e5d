package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KarthikeyanSA369/LearnExa/internal/api/middleware"
	"github.com/KarthikeyanSA369/LearnExa/internal/model"
	"github.com/KarthikeyanSA369/LearnExa/internal/service"
	"github.com/KarthikeyanSA369/LearnExa/pkg/response"
)

// MustGetPrincipal 从上下文提取已认证身份
// 中间件未注入时写入 401，调用方应在 ok=false 时直接 return
func MustGetPrincipal(c *gin.Context) (*service.Principal, bool) {
	p := middleware.GetPrincipal(c)
	if p == nil {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return p, true
}

// MustGetTeacher 提取当前教师账号
func MustGetTeacher(c *gin.Context) (*model.User, bool) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return nil, false
	}
	if p.Role != model.RoleTeacher || p.User == nil {
		response.Forbidden(c, 10003, "无权限访问")
		return nil, false
	}
	return p.User, true
}

// MustGetStudent 提取当前学生
func MustGetStudent(c *gin.Context) (*model.Student, bool) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return nil, false
	}
	if p.Role != model.RoleStudent || p.Student == nil {
		response.Forbidden(c, 10003, "无权限访问")
		return nil, false
	}
	return p.Student, true
}

// parseIDParam 解析路径中的正整数 ID
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, "无效的 ID")
		return 0, false
	}
	return uint(id), true
}

// bindJSON 绑定请求体，超出大小限制时返回 413
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			return false
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", err.Error())
		return false
	}
	return true
}

// loadScopedStudent 读取路径中的学生并校验当前教师的班级范围
func loadScopedStudent(c *gin.Context, studentSvc service.StudentService) (*model.Student, bool) {
	teacher, ok := MustGetTeacher(c)
	if !ok {
		return nil, false
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	student, err := studentSvc.GetForTeacher(c.Request.Context(), teacher, id)
	if err != nil {
		handleStudentError(c, err)
		return nil, false
	}
	return student, true
}

func handleStudentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 20201, "学生不存在")
	case errors.Is(err, service.ErrStudentOutOfScope):
		response.Forbidden(c, 20202, "该学生不在您负责的班级")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
