package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KarthikeyanSA369/LearnExa/internal/dto"
	"github.com/KarthikeyanSA369/LearnExa/internal/service"
	"github.com/KarthikeyanSA369/LearnExa/pkg/response"
)

// StudentHandler 学生名册与学生本人数据
type StudentHandler struct {
	studentSvc service.StudentService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

// Roster 教师所负责班级的学生
// GET /api/teacher/students
func (h *StudentHandler) Roster(c *gin.Context) {
	teacher, ok := MustGetTeacher(c)
	if !ok {
		return
	}

	list, err := h.studentSvc.ListRoster(c.Request.Context(), teacher)
	if err != nil {
		handleStudentError(c, err)
		return
	}
	response.OK(c, list)
}

// Import 批量导入学生名册
// POST /api/teacher/students/import
// 支持 JSON {csvContent} 或 multipart 上传字段 file（.csv / .xlsx）
func (h *StudentHandler) Import(c *gin.Context) {
	var (
		result *dto.ImportStudentsResponse
		err    error
	)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, ferr := c.FormFile("file")
		if ferr != nil {
			if isBodyTooLarge(ferr) {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
				return
			}
			response.BadRequest(c, 10001, "缺少上传文件 file")
			return
		}
		f, ferr := fh.Open()
		if ferr != nil {
			response.BadRequest(c, 10001, "无法读取上传文件")
			return
		}
		defer f.Close()
		result, err = h.studentSvc.ImportFile(c.Request.Context(), fh.Filename, f)
	} else {
		var req dto.ImportStudentsRequest
		if !bindJSON(c, &req) {
			return
		}
		result, err = h.studentSvc.ImportText(c.Request.Context(), *req.CSVContent)
	}

	if err != nil {
		h.handleImportError(c, err)
		return
	}
	response.OK(c, result)
}

// Me 学生本人的信息、成绩、评语与统计
// GET /api/student/me
func (h *StudentHandler) Me(c *gin.Context) {
	student, ok := MustGetStudent(c)
	if !ok {
		return
	}

	result, err := h.studentSvc.Dashboard(c.Request.Context(), student)
	if err != nil {
		handleStudentError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *StudentHandler) handleImportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMalformedRow):
		response.BadRequest(c, 20204, err.Error())
	case errors.Is(err, service.ErrEmptyRoster):
		response.BadRequest(c, 20204, "名册内容为空")
	case errors.Is(err, service.ErrImportTooManyRows):
		response.BadRequest(c, 20205, err.Error())
	case errors.Is(err, service.ErrImportUnsupportedFile):
		response.BadRequest(c, 20206, "仅支持 .csv 或 .xlsx 文件")
	case errors.Is(err, service.ErrStudentExists):
		response.Conflict(c, 20203, "学生已存在，请重试")
	case isBodyTooLarge(err):
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
