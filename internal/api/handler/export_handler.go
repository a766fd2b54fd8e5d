package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/KarthikeyanSA369/LearnExa/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 成绩报告导出
type ExportHandler struct {
	studentSvc service.StudentService
	exportSvc  service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(studentSvc service.StudentService, exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{studentSvc: studentSvc, exportSvc: exportSvc}
}

// Report 下载学生成绩报告
// GET /api/students/:id/report
func (h *ExportHandler) Report(c *gin.Context) {
	student, ok := loadScopedStudent(c, h.studentSvc)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportReport(c.Request.Context(), student)
	if err != nil {
		handleStudentError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
