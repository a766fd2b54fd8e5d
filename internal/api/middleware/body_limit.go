package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KarthikeyanSA369/LearnExa/pkg/response"
)

// BodyLimit 请求体大小限制中间件
// 声明的 Content-Length 超限直接拒绝；其余情况由 MaxBytesReader 在读取时截断，
// Handler 通过 *http.MaxBytesError 识别并返回 413
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
