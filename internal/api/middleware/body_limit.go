package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TheBadshahKid/unolo-field-force-tracker/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件
// maxBytes <= 0 表示不限制。声明的 Content-Length 超限时直接拒绝；
// 未声明长度的请求读取超限时表现为 handler 的绑定失败（400）。
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Request body too large")
			c.Abort()
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
