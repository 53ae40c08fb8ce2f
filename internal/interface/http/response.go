package httpapi

import "github.com/gin-gonic/gin"

// 邊界一律回覆統一的錯誤外形；內部原因只進 log。
func jsonError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, gin.H{
		"success":    false,
		"error":      msg,
		"error_code": code,
	})
}
