package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	storageStatus := "local_fallback"
	if s.storageOK {
		storageStatus = "r2"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"health":  "ok",
		"storage": storageStatus,
		"time":    time.Now().Format(time.RFC3339),
	})
}
