package httpapi

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleVideoURL(c *gin.Context) {
	out, err := s.videoUC.Execute(c.Request.Context(), c.Query("key"))
	if err != nil {
		// 簽發失敗與未授權是不同類錯誤，讓前端不會誤判成要重新登入
		log.Printf("[Video] url issuance failed: %v", err)
		jsonError(c, http.StatusInternalServerError, errCodeIssuanceFailed, "Failed to generate video URL")
		return
	}

	resp := gin.H{"url": out.URL, "type": out.Type}
	if !out.ExpiresAt.IsZero() {
		resp["expires_at"] = out.ExpiresAt.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}

// handleLocalVideo 為開發部署的本機備援，僅在未設定儲存憑證時有意義。
func (s *Server) handleLocalVideo(c *gin.Context) {
	path := filepath.Join(s.cfg.HTTP.WebDir, "video.mp4")
	if _, err := os.Stat(path); err != nil {
		jsonError(c, http.StatusNotFound, errCodeNotFound, "Video not found")
		return
	}
	c.File(path)
}

// handleView 提供播放頁，未授權時導回首頁而非回 JSON。
func (s *Server) handleView(c *gin.Context) {
	token, _ := c.Cookie(sessionCookieName)
	if !s.authz.IsAuthorized(token) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.File(filepath.Join(s.cfg.HTTP.WebDir, "player.html"))
}
