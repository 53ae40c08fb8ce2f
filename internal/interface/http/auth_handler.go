package httpapi

import (
	"errors"
	"log"
	"net/http"

	appaccess "video-vault/internal/application/access"
	"video-vault/internal/domain/access"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleAuth(c *gin.Context) {
	var body struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		jsonError(c, http.StatusBadRequest, errCodeBadRequest, "Password is required")
		return
	}

	existing, _ := c.Cookie(sessionCookieName)
	res, err := s.loginUC.Execute(c.Request.Context(), appaccess.LoginInput{
		Password:      body.Password,
		Identity:      c.ClientIP(),
		ExistingToken: existing,
	})
	if err != nil {
		switch {
		case errors.Is(err, access.ErrRateLimited):
			jsonError(c, http.StatusTooManyRequests, errCodeRateLimited, "Too many attempts. Please try again later.")
		case errors.Is(err, access.ErrPasswordRequired):
			jsonError(c, http.StatusBadRequest, errCodeBadRequest, "Password is required")
		case errors.Is(err, access.ErrNotConfigured):
			log.Printf("[Auth] refused login: %v", err)
			jsonError(c, http.StatusInternalServerError, errCodeServerConfig, "Server configuration error")
		default:
			// 概括訊息：不透露是組態缺漏還是密語錯誤以外的內部原因
			log.Printf("[Auth] login failure from %s: %v", c.ClientIP(), err)
			jsonError(c, http.StatusUnauthorized, errCodeInvalidPassword, "Invalid password")
		}
		return
	}

	s.setSessionCookie(c, res.Session.Token, res.Session.ExpiresAt)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleLogout(c *gin.Context) {
	token, _ := c.Cookie(sessionCookieName)
	s.logoutUC.Execute(token)
	s.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleConfig(c *gin.Context) {
	authenticated := false
	if token, err := c.Cookie(sessionCookieName); err == nil {
		if sess, ok := s.store.Get(token); ok {
			authenticated = sess.Authenticated
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"isPublic":        s.authz.Public(),
		"isAuthenticated": authenticated,
	})
}
