package httpapi

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	appaccess "video-vault/internal/application/access"
	"video-vault/internal/infra/memory"
	authinfra "video-vault/internal/infrastructure/auth"
	"video-vault/internal/infrastructure/config"
	"video-vault/internal/infrastructure/storage"

	"github.com/gin-gonic/gin"
)

const (
	errCodeBadRequest      = "BAD_REQUEST"
	errCodeInvalidPassword = "AUTH_INVALID_PASSWORD"
	errCodeUnauthorized    = "AUTH_UNAUTHORIZED"
	errCodeRateLimited     = "RATE_LIMITED"
	errCodeServerConfig    = "SERVER_CONFIG"
	errCodeIssuanceFailed  = "ISSUANCE_FAILED"
	errCodeNotFound        = "NOT_FOUND"

	sessionCookieName = "vault_session"
)

// Server 封裝 HTTP 路由與依賴。
type Server struct {
	engine    *gin.Engine
	store     *memory.Store
	loginUC   *appaccess.LoginUseCase
	logoutUC  *appaccess.LogoutUseCase
	videoUC   *appaccess.VideoURLUseCase
	authz     *appaccess.Authorizer
	cfg       config.Config
	storageOK bool
}

// NewServer 建立 API 伺服器。未設定儲存憑證時退回本機備援簽發器。
func NewServer(cfg config.Config) *Server {
	store := memory.NewStore(cfg.Auth.SessionTTL, cfg.Auth.AttemptWindow, cfg.Auth.AttemptLimit)

	var issuer appaccess.URLIssuer
	storageOK := cfg.Storage.Configured()
	if storageOK {
		issuer = storage.NewR2Presigner(storage.Config{
			AccountID:       cfg.Storage.AccountID,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			Endpoint:        cfg.Storage.Endpoint,
		})
	} else {
		issuer = storage.LocalIssuer{}
		log.Printf("[Storage] no credentials configured; serving local fallback video")
	}

	if cfg.Auth.PasswordHash == "" && !cfg.Hardened && !cfg.Public {
		log.Printf("[Auth] warning: no password hash configured; development mode accepts any passphrase")
	}

	s := &Server{
		store:     store,
		loginUC:   appaccess.NewLoginUseCase(store, store, authinfra.BcryptHasher{}, cfg.Auth.PasswordHash, cfg.Hardened),
		logoutUC:  appaccess.NewLogoutUseCase(store),
		videoUC:   appaccess.NewVideoURLUseCase(issuer, cfg.Storage.VideoKey, cfg.Storage.URLTTL),
		authz:     appaccess.NewAuthorizer(cfg.Public, store),
		cfg:       cfg,
		storageOK: storageOK,
	}
	s.engine = s.buildEngine()
	return s
}

// Handler 回傳路由處理器，供 HTTP server 掛載。
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) buildEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	e := gin.New()
	e.Use(gin.Recovery(), s.requestLogger(), secureHeaders(), s.generalRateLimit())

	e.GET("/api/config", s.handleConfig)
	e.GET("/api/health", s.handleHealth)
	e.POST("/api/auth", s.handleAuth)
	e.POST("/api/logout", s.handleLogout)
	e.GET("/api/video-url", s.requireAuth, s.handleVideoURL)
	e.GET("/video/local", s.requireAuth, s.handleLocalVideo)
	e.GET("/view", s.handleView)

	// 前端靜態頁面：catch-all 交給 web 目錄，找不到時退回 index.html
	e.NoRoute(s.handleStatic)
	return e
}

func (s *Server) handleStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		jsonError(c, http.StatusNotFound, errCodeNotFound, "not found")
		return
	}
	// Clean 擋掉路徑跳脫
	rel := filepath.Clean("/" + c.Request.URL.Path)
	path := filepath.Join(s.cfg.HTTP.WebDir, rel)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		c.File(path)
		return
	}
	index := filepath.Join(s.cfg.HTTP.WebDir, "index.html")
	if _, err := os.Stat(index); err == nil {
		c.File(index)
		return
	}
	jsonError(c, http.StatusNotFound, errCodeNotFound, "not found")
}
