package access

import (
	"context"
	"fmt"
	"strings"
	"time"

	"video-vault/internal/domain/access"
)

// PasswordHasher 驗證通行密語。
type PasswordHasher interface {
	Compare(hashed, plain string) bool
}

// URLIssuer 產生限時的資產存取網址。
type URLIssuer interface {
	Issue(ctx context.Context, key string, ttl time.Duration) (access.SignedURL, error)
}

// LoginUseCase 套用嘗試限制、驗證通行密語並建立已認證 session。
type LoginUseCase struct {
	sessions access.SessionStore
	attempts access.AttemptStore
	hasher   PasswordHasher

	passwordHash string
	hardened     bool
}

func NewLoginUseCase(sessions access.SessionStore, attempts access.AttemptStore, hasher PasswordHasher, passwordHash string, hardened bool) *LoginUseCase {
	return &LoginUseCase{
		sessions:     sessions,
		attempts:     attempts,
		hasher:       hasher,
		passwordHash: passwordHash,
		hardened:     hardened,
	}
}

type LoginInput struct {
	Password string
	// Identity 為嘗試限制用的客戶端識別（IP）。
	Identity string
	// ExistingToken 為客戶端既有的 session cookie，若仍有效則沿用同一 token。
	ExistingToken string
}

type LoginResult struct {
	Session access.Session
}

// Execute 依序：嘗試限制 → 輸入檢查 → 密語比對 → session 認證。
// 每一次進到驗證路徑的請求都計入視窗，成功與否皆然。
func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (LoginResult, error) {
	var out LoginResult

	if !uc.attempts.Allow(input.Identity) {
		return out, access.ErrRateLimited
	}
	uc.attempts.Record(input.Identity)

	if strings.TrimSpace(input.Password) == "" {
		return out, access.ErrPasswordRequired
	}

	switch {
	case uc.passwordHash == "" && uc.hardened:
		// 硬化部署缺少雜湊：整個拒絕，不得默默放行
		return out, access.ErrNotConfigured
	case uc.passwordHash == "":
		// 開發備援：接受任何非空密語（啟動時已警告）
	case !uc.hasher.Compare(uc.passwordHash, input.Password):
		return out, access.ErrInvalidCredentials
	}

	if input.ExistingToken != "" {
		if sess, ok := uc.sessions.Get(input.ExistingToken); ok {
			if uc.sessions.Authenticate(sess.Token) {
				sess.Authenticated = true
				out.Session = sess
				return out, nil
			}
		}
	}

	sess, err := uc.sessions.Create()
	if err != nil {
		return out, fmt.Errorf("create session: %w", err)
	}
	uc.sessions.Authenticate(sess.Token)
	sess.Authenticated = true
	out.Session = sess
	return out, nil
}

// LogoutUseCase 作廢 session。重複登出不是錯誤。
type LogoutUseCase struct {
	sessions access.SessionStore
}

func NewLogoutUseCase(sessions access.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessions: sessions}
}

func (uc *LogoutUseCase) Execute(token string) {
	if token == "" {
		return
	}
	uc.sessions.Invalidate(token)
}

// VideoURLUseCase 對已授權的請求產生限時存取網址。
type VideoURLUseCase struct {
	issuer     URLIssuer
	defaultKey string
	ttl        time.Duration
}

func NewVideoURLUseCase(issuer URLIssuer, defaultKey string, ttl time.Duration) *VideoURLUseCase {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &VideoURLUseCase{issuer: issuer, defaultKey: defaultKey, ttl: ttl}
}

func (uc *VideoURLUseCase) Execute(ctx context.Context, key string) (access.SignedURL, error) {
	if strings.TrimSpace(key) == "" {
		key = uc.defaultKey
	}
	return uc.issuer.Issue(ctx, key, uc.ttl)
}

// Authorizer 為保護路徑的單一授權判斷：public 模式一律放行，
// 否則查詢 session 是否已認證。模式在啟動時固定。
type Authorizer struct {
	public   bool
	sessions access.SessionStore
}

func NewAuthorizer(public bool, sessions access.SessionStore) *Authorizer {
	return &Authorizer{public: public, sessions: sessions}
}

func (a *Authorizer) Public() bool {
	return a.public
}

// IsAuthorized 在 public 模式下不觸碰 session 狀態。
func (a *Authorizer) IsAuthorized(token string) bool {
	if a.public {
		return true
	}
	if token == "" {
		return false
	}
	sess, ok := a.sessions.Get(token)
	return ok && sess.Authenticated
}
