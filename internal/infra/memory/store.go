package memory

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"video-vault/internal/domain/access"
)

const (
	defaultSessionTTL    = 24 * time.Hour
	defaultAttemptWindow = time.Minute
	defaultAttemptLimit  = 10
)

// Store 為單一程序使用的記憶體狀態：token 對應 session、
// 客戶端識別對應嘗試視窗。兩張表各自獨立鍵控，過期一律在讀取時懶惰清除。
type Store struct {
	mu       sync.Mutex
	sessions map[string]sessionRecord
	attempts map[string]attemptRecord

	sessionTTL    time.Duration
	attemptWindow time.Duration
	attemptLimit  int
	now           func() time.Time
}

type sessionRecord struct {
	Authenticated bool
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

type attemptRecord struct {
	WindowStart time.Time
	Count       int
}

// NewStore 建立空白的記憶體 Store，零值參數套用預設。
func NewStore(sessionTTL, attemptWindow time.Duration, attemptLimit int) *Store {
	if sessionTTL == 0 {
		sessionTTL = defaultSessionTTL
	}
	if attemptWindow == 0 {
		attemptWindow = defaultAttemptWindow
	}
	if attemptLimit == 0 {
		attemptLimit = defaultAttemptLimit
	}
	return &Store{
		sessions:      make(map[string]sessionRecord),
		attempts:      make(map[string]attemptRecord),
		sessionTTL:    sessionTTL,
		attemptWindow: attemptWindow,
		attemptLimit:  attemptLimit,
		now:           time.Now,
	}
}

// SessionStore impl

// Create 產生未認證的新 session，token 為 32 bytes 的加密亂數。
func (s *Store) Create() (access.Session, error) {
	token, err := randomToken()
	if err != nil {
		return access.Session{}, fmt.Errorf("generate session token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	rec := sessionRecord{
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	s.sessions[token] = rec
	return access.Session{
		Token:     token,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

// Get 查詢 session，已過期的視同不存在並順手清除。
func (s *Store) Get(token string) (access.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[token]
	if !ok {
		return access.Session{}, false
	}
	if !s.now().Before(rec.ExpiresAt) {
		delete(s.sessions, token)
		return access.Session{}, false
	}
	return access.Session{
		Token:         token,
		Authenticated: rec.Authenticated,
		CreatedAt:     rec.CreatedAt,
		ExpiresAt:     rec.ExpiresAt,
	}, true
}

// Authenticate 將既有 session 標記為已認證，token 本身不變。
// 回傳 false 表示 session 不存在或已過期。
func (s *Store) Authenticate(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[token]
	if !ok {
		return false
	}
	if !s.now().Before(rec.ExpiresAt) {
		delete(s.sessions, token)
		return false
	}
	rec.Authenticated = true
	s.sessions[token] = rec
	return true
}

// Invalidate 移除 session。未知或已失效的 token 不是錯誤。
func (s *Store) Invalidate(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// AttemptStore impl

// Allow 檢查該客戶端在當前視窗內是否仍可嘗試驗證。
// 視窗一經過即視為重設，拒絕狀態恰好在視窗邊界解除。
func (s *Store) Allow(identity string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.attempts[identity]
	if !ok {
		return true
	}
	if s.windowElapsed(rec) {
		return true
	}
	return rec.Count < s.attemptLimit
}

// Record 計入一次驗證嘗試；視窗已過則開新視窗重新計數。
func (s *Store) Record(identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.attempts[identity]
	if !ok || s.windowElapsed(rec) {
		s.attempts[identity] = attemptRecord{WindowStart: s.now(), Count: 1}
		return
	}
	rec.Count++
	s.attempts[identity] = rec
}

func (s *Store) windowElapsed(rec attemptRecord) bool {
	return !s.now().Before(rec.WindowStart.Add(s.attemptWindow))
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
