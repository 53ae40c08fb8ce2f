package access

import "time"

// Session 紀錄單一客戶端的通行狀態與生命週期。
// Token 一經發出即不再變更，只有 Authenticated 與到期狀態會轉移。
type Session struct {
	Token         string
	Authenticated bool
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

// Active 檢查 session 是否仍可使用。
func (s Session) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// SessionStore 提供 session 建立/查詢/認證/作廢。
// Get 不得回傳已過期的 session；Invalidate 必須是冪等操作。
type SessionStore interface {
	Create() (Session, error)
	Get(token string) (Session, bool)
	Authenticate(token string) bool
	Invalidate(token string)
}
