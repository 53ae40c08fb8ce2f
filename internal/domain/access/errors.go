package access

import "errors"

// 閘道層的錯誤分類。邊界依 errors.Is 對應到 HTTP 狀態與錯誤碼，
// 敏感路徑一律回覆概括訊息，內部原因只進 log。
var (
	// ErrNotConfigured 表示硬化部署缺少密碼雜湊，驗證必須整個拒絕。
	ErrNotConfigured = errors.New("password hash not configured")

	// ErrPasswordRequired 表示提交內容缺少密碼。
	ErrPasswordRequired = errors.New("password is required")

	// ErrInvalidCredentials 表示密碼比對失敗。
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRateLimited 表示該客戶端已達視窗內的嘗試上限。
	ErrRateLimited = errors.New("too many attempts")

	// ErrIssuance 表示儲存後端無法產生簽名網址，與授權失敗是不同類錯誤。
	ErrIssuance = errors.New("signed url issuance failed")
)
