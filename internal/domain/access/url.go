package access

import "time"

// URL 類型：remote 為物件儲存簽名網址，local 為本機備援路徑。
const (
	URLTypeRemote = "r2"
	URLTypeLocal  = "local"
)

// SignedURL 為一次性產生的限時存取網址。
// 有效性由儲存後端的內嵌簽章決定，本系統不保留任何對應狀態。
// 本機備援網址沒有到期時間，ExpiresAt 為零值。
type SignedURL struct {
	URL       string
	Type      string
	ExpiresAt time.Time
}
