package access

import "time"

// AttemptRecord 紀錄單一客戶端在當前視窗內的驗證次數。
// 視窗經過後整筆重設；Count 在視窗內不得超過設定的上限。
type AttemptRecord struct {
	Identity    string
	WindowStart time.Time
	Count       int
}

// AttemptStore 以固定視窗限制每個客戶端的驗證嘗試。
// Allow 在達到上限後回傳 false，直到視窗重設為止。
type AttemptStore interface {
	Allow(identity string) bool
	Record(identity string)
}
