package storage

import (
	"context"
	"fmt"
	"time"

	"video-vault/internal/domain/access"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config 為簽名所需的 R2/S3 相容儲存憑證。
type Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	// Endpoint 可覆寫預設的 R2 端點，供 S3 相容服務使用。
	Endpoint string
}

// R2Presigner 以儲存憑證產生限時的 GetObject 簽名網址。
// 簽章為本地運算，憑證不離開本程序。
type R2Presigner struct {
	presign *s3.PresignClient
	bucket  string
	now     func() time.Time
}

// NewR2Presigner 建立指向 R2 端點的簽名器。
func NewR2Presigner(cfg Config) *R2Presigner {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	}
	client := s3.New(s3.Options{
		Region:       "auto",
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	})
	return &R2Presigner{
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		now:     time.Now,
	}
}

// Issue 產生在 ttl 內有效的簽名網址。
func (p *R2Presigner) Issue(ctx context.Context, key string, ttl time.Duration) (access.SignedURL, error) {
	req, err := p.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return access.SignedURL{}, fmt.Errorf("%w: presign %s: %v", access.ErrIssuance, key, err)
	}
	return access.SignedURL{
		URL:       req.URL,
		Type:      access.URLTypeRemote,
		ExpiresAt: p.now().Add(ttl),
	}, nil
}

// LocalIssuer 為開發部署的備援：未設定儲存憑證時改回本機路徑。
// 這是部署便利性而非安全邊界，只有明知如此設定的操作者會走到這裡。
type LocalIssuer struct{}

func (LocalIssuer) Issue(ctx context.Context, key string, ttl time.Duration) (access.SignedURL, error) {
	return access.SignedURL{
		URL:  "/video/local",
		Type: access.URLTypeLocal,
	}, nil
}
