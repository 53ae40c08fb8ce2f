package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 儲存 HTTP API、認證與物件儲存的執行設定。
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
	Storage StorageConfig `yaml:"storage"`

	// Public 為 true 時所有讀取路徑略過存取控制。啟動後不再變更。
	Public bool `yaml:"public"`
	// Hardened 表示硬化部署：未設定密碼雜湊即視為組態錯誤。
	Hardened bool `yaml:"hardened"`
}

type HTTPConfig struct {
	Addr   string `yaml:"addr"`
	WebDir string `yaml:"web_dir"`
}

type AuthConfig struct {
	PasswordHash  string        `yaml:"password_hash"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	AttemptWindow time.Duration `yaml:"attempt_window"`
	AttemptLimit  int           `yaml:"attempt_limit"`
}

type StorageConfig struct {
	AccountID       string        `yaml:"account_id"`
	AccessKeyID     string        `yaml:"access_key_id"`
	SecretAccessKey string        `yaml:"secret_access_key"`
	Bucket          string        `yaml:"bucket"`
	Endpoint        string        `yaml:"endpoint"`
	VideoKey        string        `yaml:"video_key"`
	URLTTL          time.Duration `yaml:"url_ttl"`
}

// Configured 檢查簽名所需的儲存憑證是否齊全。
func (s StorageConfig) Configured() bool {
	return s.AccountID != "" && s.AccessKeyID != "" && s.SecretAccessKey != "" && s.Bucket != ""
}

// LoadFromFile 從 YAML 組態檔載入設定。
func LoadFromFile(path string) (Config, error) {
	// 嘗試載入 .env 檔案（如果存在）
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg = applyDefaults(cfg)
	cfg = applyEnv(cfg)
	return cfg, nil
}

// Validate 在啟動時攔下致命的組態缺漏，避免執行中才默默放行。
func (c Config) Validate() error {
	if c.Hardened && !c.Public && c.Auth.PasswordHash == "" {
		return errors.New("hardened deployment requires auth.password_hash (or PASSWORD_HASH)")
	}
	return nil
}

func applyDefaults(cfg Config) Config {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":3000"
	}
	if cfg.HTTP.WebDir == "" {
		cfg.HTTP.WebDir = "web"
	}
	if cfg.Auth.SessionTTL == 0 {
		cfg.Auth.SessionTTL = 24 * time.Hour
	}
	if cfg.Auth.AttemptWindow == 0 {
		cfg.Auth.AttemptWindow = time.Minute
	}
	if cfg.Auth.AttemptLimit == 0 {
		cfg.Auth.AttemptLimit = 10
	}
	if cfg.Storage.VideoKey == "" {
		cfg.Storage.VideoKey = "the-last-paideia.mp4"
	}
	if cfg.Storage.URLTTL == 0 {
		cfg.Storage.URLTTL = time.Hour
	}
	return cfg
}

func applyEnv(cfg Config) Config {
	if val := os.Getenv("HTTP_ADDR"); val != "" {
		cfg.HTTP.Addr = val
	}
	if val := os.Getenv("PORT"); val != "" {
		cfg.HTTP.Addr = ":" + val
	}
	if val := os.Getenv("WEB_DIR"); val != "" {
		cfg.HTTP.WebDir = val
	}
	if val := os.Getenv("PASSWORD_HASH"); val != "" {
		cfg.Auth.PasswordHash = val
	}
	if val := os.Getenv("SESSION_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Auth.SessionTTL = d
		}
	}
	if val := os.Getenv("R2_ACCOUNT_ID"); val != "" {
		cfg.Storage.AccountID = val
	}
	if val := os.Getenv("R2_ACCESS_KEY_ID"); val != "" {
		cfg.Storage.AccessKeyID = val
	}
	if val := os.Getenv("R2_SECRET_ACCESS_KEY"); val != "" {
		cfg.Storage.SecretAccessKey = val
	}
	if val := os.Getenv("R2_BUCKET_NAME"); val != "" {
		cfg.Storage.Bucket = val
	}
	if val := os.Getenv("R2_ENDPOINT"); val != "" {
		cfg.Storage.Endpoint = val
	}
	if val := os.Getenv("VIDEO_KEY"); val != "" {
		cfg.Storage.VideoKey = val
	}
	if val := os.Getenv("IS_PUBLIC"); val != "" {
		cfg.Public = (val == "true")
	}
	if val := os.Getenv("APP_ENV"); val != "" {
		cfg.Hardened = (val == "production")
	}
	return cfg
}
