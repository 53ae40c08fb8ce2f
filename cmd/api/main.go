package main

import (
	"log"
	"net/http"
	"os"

	"video-vault/internal/infrastructure/config"
	httpapi "video-vault/internal/interface/http"
)

func main() {
	cfg, err := config.LoadFromFile("config.yaml")
	if err != nil {
		log.Fatalf("CRITICAL: load config failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("CRITICAL: invalid config: %v", err)
	}
	log.Printf("configuration loaded (addr=%s public=%v hardened=%v storage_configured=%v)",
		cfg.HTTP.Addr, cfg.Public, cfg.Hardened, cfg.Storage.Configured())

	// 檢查前端目錄是否存在
	if _, err := os.Stat(cfg.HTTP.WebDir); os.IsNotExist(err) {
		log.Printf("warning: %q directory not found in current directory", cfg.HTTP.WebDir)
	}

	apiServer := httpapi.NewServer(cfg)
	log.Printf("starting HTTP server on %s", cfg.HTTP.Addr)
	if err := http.ListenAndServe(cfg.HTTP.Addr, apiServer.Handler()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
