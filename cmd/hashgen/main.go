package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	authinfra "video-vault/internal/infrastructure/auth"
)

// 產生部署用的 bcrypt 雜湊，輸出填入 PASSWORD_HASH。
func main() {
	var plain string
	if len(os.Args) > 1 {
		plain = os.Args[1]
	} else {
		fmt.Fprint(os.Stderr, "Passphrase: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			log.Fatalf("讀取輸入失敗: %v", err)
		}
		plain = strings.TrimSpace(line)
	}
	if plain == "" {
		log.Fatal("passphrase 不得為空")
	}

	hash, err := authinfra.HashPassword(plain)
	if err != nil {
		log.Fatalf("產生雜湊失敗: %v", err)
	}
	fmt.Println(hash)
}
