package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/yuanfantuan/voiceorder/internal/application/dialogue"
	"github.com/yuanfantuan/voiceorder/internal/domain/catalog"
	"github.com/yuanfantuan/voiceorder/internal/infrastructure/parser"
	persistence "github.com/yuanfantuan/voiceorder/internal/infrastructure/persistence/session"
	"github.com/yuanfantuan/voiceorder/internal/infrastructure/routing"
)

// voiceorder-cli 是點餐引擎的本機試吃工具：不開 HTTP，不接 LLM，
// 直接用內建菜單和記憶體會話跑一輪一輪的對話。
func main() {
	cat, err := loadCatalog()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	router := routing.NewCompositeRouter(cat, routing.NewKeywordRouter(cat), nil)
	clarifier, err := dialogue.NewClarifier(nil, 0, 0)
	if err != nil {
		log.Fatalf("Failed to build clarifier: %v", err)
	}
	manager := dialogue.NewManager(cat, router, parser.NewSet(cat), persistence.NewMemoryRepository(), clarifier)

	rl, err := readline.New("點餐> ")
	if err != nil {
		log.Fatalf("Failed to init readline: %v", err)
	}
	defer rl.Close()

	sessionID := uuid.NewString()
	fmt.Printf("歡迎光臨！（會話 %s，輸入 exit 離開）\n", sessionID[:8])

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				fmt.Println("下次再來！")
				return
			}
			log.Fatalf("Readline failed: %v", err)
		}

		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			fmt.Println("下次再來！")
			return
		}

		reply, err := manager.Process(context.Background(), sessionID, text)
		if err != nil {
			log.Printf("process failed: %v", err)
			continue
		}
		fmt.Println(reply.Text)

		// 結帳後換新會話，接著點下一單
		if reply.Done {
			sessionID = uuid.NewString()
			fmt.Printf("（新會話 %s）\n", sessionID[:8])
		}
	}
}

func loadCatalog() (*catalog.Catalog, error) {
	if path := os.Getenv("VOICEORDER_CATALOG_PATH"); path != "" {
		return catalog.Load(path)
	}
	return catalog.Default(), nil
}
