// 写入初始数据（分院、账号、科目、单元、题目）
//
// 用法: go run scripts/seed.go [-config configs] [-file scripts/seed.yaml]

package main

import (
	"flag"
	"institute_backend/internal/config"
	"institute_backend/pkg/database"
	"institute_backend/pkg/logger"
	"log"

	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	seedFile := flag.String("file", "scripts/seed.yaml", "种子数据文件")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}
	// 种子数据依赖表结构
	cfg.ForceMigrate = true

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	fixture, err := database.LoadSeedFile(*seedFile)
	if err != nil {
		log.Fatalf("读取种子数据失败: %v", err)
	}

	seeded, err := database.Seed(db, fixture)
	if err != nil {
		logger.Log.Fatal("seed failed", zap.Error(err))
	}
	if !seeded {
		log.Println("数据库已有用户，跳过")
		return
	}
	log.Printf("完成！%d 个分院，%d 个用户，%d 个科目", len(fixture.Branches), len(fixture.Users), len(fixture.Subjects))
}
