package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/user/cineexplorer/internal/config"
	"github.com/user/cineexplorer/internal/repository"
	"github.com/user/cineexplorer/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}
	cfg := config.Load()

	batchSize := flag.Int("batch", cfg.BatchSize, "每批落盘的文档数")
	workers := flag.Int("workers", cfg.BuildWorkers, "批内并发构建数")
	flag.Parse()

	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	repos := repository.NewRepositories(db)
	builder := service.NewBuilderService(repos, *batchSize, *workers)

	// Ctrl+C 时取消重建，已落盘批次保留
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	written, err := builder.Rebuild(ctx, printProgress)
	fmt.Fprintln(os.Stdout)
	if err != nil {
		log.Fatalf("重建失败: %v", err)
	}
	log.Printf("重建完成，共写入 %d 份文档", written)
}

// printProgress 单行进度条，每批刷新一次
func printProgress(p service.Progress) {
	const width = 40
	filled := int(p.Fraction * width)
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	fmt.Printf("\r[%s] %d/%d (%.1f%%) %.0f 文档/秒 剩余约 %v ",
		bar, p.Processed, p.Total, p.Fraction*100, p.Rate, p.ETA.Round(time.Second))
}
