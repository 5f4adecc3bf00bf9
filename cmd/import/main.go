package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"sort"
	"syscall"

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

	dir := flag.String("dir", cfg.CSVDir, "CSV 数据目录")
	flag.Parse()

	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	if err := repository.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	importer := service.NewImporterService(db, *dir)
	stats, err := importer.Run(ctx)
	if err != nil {
		log.Fatalf("导入失败: %v", err)
	}

	tables := make([]string, 0, len(stats.Inserted))
	for t := range stats.Inserted {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	for _, t := range tables {
		log.Printf("%-16s 导入 %d 行，过滤 %d 行", t, stats.Inserted[t], stats.Filtered[t])
	}
	log.Println("导入完成")
}
