package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/user/cineexplorer/internal/config"
)

// 连接探活工具：确认数据库可达并打印核心表行数
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}
	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("打开数据库失败: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		fmt.Println("数据库连接: 失败")
		log.Fatalf("ping 失败: %v", err)
	}
	fmt.Println("数据库连接: 正常")

	tables := []string{
		"movies", "persons", "ratings", "genres",
		"directors", "writers", "characters", "principals",
		"titles", "professions", "knownformovies", "movie_documents",
	}

	exitCode := 0
	for _, table := range tables {
		var count int64
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			fmt.Printf("%-16s 不可用: %v\n", table, err)
			exitCode = 1
			continue
		}
		fmt.Printf("%-16s %d 行\n", table, count)
	}
	os.Exit(exitCode)
}
