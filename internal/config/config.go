package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config 应用配置
type Config struct {
	Env          string
	DatabaseURL  string
	Port         string
	SiteName     string
	BatchSize    int // 聚合重建批量写入大小
	BuildWorkers int // 聚合重建并发 worker 数
	CSVDir       string
}

// Load 加载配置
func Load() *Config {
	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "cineexplorer")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	batchSize, _ := strconv.Atoi(getEnv("REBUILD_BATCH_SIZE", "500"))
	if batchSize <= 0 {
		batchSize = 500
	}
	workers, _ := strconv.Atoi(getEnv("REBUILD_WORKERS", "4"))
	if workers <= 0 {
		workers = 1
	}

	return &Config{
		Env:          getEnv("APP_ENV", "development"),
		DatabaseURL:  dbURL,
		Port:         getEnv("PORT", "5005"),
		SiteName:     getEnv("SITE_NAME", "CineExplorer"),
		BatchSize:    batchSize,
		BuildWorkers: workers,
		CSVDir:       getEnv("CSV_DIR", "./data/csv"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
