package repository

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/user/cineexplorer/internal/model"
)

// InitDB 初始化数据库连接
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate 建表并创建二级索引（与实体模型保持一致）
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Movie{},
		&model.Person{},
		&model.Rating{},
		&model.Genre{},
		&model.Director{},
		&model.Writer{},
		&model.Character{},
		&model.Principal{},
		&model.Title{},
		&model.Profession{},
		&model.KnownForMovie{},
		&model.MovieDocumentRow{},
	)
}

// Repositories 仓库集合
type Repositories struct {
	DB       *gorm.DB
	Movie    *MovieRepository
	Person   *PersonRepository
	Credit   *CreditRepository
	Document *DocumentRepository
	Stats    *StatsRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:       db,
		Movie:    NewMovieRepository(db),
		Person:   NewPersonRepository(db),
		Credit:   NewCreditRepository(db),
		Document: NewDocumentRepository(db),
		Stats:    NewStatsRepository(db),
	}
}
