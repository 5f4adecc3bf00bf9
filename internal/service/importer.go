package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"gorm.io/gorm"

	"github.com/user/cineexplorer/internal/model"
)

// ImportStats 导入结果：每张表的成功行数与因外键无效被过滤的行数
type ImportStats struct {
	Inserted map[string]int64 `json:"inserted"`
	Filtered map[string]int64 `json:"filtered"`
}

// ImporterService CSV 导入服务
// 先导入主表（movies、persons），再用其主键集合过滤关联表中的孤儿行
type ImporterService struct {
	db        *gorm.DB
	dir       string
	batchSize int
}

// NewImporterService 创建导入服务
func NewImporterService(db *gorm.DB, dir string) *ImporterService {
	return &ImporterService{db: db, dir: dir, batchSize: 1000}
}

// Run 导入全部十一张关系表
func (s *ImporterService) Run(ctx context.Context) (*ImportStats, error) {
	stats := &ImportStats{
		Inserted: make(map[string]int64),
		Filtered: make(map[string]int64),
	}

	validMids := make(map[string]bool)
	validPids := make(map[string]bool)

	// 主表
	if err := s.importFile(ctx, "movies.csv", stats, "movies", func(rec []string) (interface{}, bool) {
		if rec[0] == "" {
			return nil, false
		}
		validMids[rec[0]] = true
		return &model.Movie{
			Mid:            rec[0],
			TitleType:      field(rec, 1),
			PrimaryTitle:   field(rec, 2),
			OriginalTitle:  field(rec, 3),
			IsAdult:        parseBoolPtr(field(rec, 4)),
			StartYear:      parseIntPtr(field(rec, 5)),
			EndYear:        parseIntPtr(field(rec, 6)),
			RuntimeMinutes: parseIntPtr(field(rec, 7)),
		}, true
	}); err != nil {
		return stats, err
	}

	if err := s.importFile(ctx, "persons.csv", stats, "persons", func(rec []string) (interface{}, bool) {
		if rec[0] == "" {
			return nil, false
		}
		validPids[rec[0]] = true
		return &model.Person{
			Pid:         rec[0],
			PrimaryName: field(rec, 1),
			BirthYear:   parseIntPtr(field(rec, 2)),
			DeathYear:   parseIntPtr(field(rec, 3)),
		}, true
	}); err != nil {
		return stats, err
	}

	// 关联表：外键无效的行直接过滤
	if err := s.importFile(ctx, "ratings.csv", stats, "ratings", func(rec []string) (interface{}, bool) {
		if !validMids[rec[0]] {
			return nil, false
		}
		avg, _ := strconv.ParseFloat(field(rec, 1), 64)
		votes, _ := strconv.Atoi(field(rec, 2))
		return &model.Rating{Mid: rec[0], AverageRating: avg, NumVotes: votes}, true
	}); err != nil {
		return stats, err
	}

	if err := s.importFile(ctx, "genres.csv", stats, "genres", func(rec []string) (interface{}, bool) {
		if !validMids[rec[0]] || field(rec, 1) == "" {
			return nil, false
		}
		return &model.Genre{Mid: rec[0], Genre: rec[1]}, true
	}); err != nil {
		return stats, err
	}

	if err := s.importFile(ctx, "directors.csv", stats, "directors", func(rec []string) (interface{}, bool) {
		if !validMids[rec[0]] || !validPids[field(rec, 1)] {
			return nil, false
		}
		return &model.Director{Mid: rec[0], Pid: rec[1]}, true
	}); err != nil {
		return stats, err
	}

	if err := s.importFile(ctx, "writers.csv", stats, "writers", func(rec []string) (interface{}, bool) {
		if !validMids[rec[0]] || !validPids[field(rec, 1)] {
			return nil, false
		}
		return &model.Writer{Mid: rec[0], Pid: rec[1]}, true
	}); err != nil {
		return stats, err
	}

	if err := s.importFile(ctx, "characters.csv", stats, "characters", func(rec []string) (interface{}, bool) {
		if !validMids[rec[0]] || !validPids[field(rec, 1)] {
			return nil, false
		}
		return &model.Character{Mid: rec[0], Pid: rec[1], Name: field(rec, 2)}, true
	}); err != nil {
		return stats, err
	}

	if err := s.importFile(ctx, "principals.csv", stats, "principals", func(rec []string) (interface{}, bool) {
		if !validMids[rec[0]] || !validPids[field(rec, 2)] {
			return nil, false
		}
		ordering, _ := strconv.Atoi(field(rec, 1))
		return &model.Principal{
			Mid:        rec[0],
			Ordering:   ordering,
			Pid:        rec[2],
			Category:   field(rec, 3),
			Job:        field(rec, 4),
			Characters: field(rec, 5),
		}, true
	}); err != nil {
		return stats, err
	}

	if err := s.importFile(ctx, "titles.csv", stats, "titles", func(rec []string) (interface{}, bool) {
		if !validMids[rec[0]] {
			return nil, false
		}
		ordering, _ := strconv.Atoi(field(rec, 1))
		return &model.Title{
			Mid:             rec[0],
			Ordering:        ordering,
			Title:           field(rec, 2),
			Region:          field(rec, 3),
			Language:        field(rec, 4),
			Types:           field(rec, 5),
			Attributes:      field(rec, 6),
			IsOriginalTitle: parseBoolPtr(field(rec, 7)),
		}, true
	}); err != nil {
		return stats, err
	}

	if err := s.importFile(ctx, "professions.csv", stats, "professions", func(rec []string) (interface{}, bool) {
		if !validPids[rec[0]] || field(rec, 1) == "" {
			return nil, false
		}
		return &model.Profession{Pid: rec[0], JobName: rec[1]}, true
	}); err != nil {
		return stats, err
	}

	if err := s.importFile(ctx, "knownformovies.csv", stats, "knownformovies", func(rec []string) (interface{}, bool) {
		if !validPids[rec[0]] || !validMids[field(rec, 1)] {
			return nil, false
		}
		return &model.KnownForMovie{Pid: rec[0], Mid: rec[1]}, true
	}); err != nil {
		return stats, err
	}

	return stats, nil
}

// importFile 流式读取一个 CSV 文件并分批插入
func (s *ImporterService) importFile(ctx context.Context, filename string, stats *ImportStats, table string, parse func([]string) (interface{}, bool)) error {
	path := filepath.Join(s.dir, filename)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("打开 %s 失败: %w", filename, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// 跳过表头
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}

	batch := make([]interface{}, 0, s.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, row := range batch {
				if err := tx.Create(row).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("写入 %s 失败: %w", table, err)
		}
		stats.Inserted[table] += int64(len(batch))
		batch = batch[:0]
		return nil
	}

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("读取 %s 失败: %w", filename, err)
		}
		if len(rec) == 0 {
			continue
		}
		row, ok := parse(rec)
		if !ok {
			stats.Filtered[table]++
			continue
		}
		batch = append(batch, row)
		if len(batch) >= s.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}

	log.Printf("[Importer] %s: 导入 %d 行，过滤 %d 行", table, stats.Inserted[table], stats.Filtered[table])
	return nil
}

func field(rec []string, i int) string {
	if i < len(rec) {
		v := rec[i]
		if v == `\N` {
			return ""
		}
		return v
	}
	return ""
}

func parseIntPtr(v string) *int {
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func parseBoolPtr(v string) *bool {
	if v == "" {
		return nil
	}
	b := v == "1" || v == "true" || v == "True"
	return &b
}
