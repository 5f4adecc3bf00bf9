package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/user/cineexplorer/internal/model"
)

// DocumentRepository 聚合存储：每部电影一份 JSON 文档，按 mid 单键读取
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Rebuild 一次全量重建的显式句柄
// BeginRebuild 丢弃旧内容后返回；之后只能通过 WriteBatch 分批落盘。
// 中途放弃句柄即为中止：已写入的批次保留，存储处于部分重建状态，
// 下一次全量重建负责恢复一致性。
type Rebuild struct {
	db      *gorm.DB
	written int64
}

// BeginRebuild 开始全量重建：原子地丢弃并重建聚合表（替换式，绝不合并）
func (r *DocumentRepository) BeginRebuild(ctx context.Context) (*Rebuild, error) {
	migrator := r.db.WithContext(ctx).Migrator()
	if migrator.HasTable(&model.MovieDocumentRow{}) {
		if err := migrator.DropTable(&model.MovieDocumentRow{}); err != nil {
			return nil, fmt.Errorf("丢弃旧聚合表失败: %w", err)
		}
	}
	if err := migrator.CreateTable(&model.MovieDocumentRow{}); err != nil {
		return nil, fmt.Errorf("重建聚合表失败: %w", err)
	}
	return &Rebuild{db: r.db}, nil
}

// WriteBatch 单批写入（整批成功或整批失败）
func (t *Rebuild) WriteBatch(ctx context.Context, docs []model.MovieDocument) error {
	if len(docs) == 0 {
		return nil
	}
	rows := make([]model.MovieDocumentRow, 0, len(docs))
	for _, d := range docs {
		payload, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("序列化文档 %s 失败: %w", d.ID, err)
		}
		rows = append(rows, model.MovieDocumentRow{Mid: d.ID, Doc: payload})
	}
	if err := t.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("批量写入失败: %w", err)
	}
	t.written += int64(len(rows))
	return nil
}

// Written 已落盘的文档数
func (t *Rebuild) Written() int64 {
	return t.written
}

// FindByID 取一部电影的完整聚合文档，未找到时返回 (nil, nil)
func (r *DocumentRepository) FindByID(ctx context.Context, mid string) (*model.MovieDocument, error) {
	var row model.MovieDocumentRow
	err := r.db.WithContext(ctx).Where("mid = ?", mid).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var doc model.MovieDocument
	if err := json.Unmarshal(row.Doc, &doc); err != nil {
		return nil, fmt.Errorf("解析文档 %s 失败: %w", mid, err)
	}
	return &doc, nil
}

// RawByID 取文档原始 JSON（字节级比较用）
func (r *DocumentRepository) RawByID(ctx context.Context, mid string) ([]byte, error) {
	var row model.MovieDocumentRow
	err := r.db.WithContext(ctx).Where("mid = ?", mid).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row.Doc, nil
}

// Count 文档总数；聚合表不存在时返回 0
func (r *DocumentRepository) Count(ctx context.Context) (int64, error) {
	if !r.db.Migrator().HasTable(&model.MovieDocumentRow{}) {
		return 0, nil
	}
	var total int64
	err := r.db.WithContext(ctx).Model(&model.MovieDocumentRow{}).Count(&total).Error
	return total, err
}

// Available 聚合存储是否可用（已建表且非空）
func (r *DocumentRepository) Available(ctx context.Context) bool {
	n, err := r.Count(ctx)
	return err == nil && n > 0
}

// ScanInBatches 按批遍历全部聚合文档（文档模型查询的扫描原语）
func (r *DocumentRepository) ScanInBatches(ctx context.Context, batchSize int, fn func(docs []model.MovieDocument) error) error {
	var rows []model.MovieDocumentRow
	return r.db.WithContext(ctx).Model(&model.MovieDocumentRow{}).Order("mid").
		FindInBatches(&rows, batchSize, func(tx *gorm.DB, _ int) error {
			docs := make([]model.MovieDocument, 0, len(rows))
			for _, row := range rows {
				var doc model.MovieDocument
				if err := json.Unmarshal(row.Doc, &doc); err != nil {
					return fmt.Errorf("解析文档 %s 失败: %w", row.Mid, err)
				}
				docs = append(docs, doc)
			}
			return fn(docs)
		}).Error
}
