package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/user/cineexplorer/internal/model"
	"github.com/user/cineexplorer/internal/repository"
)

// Progress 重建进度快照（仅供展示，近似值）
type Progress struct {
	Processed int64         `json:"processed"`
	Total     int64         `json:"total"`
	Fraction  float64       `json:"fraction"`
	Rate      float64       `json:"rate"` // 文档/秒
	ETA       time.Duration `json:"eta"`
	Elapsed   time.Duration `json:"elapsed"`
}

// ProgressFunc 每次批量落盘后回调一次
type ProgressFunc func(Progress)

// BuilderService 聚合构建器
// 把规范化的十一张关系表整体重塑为每部电影一份的聚合文档，
// 丢弃-重建-分批落盘，绝不增量修补
type BuilderService struct {
	movieRepo  *repository.MovieRepository
	creditRepo *repository.CreditRepository
	docRepo    *repository.DocumentRepository
	batchSize  int
	workers    int
}

// NewBuilderService 创建聚合构建器
func NewBuilderService(repos *repository.Repositories, batchSize, workers int) *BuilderService {
	if batchSize <= 0 {
		batchSize = 500
	}
	if workers <= 0 {
		workers = 1
	}
	return &BuilderService{
		movieRepo:  repos.Movie,
		creditRepo: repos.Credit,
		docRepo:    repos.Document,
		batchSize:  batchSize,
		workers:    workers,
	}
}

// Rebuild 全量重建聚合存储，返回写入的文档数
// 任何连接错误都会中止当前批次并向上传播；已落盘的批次保留，
// 由下一次全量重建恢复一致性
func (s *BuilderService) Rebuild(ctx context.Context, onProgress ProgressFunc) (int64, error) {
	// 总数只用于进度估算，不参与正确性
	total, err := s.movieRepo.Count()
	if err != nil {
		return 0, fmt.Errorf("统计电影总数失败: %w", err)
	}
	log.Printf("[Builder] 开始全量重建，共 %d 部电影", total)

	start := time.Now()

	// 第一批落盘之前先丢弃旧内容，重建是替换式的
	rebuild, err := s.docRepo.BeginRebuild(ctx)
	if err != nil {
		return 0, err
	}

	var processed int64
	err = s.movieRepo.FindMidsInBatches(s.batchSize, func(mids []string) error {
		docs := make([]model.MovieDocument, len(mids))

		// 每部电影的文档独立计算，批内并发
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.workers)
		for i, mid := range mids {
			i, mid := i, mid
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				doc, err := s.BuildDocument(mid)
				if err != nil {
					return err
				}
				docs[i] = *doc
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		if err := rebuild.WriteBatch(ctx, docs); err != nil {
			return err
		}
		processed += int64(len(docs))
		if onProgress != nil {
			onProgress(snapshot(processed, total, start))
		}
		return nil
	})
	if err != nil {
		return processed, fmt.Errorf("重建中止（已写入 %d 份文档）: %w", processed, err)
	}

	log.Printf("[Builder] 重建完成，共写入 %d 份文档，耗时 %v", processed, time.Since(start).Round(time.Millisecond))
	return processed, nil
}

// BuildDocument 计算一部电影的聚合文档：七个连接 + 批量人名解析
// 文档要么完整要么不产出，绝不写出缺少子连接的半成品
func (s *BuilderService) BuildDocument(mid string) (*model.MovieDocument, error) {
	movie, err := s.movieRepo.FindByID(mid)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, fmt.Errorf("电影 %s 不存在", mid)
	}

	genres, err := s.creditRepo.GenresFor(mid)
	if err != nil {
		return nil, err
	}
	rating, err := s.creditRepo.RatingFor(mid)
	if err != nil {
		return nil, err
	}
	directors, err := s.creditRepo.DirectorsFor(mid)
	if err != nil {
		return nil, err
	}
	principals, err := s.creditRepo.PrincipalsFor(mid)
	if err != nil {
		return nil, err
	}
	characters, err := s.creditRepo.CharactersFor(mid)
	if err != nil {
		return nil, err
	}
	writers, err := s.creditRepo.WritersFor(mid)
	if err != nil {
		return nil, err
	}
	titles, err := s.creditRepo.TitlesFor(mid)
	if err != nil {
		return nil, err
	}

	// 二跳连接：本片涉及的所有 pid 一次性解析成姓名
	pidSet := make(map[string]struct{})
	for _, d := range directors {
		pidSet[d.Pid] = struct{}{}
	}
	for _, p := range principals {
		pidSet[p.Pid] = struct{}{}
	}
	for _, w := range writers {
		pidSet[w.Pid] = struct{}{}
	}
	pids := make([]string, 0, len(pidSet))
	for pid := range pidSet {
		pids = append(pids, pid)
	}
	names, err := s.creditRepo.PersonNames(pids)
	if err != nil {
		return nil, err
	}

	// 角色名按 pid 归组，作为 cast 条目的子过滤
	charsByPid := make(map[string][]string)
	for _, c := range characters {
		charsByPid[c.Pid] = append(charsByPid[c.Pid], c.Name)
	}

	doc := &model.MovieDocument{
		ID:      movie.Mid,
		Title:   movie.PrimaryTitle,
		Year:    movie.StartYear,
		Runtime: movie.RuntimeMinutes,
		Genres:  genres,
	}
	if doc.Genres == nil {
		doc.Genres = []string{}
	}
	if rating != nil {
		doc.Rating = &model.DocRating{Average: rating.AverageRating, Votes: rating.NumVotes}
	}

	doc.Directors = make([]model.DocPerson, 0, len(directors))
	for _, d := range directors {
		// 人物记录缺失的导演不进文档，与连接语义一致
		if name, ok := names[d.Pid]; ok {
			doc.Directors = append(doc.Directors, model.DocPerson{PersonID: d.Pid, Name: name})
		}
	}

	doc.Cast = make([]model.DocCastMember, 0, len(principals))
	for _, p := range principals {
		chars := charsByPid[p.Pid]
		if chars == nil {
			chars = []string{}
		}
		doc.Cast = append(doc.Cast, model.DocCastMember{
			PersonID:   p.Pid,
			Ordering:   p.Ordering,
			Name:       names[p.Pid],
			Characters: chars,
		})
	}

	doc.Writers = make([]model.DocWriter, 0, len(writers))
	for _, w := range writers {
		if name, ok := names[w.Pid]; ok {
			doc.Writers = append(doc.Writers, model.DocWriter{PersonID: w.Pid, Name: name})
		}
	}

	doc.Titles = make([]model.DocTitle, 0, len(titles))
	for _, t := range titles {
		doc.Titles = append(doc.Titles, model.DocTitle{Region: t.Region, Title: t.Title})
	}

	return doc, nil
}

func snapshot(processed, total int64, start time.Time) Progress {
	p := Progress{Processed: processed, Total: total, Elapsed: time.Since(start)}
	if total > 0 {
		p.Fraction = float64(processed) / float64(total)
	}
	if sec := p.Elapsed.Seconds(); sec > 0 {
		p.Rate = float64(processed) / sec
	}
	if p.Rate > 0 && total > processed {
		p.ETA = time.Duration(float64(total-processed) / p.Rate * float64(time.Second))
	}
	return p
}
