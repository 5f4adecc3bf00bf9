package query

import (
	"context"
	"sort"
	"strings"

	"github.com/user/cineexplorer/internal/model"
	"github.com/user/cineexplorer/internal/repository"
)

// Document 基于聚合文档模型的执行策略
// 对 movie_documents 做批式扫描，在内存中完成过滤、分组与排序。
// Q7 例外：聚合文档不内嵌代表作数据，结构不足以支撑该查询，
// 因此退回关系模型执行（调用方无感知）
type Document struct {
	docRepo   *repository.DocumentRepository
	rel       *Relational
	batchSize int
}

// NewDocument 创建文档模型策略
func NewDocument(docRepo *repository.DocumentRepository, rel *Relational) *Document {
	return &Document{docRepo: docRepo, rel: rel, batchSize: 500}
}

func matchName(name, sub string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(sub))
}

// scan 遍历全部聚合文档
func (s *Document) scan(ctx context.Context, fn func(doc *model.MovieDocument)) error {
	return s.docRepo.ScanInBatches(ctx, s.batchSize, func(docs []model.MovieDocument) error {
		for i := range docs {
			fn(&docs[i])
		}
		return nil
	})
}

// yearLess 年份升序，缺失排最后
func yearLess(a, b *int) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return 1
	}
	if b == nil {
		return -1
	}
	if *a < *b {
		return -1
	}
	if *a > *b {
		return 1
	}
	return 0
}

// Filmography Q1
func (s *Document) Filmography(ctx context.Context, name string) ([]FilmographyRow, error) {
	var rows []FilmographyRow
	err := s.scan(ctx, func(doc *model.MovieDocument) {
		for _, member := range doc.Cast {
			if matchName(member.Name, name) {
				rows = append(rows, FilmographyRow{Title: doc.Title, Year: doc.Year})
				break // 每部电影投影一行，与关系侧 DISTINCT 对齐
			}
		}
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if c := yearLess(rows[i].Year, rows[j].Year); c != 0 {
			return c < 0
		}
		return rows[i].Title < rows[j].Title
	})
	return rows, nil
}

// TopByGenre Q2
func (s *Document) TopByGenre(ctx context.Context, genre string, yearMin, yearMax, n int) ([]TopRow, error) {
	var rows []TopRow
	err := s.scan(ctx, func(doc *model.MovieDocument) {
		if doc.Rating == nil || doc.Year == nil {
			return
		}
		if *doc.Year < yearMin || *doc.Year > yearMax {
			return
		}
		for _, g := range doc.Genres {
			if g == genre {
				rows = append(rows, TopRow{Title: doc.Title, Rating: doc.Rating.Average})
				return
			}
		}
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Rating != rows[j].Rating {
			return rows[i].Rating > rows[j].Rating
		}
		return rows[i].Title < rows[j].Title
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

// MultiRoles Q3: cast 条目内嵌的角色名就是该 (电影, 人物) 的全部角色
func (s *Document) MultiRoles(ctx context.Context, name string) ([]MultiRoleRow, error) {
	var rows []MultiRoleRow
	err := s.scan(ctx, func(doc *model.MovieDocument) {
		// 同一人物可能有多条 cast 记录（不同演职类别），按 pid 去重
		seen := make(map[string]bool)
		for _, member := range doc.Cast {
			if seen[member.PersonID] || !matchName(member.Name, name) {
				continue
			}
			seen[member.PersonID] = true
			if n := distinctCount(member.Characters); n > 1 {
				rows = append(rows, MultiRoleRow{Title: doc.Title, RoleCount: n})
			}
		}
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].RoleCount != rows[j].RoleCount {
			return rows[i].RoleCount > rows[j].RoleCount
		}
		return rows[i].Title < rows[j].Title
	})
	return rows, nil
}

func distinctCount(values []string) int {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return len(set)
}

// Collaborations Q4
func (s *Document) Collaborations(ctx context.Context, name string) ([]CollaborationRow, error) {
	type director struct {
		name  string
		count int
	}
	counts := make(map[string]*director)
	err := s.scan(ctx, func(doc *model.MovieDocument) {
		billed := false
		for _, member := range doc.Cast {
			if matchName(member.Name, name) {
				billed = true
				break
			}
		}
		if !billed {
			return
		}
		for _, d := range doc.Directors {
			if entry, ok := counts[d.PersonID]; ok {
				entry.count++
			} else {
				counts[d.PersonID] = &director{name: d.Name, count: 1}
			}
		}
	})
	if err != nil {
		return nil, err
	}
	rows := make([]CollaborationRow, 0, len(counts))
	for _, d := range counts {
		rows = append(rows, CollaborationRow{DirectorName: d.name, FilmCount: d.count})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].FilmCount != rows[j].FilmCount {
			return rows[i].FilmCount > rows[j].FilmCount
		}
		return rows[i].DirectorName < rows[j].DirectorName
	})
	return rows, nil
}

// QualityGenres Q5
func (s *Document) QualityGenres(ctx context.Context) ([]QualityGenreRow, error) {
	type acc struct {
		sum   float64
		count int
	}
	byGenre := make(map[string]*acc)
	err := s.scan(ctx, func(doc *model.MovieDocument) {
		if doc.Rating == nil {
			return
		}
		for _, g := range doc.Genres {
			if entry, ok := byGenre[g]; ok {
				entry.sum += doc.Rating.Average
				entry.count++
			} else {
				byGenre[g] = &acc{sum: doc.Rating.Average, count: 1}
			}
		}
	})
	if err != nil {
		return nil, err
	}
	rows := make([]QualityGenreRow, 0, len(byGenre))
	for genre, a := range byGenre {
		mean := a.sum / float64(a.count)
		if mean > 7.0 && a.count > 50 {
			rows = append(rows, QualityGenreRow{Genre: genre, MeanRating: mean, FilmCount: a.count})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].MeanRating != rows[j].MeanRating {
			return rows[i].MeanRating > rows[j].MeanRating
		}
		return rows[i].Genre < rows[j].Genre
	})
	return rows, nil
}

// GenreRanking Q6
func (s *Document) GenreRanking(ctx context.Context) ([]GenreRankRow, error) {
	type entry struct {
		mid    string
		title  string
		rating float64
	}
	byGenre := make(map[string][]entry)
	err := s.scan(ctx, func(doc *model.MovieDocument) {
		if doc.Rating == nil {
			return
		}
		for _, g := range doc.Genres {
			byGenre[g] = append(byGenre[g], entry{mid: doc.ID, title: doc.Title, rating: doc.Rating.Average})
		}
	})
	if err != nil {
		return nil, err
	}

	genres := make([]string, 0, len(byGenre))
	for g := range byGenre {
		genres = append(genres, g)
	}
	sort.Strings(genres)

	var rows []GenreRankRow
	for _, g := range genres {
		entries := byGenre[g]
		// 评分降序，并列按 mid 的输入序（扫描按 mid 有序，稳定排序保持）
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].rating > entries[j].rating
		})
		for i, e := range entries {
			if i >= 3 {
				break
			}
			rows = append(rows, GenreRankRow{Genre: g, Title: e.title, Rating: e.rating, Rank: i + 1})
		}
	}
	return rows, nil
}

// Breakouts Q7: 聚合文档不含代表作关联，退回关系模型
func (s *Document) Breakouts(ctx context.Context) ([]BreakoutRow, error) {
	return s.rel.Breakouts(ctx)
}

// DirectorGenres Q8
func (s *Document) DirectorGenres(ctx context.Context, name string) ([]DirectorGenreRow, error) {
	var rows []DirectorGenreRow
	err := s.scan(ctx, func(doc *model.MovieDocument) {
		if doc.Rating == nil {
			return
		}
		matched := false
		for _, d := range doc.Directors {
			if matchName(d.Name, name) {
				matched = true
				break
			}
		}
		if !matched {
			return
		}
		for _, g := range doc.Genres {
			rows = append(rows, DirectorGenreRow{
				Genre:  g,
				Title:  doc.Title,
				Rating: doc.Rating.Average,
				Votes:  doc.Rating.Votes,
				Year:   doc.Year,
			})
		}
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Genre != rows[j].Genre {
			return rows[i].Genre < rows[j].Genre
		}
		if rows[i].Rating != rows[j].Rating {
			return rows[i].Rating > rows[j].Rating
		}
		return rows[i].Title < rows[j].Title
	})
	return rows, nil
}
