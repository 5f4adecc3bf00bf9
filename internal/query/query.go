// Package query 提供八个分析查询，每个查询有两种可互换的执行策略：
// 基于规范化关系模型，或基于聚合文档模型。
// 在同一数据快照上，两种策略必须返回语义相同的结果集。
package query

import "context"

// BreakoutVoteThreshold 突破检测的票数阈值：
// 低曝光作品 < 阈值，高曝光作品 >= 阈值
const BreakoutVoteThreshold = 200000

// FilmographyRow Q1 结果行
type FilmographyRow struct {
	Title string `json:"title"`
	Year  *int   `json:"year"`
}

// TopRow Q2 结果行
type TopRow struct {
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
}

// MultiRoleRow Q3 结果行
type MultiRoleRow struct {
	Title     string `json:"title"`
	RoleCount int    `json:"role_count"`
}

// CollaborationRow Q4 结果行
type CollaborationRow struct {
	DirectorName string `json:"director_name"`
	FilmCount    int    `json:"film_count"`
}

// QualityGenreRow Q5 结果行
type QualityGenreRow struct {
	Genre      string  `json:"genre"`
	MeanRating float64 `json:"mean_rating"`
	FilmCount  int     `json:"film_count"`
}

// GenreRankRow Q6 结果行
type GenreRankRow struct {
	Genre  string  `json:"genre"`
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
	Rank   int     `json:"rank"`
}

// BreakoutRow Q7 结果行
type BreakoutRow struct {
	PersonName string `json:"person_name"`
	Title      string `json:"title"`
	Year       *int   `json:"year"`
}

// DirectorGenreRow Q8 结果行
type DirectorGenreRow struct {
	Genre  string  `json:"genre"`
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
	Votes  int     `json:"votes"`
	Year   *int    `json:"year"`
}

// Strategy 八个分析查询的一种执行策略
// 名字子串匹配一律不区分大小写；无匹配返回空结果而非错误；
// 涉及评分投影的查询对评分缺失的电影采用内连接语义（直接排除）
type Strategy interface {
	// Filmography Q1: 按人名子串查作品列表，按年份升序
	Filmography(ctx context.Context, name string) ([]FilmographyRow, error)
	// TopByGenre Q2: 某类型某年份区间内评分最高的 N 部
	TopByGenre(ctx context.Context, genre string, yearMin, yearMax, n int) ([]TopRow, error)
	// MultiRoles Q3: 一人分饰多角的电影，按角色数降序
	MultiRoles(ctx context.Context, name string) ([]MultiRoleRow, error)
	// Collaborations Q4: 与指定人物合作过的导演及合作片数，降序
	Collaborations(ctx context.Context, name string) ([]CollaborationRow, error)
	// QualityGenres Q5: 平均分 > 7.0 且片数 > 50 的类型，按均分降序
	QualityGenres(ctx context.Context) ([]QualityGenreRow, error)
	// GenreRanking Q6: 每个类型评分前三（组内序数排名，并列按输入序）
	GenreRanking(ctx context.Context) ([]GenreRankRow, error)
	// Breakouts Q7: 代表作从低票数跨越到高票数的人物及其突破作品
	Breakouts(ctx context.Context) ([]BreakoutRow, error)
	// DirectorGenres Q8: 某导演的作品按类型交叉展开
	DirectorGenres(ctx context.Context, name string) ([]DirectorGenreRow, error)
}
