package model

// MovieSummary 电影列表/搜索结果条目
type MovieSummary struct {
	Mid            string   `json:"mid"`
	PrimaryTitle   string   `json:"primary_title"`
	TitleType      string   `json:"title_type,omitempty"`
	StartYear      *int     `json:"start_year"`
	RuntimeMinutes *int     `json:"runtime_minutes"`
	AverageRating  *float64 `json:"average_rating"`
	NumVotes       *int     `json:"num_votes"`
}

// MovieList 分页后的电影列表
type MovieList struct {
	Movies      []MovieSummary `json:"movies"`
	Total       int64          `json:"total"`
	Pages       int            `json:"pages"`
	CurrentPage int            `json:"current_page"`
}

// MovieListFilter 电影列表筛选条件
type MovieListFilter struct {
	Genre     string
	YearMin   *int
	YearMax   *int
	RatingMin *float64
	SortBy    string // title / year / rating
	SortOrder string // asc / desc
	Page      int
	PerPage   int
}

// PersonSummary 人物搜索结果条目
type PersonSummary struct {
	Pid         string `json:"pid"`
	PrimaryName string `json:"primary_name"`
	BirthYear   *int   `json:"birth_year"`
	DeathYear   *int   `json:"death_year"`
	FilmCount   int    `json:"film_count"`
}

// PersonDetail 人物详情（含职业列表）
type PersonDetail struct {
	Pid         string   `json:"pid"`
	PrimaryName string   `json:"primary_name"`
	BirthYear   *int     `json:"birth_year"`
	DeathYear   *int     `json:"death_year"`
	Professions []string `json:"professions"`
}

// FilmographyEntry 人物作品条目
type FilmographyEntry struct {
	Mid            string   `json:"mid"`
	PrimaryTitle   string   `json:"primary_title"`
	StartYear      *int     `json:"start_year"`
	RuntimeMinutes *int     `json:"runtime_minutes"`
	AverageRating  *float64 `json:"average_rating"`
	NumVotes       *int     `json:"num_votes"`
	Characters     string   `json:"characters,omitempty"`
}

// GlobalStats 首页全局统计
type GlobalStats struct {
	MoviesCount    int64 `json:"movies_count"`
	PersonsCount   int64 `json:"persons_count"`
	DirectorsCount int64 `json:"directors_count"`
	ActorsCount    int64 `json:"actors_count"`
}
