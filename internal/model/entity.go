package model

// Movie 电影实体（IMDB 规范化数据）
type Movie struct {
	Mid            string `json:"mid" gorm:"column:mid;primaryKey"`
	TitleType      string `json:"title_type" gorm:"column:title_type;index"`
	PrimaryTitle   string `json:"primary_title" gorm:"column:primary_title"`
	OriginalTitle  string `json:"original_title" gorm:"column:original_title"`
	IsAdult        *bool  `json:"is_adult" gorm:"column:is_adult"`
	StartYear      *int   `json:"start_year" gorm:"column:start_year;index"`
	EndYear        *int   `json:"end_year" gorm:"column:end_year"`
	RuntimeMinutes *int   `json:"runtime_minutes" gorm:"column:runtime_minutes"`
}

func (Movie) TableName() string { return "movies" }

// Person 人物实体
type Person struct {
	Pid         string `json:"pid" gorm:"column:pid;primaryKey"`
	PrimaryName string `json:"primary_name" gorm:"column:primary_name;index"`
	BirthYear   *int   `json:"birth_year" gorm:"column:birth_year"`
	DeathYear   *int   `json:"death_year" gorm:"column:death_year"`
}

func (Person) TableName() string { return "persons" }

// Rating 评分（与电影一对一，可能缺失）
type Rating struct {
	Mid           string  `json:"mid" gorm:"column:mid;primaryKey"`
	AverageRating float64 `json:"average_rating" gorm:"column:average_rating"`
	NumVotes      int     `json:"num_votes" gorm:"column:num_votes"`
}

func (Rating) TableName() string { return "ratings" }

// Genre 电影-类型关联，(mid, genre) 唯一
type Genre struct {
	Mid   string `json:"mid" gorm:"column:mid;primaryKey;index"`
	Genre string `json:"genre" gorm:"column:genre;primaryKey;index"`
}

func (Genre) TableName() string { return "genres" }

// Director 电影-导演关联，(mid, pid) 唯一
type Director struct {
	Mid string `json:"mid" gorm:"column:mid;primaryKey;index"`
	Pid string `json:"pid" gorm:"column:pid;primaryKey;index"`
}

func (Director) TableName() string { return "directors" }

// Writer 电影-编剧关联，(mid, pid) 唯一
type Writer struct {
	Mid string `json:"mid" gorm:"column:mid;primaryKey;index"`
	Pid string `json:"pid" gorm:"column:pid;primaryKey;index"`
}

func (Writer) TableName() string { return "writers" }

// Character 角色关联，(mid, pid, name) 唯一
// 同一人可在同一部电影中扮演多个角色，这是多角色检测的依据
type Character struct {
	Mid  string `json:"mid" gorm:"column:mid;primaryKey;index"`
	Pid  string `json:"pid" gorm:"column:pid;primaryKey;index"`
	Name string `json:"name" gorm:"column:name;primaryKey"`
}

func (Character) TableName() string { return "characters" }

// Principal 演职人员名单（权威的 cast/crew 记录）
// (mid, ordering, pid, category) 唯一
type Principal struct {
	Mid        string `json:"mid" gorm:"column:mid;primaryKey;index"`
	Ordering   int    `json:"ordering" gorm:"column:ordering;primaryKey"`
	Pid        string `json:"pid" gorm:"column:pid;primaryKey;index"`
	Category   string `json:"category" gorm:"column:category;primaryKey"`
	Job        string `json:"job" gorm:"column:job"`
	Characters string `json:"characters" gorm:"column:characters"`
}

func (Principal) TableName() string { return "principals" }

// Title 别名/地区标题，(mid, ordering) 唯一
type Title struct {
	Mid             string `json:"mid" gorm:"column:mid;primaryKey;index"`
	Ordering        int    `json:"ordering" gorm:"column:ordering;primaryKey"`
	Title           string `json:"title" gorm:"column:title"`
	Region          string `json:"region" gorm:"column:region"`
	Language        string `json:"language" gorm:"column:language"`
	Types           string `json:"types" gorm:"column:types"`
	Attributes      string `json:"attributes" gorm:"column:attributes"`
	IsOriginalTitle *bool  `json:"is_original_title" gorm:"column:is_original_title"`
}

func (Title) TableName() string { return "titles" }

// Profession 人物职业，(pid, job_name) 唯一
type Profession struct {
	Pid     string `json:"pid" gorm:"column:pid;primaryKey;index"`
	JobName string `json:"job_name" gorm:"column:job_name;primaryKey"`
}

func (Profession) TableName() string { return "professions" }

// KnownForMovie 人物代表作关联，(pid, mid) 唯一
// 用于区分一个人的"弱"与"强"作品（突破检测的基础）
type KnownForMovie struct {
	Pid string `json:"pid" gorm:"column:pid;primaryKey;index"`
	Mid string `json:"mid" gorm:"column:mid;primaryKey;index"`
}

func (KnownForMovie) TableName() string { return "knownformovies" }
