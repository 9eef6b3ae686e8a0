package model

// Course 课程，按周组织成若干模块（block）
type Course struct {
	BaseModel
	Title         string        `gorm:"size:255;not null" json:"title"`
	Subject       string        `gorm:"size:100" json:"subject"`
	Description   string        `gorm:"type:text" json:"description"`
	TotalWeeks    int           `gorm:"default:1" json:"totalWeeks"`
	BlocksPerWeek int           `gorm:"default:1" json:"blocksPerWeek"`
	GeneratedByAI bool          `gorm:"default:false" json:"generatedByAI"`
	CreatorID     uint          `gorm:"index" json:"creatorId"`
	Published     bool          `gorm:"default:false" json:"published"`
	Blocks        []CourseBlock `gorm:"foreignKey:CourseID" json:"blocks,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseBlock 课程模块。学完一个模块才能解锁其下的作业链
type CourseBlock struct {
	BaseModel
	CourseID    uint     `gorm:"index;not null" json:"courseId"`
	Week        int      `gorm:"default:1" json:"week"`
	Order       int      `gorm:"default:0" json:"order"`
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Lessons     []Lesson `gorm:"foreignKey:BlockID" json:"lessons,omitempty"`
}

func (CourseBlock) TableName() string {
	return "course_blocks"
}

type Lesson struct {
	BaseModel
	BlockID         uint   `gorm:"index;not null" json:"blockId"`
	Order           int    `gorm:"default:0" json:"order"`
	Title           string `gorm:"size:255;not null" json:"title"`
	Content         string `gorm:"type:longtext" json:"content"`
	DurationMinutes int    `gorm:"default:0" json:"durationMinutes"`
}

func (Lesson) TableName() string {
	return "lessons"
}
