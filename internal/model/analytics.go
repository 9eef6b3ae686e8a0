package model

// CourseProgress 单门课程的学习进度汇总
type CourseProgress struct {
	CourseID         uint           `json:"courseId"`
	TotalBlocks      int            `json:"totalBlocks"`
	CompletedBlocks  int            `json:"completedBlocks"`
	TotalAssignments int            `json:"totalAssignments"`
	StatusCounts     map[string]int `json:"statusCounts"`
	AverageGrade     float64        `json:"averageGrade"`
	StudyMinutes     int            `json:"studyMinutes"`
}

// WeekActivity 按周聚合的学习活动
type WeekActivity struct {
	Week         string `json:"week"`
	StudyMinutes int    `json:"studyMinutes"`
	Submissions  int    `json:"submissions"`
}
