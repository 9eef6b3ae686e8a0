package model

import "time"

// StudySession 一次模块学习记录；模块完成映射由它派生
type StudySession struct {
	BaseModel
	UserID      uint       `gorm:"index;not null" json:"userId"`
	CourseID    uint       `gorm:"index;not null" json:"courseId"`
	BlockID     uint       `gorm:"index;not null" json:"blockId"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Minutes     int        `gorm:"default:0" json:"minutes"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}

func (s *StudySession) Completed() bool {
	return s.CompletedAt != nil
}
