package model

import "time"

// Assignment 作业定义，属于某个课程，可选地挂在某个模块下。
// 对客户端只读：门控逻辑只消费，不修改。
type Assignment struct {
	BaseModel
	CourseID               uint    `gorm:"index;not null" json:"courseId"`
	BlockID                *uint   `gorm:"index" json:"blockId"`
	Title                  string  `gorm:"size:255;not null" json:"title"`
	Description            *string `gorm:"type:text" json:"description"`
	DurationMinutes        *int    `json:"durationMinutes"`
	DueDaysAfterAssignment *int    `json:"dueDaysAfterAssignment"`
}

func (Assignment) TableName() string {
	return "assignments"
}

type AssignmentStatus string

const (
	StatusAssigned   AssignmentStatus = "assigned"
	StatusSubmitted  AssignmentStatus = "submitted"
	StatusGraded     AssignmentStatus = "graded"
	StatusPassed     AssignmentStatus = "passed"
	StatusFailed     AssignmentStatus = "failed"
	StatusNeedsRetry AssignmentStatus = "needs_retry"
)

// StudentAssignment 学生的作业实例。状态迁移由后端驱动且单调
// （assigned → submitted → graded/passed/failed/needs_retry），
// 客户端/门控逻辑只读状态。
type StudentAssignment struct {
	BaseModel
	UserID       uint             `gorm:"index;not null" json:"userId"`
	AssignmentID uint             `gorm:"index;not null" json:"assignmentId"`
	CourseID     uint             `gorm:"index;not null" json:"courseId"`
	AssignedAt   time.Time        `json:"assignedAt"`
	DueDate      time.Time        `json:"dueDate"`
	Status       AssignmentStatus `gorm:"type:enum('assigned','submitted','graded','passed','failed','needs_retry');default:'assigned'" json:"status"`
	Grade        *float64         `json:"grade"`
	Feedback     *string          `gorm:"type:text" json:"feedback"`

	// 后端声明的前置作业覆盖；为空时只按模块内链式顺序判断
	RequiredAssignmentID *uint `gorm:"index" json:"requiredAssignmentId"`
	// 后端强制锁定标志；true 时无条件锁定
	Locked *bool `json:"locked"`

	SubmissionText string     `gorm:"type:longtext" json:"submissionText,omitempty"`
	SubmissionKey  string     `gorm:"size:512" json:"submissionKey,omitempty"`
	SubmittedAt    *time.Time `json:"submittedAt"`
	GradedAt       *time.Time `json:"gradedAt"`

	Assignment *Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
}

func (StudentAssignment) TableName() string {
	return "student_assignments"
}

// Attempted 是否已经开始做过（提交过或已被评分）
func (s *StudentAssignment) Attempted() bool {
	switch s.Status {
	case StatusSubmitted, StatusGraded, StatusNeedsRetry, StatusFailed, StatusPassed:
		return true
	}
	return false
}
