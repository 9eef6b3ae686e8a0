package repository

import (
	"brainink_backend/internal/model"

	"gorm.io/gorm"
)

type StudentAssignmentRepository struct {
	DB *gorm.DB
}

func NewStudentAssignmentRepository(db *gorm.DB) *StudentAssignmentRepository {
	return &StudentAssignmentRepository{DB: db}
}

func (r *StudentAssignmentRepository) Create(sa *model.StudentAssignment) error {
	return r.DB.Create(sa).Error
}

func (r *StudentAssignmentRepository) Update(sa *model.StudentAssignment) error {
	return r.DB.Save(sa).Error
}

func (r *StudentAssignmentRepository) FindByID(id uint) (*model.StudentAssignment, error) {
	var sa model.StudentAssignment
	err := r.DB.Preload("Assignment").First(&sa, id).Error
	return &sa, err
}

func (r *StudentAssignmentRepository) FindByUserAndAssignment(userID, assignmentID uint) (*model.StudentAssignment, error) {
	var sa model.StudentAssignment
	err := r.DB.Preload("Assignment").
		Where("user_id = ? AND assignment_id = ?", userID, assignmentID).
		First(&sa).Error
	return &sa, err
}

// ListByUserAndCourse is the student's personal ledger for one course, with
// definitions embedded for the gating engine.
func (r *StudentAssignmentRepository) ListByUserAndCourse(userID, courseID uint) ([]*model.StudentAssignment, error) {
	var list []*model.StudentAssignment
	err := r.DB.Preload("Assignment").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("assigned_at").Find(&list).Error
	return list, err
}

func (r *StudentAssignmentRepository) ListPendingGrading(limit int) ([]*model.StudentAssignment, error) {
	var list []*model.StudentAssignment
	err := r.DB.Preload("Assignment").
		Where("status = ?", model.StatusSubmitted).
		Order("submitted_at").Limit(limit).Find(&list).Error
	return list, err
}

func (r *StudentAssignmentRepository) CountByStatus(userID, courseID uint) (map[string]int, error) {
	type row struct {
		Status string
		N      int
	}
	var rows []row
	err := r.DB.Model(&model.StudentAssignment{}).
		Select("status, COUNT(*) AS n").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}

func (r *StudentAssignmentRepository) AverageGrade(userID, courseID uint) (float64, error) {
	var avg *float64
	err := r.DB.Model(&model.StudentAssignment{}).
		Where("user_id = ? AND course_id = ? AND grade IS NOT NULL", userID, courseID).
		Select("AVG(grade)").Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}
