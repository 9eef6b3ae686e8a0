package repository

import (
	"brainink_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

func (r *AssignmentRepository) Update(assignment *model.Assignment) error {
	return r.DB.Save(assignment).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.First(&assignment, id).Error
	return &assignment, err
}

// ListByCourse returns the full definition set of a course. Gating always
// works over this complete snapshot, never a page of it.
func (r *AssignmentRepository) ListByCourse(courseID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("course_id = ?", courseID).
		Order("created_at, id").Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) ListByBlock(blockID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("block_id = ?", blockID).
		Order("created_at, id").Find(&assignments).Error
	return assignments, err
}
