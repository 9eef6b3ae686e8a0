package repository

import (
	"brainink_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type StudySessionRepository struct {
	DB *gorm.DB
}

func NewStudySessionRepository(db *gorm.DB) *StudySessionRepository {
	return &StudySessionRepository{DB: db}
}

func (r *StudySessionRepository) Create(session *model.StudySession) error {
	return r.DB.Create(session).Error
}

func (r *StudySessionRepository) Update(session *model.StudySession) error {
	return r.DB.Save(session).Error
}

func (r *StudySessionRepository) FindByID(id uint) (*model.StudySession, error) {
	var session model.StudySession
	err := r.DB.First(&session, id).Error
	return &session, err
}

func (r *StudySessionRepository) FindOpen(userID, blockID uint) (*model.StudySession, error) {
	var session model.StudySession
	err := r.DB.Where("user_id = ? AND block_id = ? AND completed_at IS NULL", userID, blockID).
		Order("started_at DESC").First(&session).Error
	return &session, err
}

// CompletedBlockIDs feeds the block-completion map: a block counts as
// completed once the student has at least one completed session for it.
func (r *StudySessionRepository) CompletedBlockIDs(userID, courseID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.StudySession{}).
		Where("user_id = ? AND course_id = ? AND completed_at IS NOT NULL", userID, courseID).
		Distinct().Pluck("block_id", &ids).Error
	return ids, err
}

func (r *StudySessionRepository) TotalMinutes(userID, courseID uint) (int, error) {
	var total *int
	err := r.DB.Model(&model.StudySession{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Select("SUM(minutes)").Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *StudySessionRepository) MinutesSince(userID uint, since time.Time) (int, error) {
	var total *int
	err := r.DB.Model(&model.StudySession{}).
		Where("user_id = ? AND started_at >= ?", userID, since).
		Select("SUM(minutes)").Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}
