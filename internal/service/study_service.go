package service

import (
	"brainink_backend/internal/model"
	"brainink_backend/internal/repository"
	"brainink_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// StudyService tracks per-block study sessions. The block-completion map the
// gating engine consumes is derived from completed sessions.
type StudyService struct {
	SessionRepo *repository.StudySessionRepository
	CourseRepo  *repository.CourseRepository
}

func NewStudyService(sessionRepo *repository.StudySessionRepository, courseRepo *repository.CourseRepository) *StudyService {
	return &StudyService{SessionRepo: sessionRepo, CourseRepo: courseRepo}
}

func (s *StudyService) StartSession(userID, blockID uint) (*model.StudySession, error) {
	block, err := s.CourseRepo.FindBlock(blockID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrBlockNotFound
		}
		return nil, err
	}

	// reuse an open session instead of stacking duplicates
	if open, err := s.SessionRepo.FindOpen(userID, blockID); err == nil {
		return open, nil
	}

	session := &model.StudySession{
		UserID:    userID,
		CourseID:  block.CourseID,
		BlockID:   blockID,
		StartedAt: time.Now(),
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *StudyService) CompleteSession(userID, blockID uint, minutes int) (*model.StudySession, error) {
	session, err := s.SessionRepo.FindOpen(userID, blockID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrStudySessionNotFound
		}
		return nil, err
	}

	now := time.Now()
	session.CompletedAt = &now
	if minutes > 0 {
		session.Minutes = minutes
	} else {
		session.Minutes = int(now.Sub(session.StartedAt).Minutes())
	}
	if err := s.SessionRepo.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

// CompletionMap builds the per-block completion booleans for one student in
// one course. Blocks without a completed session simply have no entry; the
// gating engine treats absence as not completed.
func (s *StudyService) CompletionMap(userID, courseID uint) (map[uint]bool, error) {
	ids, err := s.SessionRepo.CompletedBlockIDs(userID, courseID)
	if err != nil {
		return nil, err
	}
	done := make(map[uint]bool, len(ids))
	for _, id := range ids {
		done[id] = true
	}
	return done, nil
}
