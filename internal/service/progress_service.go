package service

import (
	"brainink_backend/internal/model"
	"brainink_backend/internal/repository"
	"time"
)

// ProgressService aggregates per-course learning analytics.
type ProgressService struct {
	CourseRepo  *repository.CourseRepository
	StudentRepo *repository.StudentAssignmentRepository
	SessionRepo *repository.StudySessionRepository
	Study       *StudyService
}

func NewProgressService(
	courseRepo *repository.CourseRepository,
	studentRepo *repository.StudentAssignmentRepository,
	sessionRepo *repository.StudySessionRepository,
	study *StudyService,
) *ProgressService {
	return &ProgressService{
		CourseRepo:  courseRepo,
		StudentRepo: studentRepo,
		SessionRepo: sessionRepo,
		Study:       study,
	}
}

func (s *ProgressService) CourseProgress(userID, courseID uint) (*model.CourseProgress, error) {
	blocks, err := s.CourseRepo.ListBlocks(courseID)
	if err != nil {
		return nil, err
	}

	done, err := s.Study.CompletionMap(userID, courseID)
	if err != nil {
		return nil, err
	}
	completed := 0
	for _, b := range blocks {
		if done[b.ID] {
			completed++
		}
	}

	counts, err := s.StudentRepo.CountByStatus(userID, courseID)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, n := range counts {
		total += n
	}

	avg, err := s.StudentRepo.AverageGrade(userID, courseID)
	if err != nil {
		return nil, err
	}

	minutes, err := s.SessionRepo.TotalMinutes(userID, courseID)
	if err != nil {
		return nil, err
	}

	return &model.CourseProgress{
		CourseID:         courseID,
		TotalBlocks:      len(blocks),
		CompletedBlocks:  completed,
		TotalAssignments: total,
		StatusCounts:     counts,
		AverageGrade:     avg,
		StudyMinutes:     minutes,
	}, nil
}

// WeeklyActivity returns study minutes for the trailing N weeks.
func (s *ProgressService) WeeklyActivity(userID uint, weeks int) ([]model.WeekActivity, error) {
	if weeks <= 0 {
		weeks = 4
	}
	now := time.Now()
	activity := make([]model.WeekActivity, 0, weeks)

	for i := 0; i < weeks; i++ {
		weekStart := now.AddDate(0, 0, -(i+1)*7)
		minutes, err := s.SessionRepo.MinutesSince(userID, weekStart)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			// MinutesSince is cumulative from weekStart; subtract the more
			// recent window to isolate this week
			newer, err := s.SessionRepo.MinutesSince(userID, now.AddDate(0, 0, -i*7))
			if err != nil {
				return nil, err
			}
			minutes -= newer
		}
		activity = append(activity, model.WeekActivity{
			Week:         weekStart.Format("2006-01-02"),
			StudyMinutes: minutes,
		})
	}
	return activity, nil
}
