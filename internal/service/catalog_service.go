package service

import (
	"brainink_backend/internal/model"
	"brainink_backend/internal/repository"
	"brainink_backend/pkg/logger"
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	catalogCacheKey = "catalog:courses"
	catalogCacheTTL = 5 * time.Minute
)

// CatalogService serves course browsing: the course list, course detail with
// blocks and lessons, and single lessons.
type CatalogService struct {
	CourseRepo *repository.CourseRepository
	Redis      *redis.Client
}

func NewCatalogService(courseRepo *repository.CourseRepository, rdb *redis.Client) *CatalogService {
	return &CatalogService{CourseRepo: courseRepo, Redis: rdb}
}

func (s *CatalogService) ListCourses(ctx context.Context) ([]*model.Course, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, catalogCacheKey).Result(); err == nil {
			var courses []*model.Course
			if err := json.Unmarshal([]byte(cached), &courses); err == nil {
				return courses, nil
			}
		}
	}

	courses, err := s.CourseRepo.ListPublished()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(courses); err == nil {
			if err := s.Redis.Set(ctx, catalogCacheKey, payload, catalogCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache course catalog", zap.Error(err))
			}
		}
	}
	return courses, nil
}

func (s *CatalogService) GetCourse(id uint) (*model.Course, error) {
	return s.CourseRepo.FindByID(id)
}

func (s *CatalogService) GetLesson(id uint) (*model.Lesson, error) {
	return s.CourseRepo.FindLesson(id)
}

type CourseCreateRequest struct {
	Title         string `json:"title" binding:"required"`
	Subject       string `json:"subject"`
	Description   string `json:"description"`
	TotalWeeks    int    `json:"totalWeeks"`
	BlocksPerWeek int    `json:"blocksPerWeek"`
	GeneratedByAI bool   `json:"generatedByAI"`
	Published     bool   `json:"published"`
}

func (s *CatalogService) CreateCourse(creatorID uint, req CourseCreateRequest) (*model.Course, error) {
	course := &model.Course{
		Title:         req.Title,
		Subject:       req.Subject,
		Description:   req.Description,
		TotalWeeks:    req.TotalWeeks,
		BlocksPerWeek: req.BlocksPerWeek,
		GeneratedByAI: req.GeneratedByAI,
		CreatorID:     creatorID,
		Published:     req.Published,
	}
	if course.TotalWeeks <= 0 {
		course.TotalWeeks = 1
	}
	if course.BlocksPerWeek <= 0 {
		course.BlocksPerWeek = 1
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	s.invalidateCatalog()
	return course, nil
}

type BlockCreateRequest struct {
	Week        int    `json:"week"`
	Order       int    `json:"order"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (s *CatalogService) CreateBlock(courseID uint, req BlockCreateRequest) (*model.CourseBlock, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, err
	}
	block := &model.CourseBlock{
		CourseID:    courseID,
		Week:        req.Week,
		Order:       req.Order,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.CourseRepo.CreateBlock(block); err != nil {
		return nil, err
	}
	s.invalidateCatalog()
	return block, nil
}

type LessonCreateRequest struct {
	Order           int    `json:"order"`
	Title           string `json:"title" binding:"required"`
	Content         string `json:"content"`
	DurationMinutes int    `json:"durationMinutes"`
}

func (s *CatalogService) CreateLesson(blockID uint, req LessonCreateRequest) (*model.Lesson, error) {
	if _, err := s.CourseRepo.FindBlock(blockID); err != nil {
		return nil, err
	}
	lesson := &model.Lesson{
		BlockID:         blockID,
		Order:           req.Order,
		Title:           req.Title,
		Content:         req.Content,
		DurationMinutes: req.DurationMinutes,
	}
	if err := s.CourseRepo.CreateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CatalogService) invalidateCatalog() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), catalogCacheKey).Err(); err != nil {
		logger.Log.Warn("failed to invalidate course catalog cache", zap.Error(err))
	}
}
