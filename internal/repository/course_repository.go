package repository

import (
	"brainink_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Blocks", func(db *gorm.DB) *gorm.DB {
		return db.Order("course_blocks.week, course_blocks.order")
	}).Preload("Blocks.Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("lessons.order")
	}).First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) ListPublished() ([]*model.Course, error) {
	var courses []*model.Course
	err := r.DB.Where("published = ?", true).Order("created_at").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) CreateBlock(block *model.CourseBlock) error {
	return r.DB.Create(block).Error
}

func (r *CourseRepository) FindBlock(id uint) (*model.CourseBlock, error) {
	var block model.CourseBlock
	err := r.DB.First(&block, id).Error
	return &block, err
}

func (r *CourseRepository) ListBlocks(courseID uint) ([]*model.CourseBlock, error) {
	var blocks []*model.CourseBlock
	err := r.DB.Where("course_id = ?", courseID).
		Order("week, `order`").Find(&blocks).Error
	return blocks, err
}

func (r *CourseRepository) CreateLesson(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *CourseRepository) FindLesson(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	return &lesson, err
}
