package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campus-hub/academy-api/internal/models"
)

// CourseRepository defines persistence operations for the course aggregate.
// GetByID loads the whole aggregate (enrollments and attendance); SaveAggregate
// persists it back in one transaction so partial mutations never become
// visible.
type CourseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	ListByInstructor(ctx context.Context, staffID uint) ([]models.Course, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Course, error)
	GetByID(ctx context.Context, id uint) (models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	SaveAggregate(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository instantiates a GORM-backed repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) aggregateQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Instructor").
		Preload("Enrollments.Student").
		Preload("Enrollments.Attendance")
}

func (r *courseRepository) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := r.aggregateQuery(ctx).Order("start_date ASC").Find(&courses).Error; err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) ListByInstructor(ctx context.Context, staffID uint) ([]models.Course, error) {
	var courses []models.Course
	if err := r.aggregateQuery(ctx).
		Where("instructor_id = ?", staffID).
		Order("start_date ASC").
		Find(&courses).Error; err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Course, error) {
	var courses []models.Course
	if err := r.aggregateQuery(ctx).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.student_id = ?", studentID).
		Order("start_date ASC").
		Find(&courses).Error; err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	if err := r.aggregateQuery(ctx).First(&course, id).Error; err != nil {
		return models.Course{}, err
	}

	return course, nil
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) SaveAggregate(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(course).Error
	})
}

func (r *courseRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Select("Enrollments").Delete(&models.Course{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
