package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"gradebook/internal/cache"
	apperrors "gradebook/internal/errors"
	"gradebook/internal/logger"
	"gradebook/internal/model"
	"gradebook/internal/repository"
)

const studentCacheTTL = 5 * time.Minute

// StudentService exposes student record operations.
type StudentService interface {
	CreateStudent(ctx context.Context, student *model.Student) (*model.Student, error)
	ListStudents(ctx context.Context) ([]model.Student, error)
	GetStudent(ctx context.Context, id int) (*model.Student, error)
	UpdateStudent(ctx context.Context, id int, patch model.StudentPatch) (*model.Student, error)
	DeleteStudent(ctx context.Context, id int) (*model.Student, error)
}

type studentService struct {
	repo  repository.StudentRepository
	cache *cache.Client
}

// NewStudentService builds a StudentService with repository and cache.
// cache may be nil.
func NewStudentService(repo repository.StudentRepository, cache *cache.Client) StudentService {
	return &studentService{repo: repo, cache: cache}
}

func (s *studentService) cacheKey(id int) string {
	return fmt.Sprintf("student:%d", id)
}

// CreateStudent validates and stores a new student. Duplicate ids are
// reported as ErrConflict.
func (s *studentService) CreateStudent(ctx context.Context, student *model.Student) (*model.Student, error) {
	if student.ID == 0 {
		return nil, apperrors.Validation("id is required")
	}
	if strings.TrimSpace(student.Name) == "" {
		return nil, apperrors.Validation("name is required")
	}
	if err := validateScores(student.Scores); err != nil {
		return nil, err
	}

	_, err := s.repo.FindByID(ctx, student.ID)
	if err == nil {
		return nil, fmt.Errorf("student %d: %w", student.ID, apperrors.ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, s.storageError("check student existence", err)
	}

	if err := s.repo.Create(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("student %d: %w", student.ID, apperrors.ErrConflict)
		}
		return nil, s.storageError("create student", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(student.ID))
	return student, nil
}

// ListStudents returns every stored student ordered by id.
func (s *studentService) ListStudents(ctx context.Context) ([]model.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.storageError("list students", err)
	}
	return students, nil
}

// GetStudent retrieves a student by ID with caching.
func (s *studentService) GetStudent(ctx context.Context, id int) (*model.Student, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Student
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError("find student", id, err)
	}

	if payload, err := json.Marshal(student); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, studentCacheTTL)
	}
	return student, nil
}

// UpdateStudent applies a partial update. A non-nil Scores replaces the
// stored list wholesale.
func (s *studentService) UpdateStudent(ctx context.Context, id int, patch model.StudentPatch) (*model.Student, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, apperrors.Validation("name must not be empty")
	}
	if patch.Scores != nil {
		if err := validateScores(patch.Scores); err != nil {
			return nil, err
		}
	}

	student, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, s.lookupError("update student", id, err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return student, nil
}

// DeleteStudent removes a student and returns the deleted record.
func (s *studentService) DeleteStudent(ctx context.Context, id int) (*model.Student, error) {
	student, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, s.lookupError("delete student", id, err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return student, nil
}

func (s *studentService) lookupError(op string, id int, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("student %d: %w", id, apperrors.ErrNotFound)
	}
	return s.storageError(op, err)
}

func (s *studentService) storageError(op string, err error) error {
	logger.Errorf("%s: %v", op, err)
	return apperrors.Storage(op, err)
}

// validateScores requires a non-empty list of finite scores with subjects.
func validateScores(scores []model.Score) error {
	if len(scores) == 0 {
		return apperrors.Validation("scores must contain at least one entry")
	}
	for i, sc := range scores {
		if strings.TrimSpace(sc.Subject) == "" {
			return apperrors.Validation(fmt.Sprintf("scores[%d]: subject is required", i))
		}
		if math.IsNaN(sc.Score) || math.IsInf(sc.Score, 0) {
			return apperrors.Validation(fmt.Sprintf("scores[%d]: score must be a finite number", i))
		}
	}
	return nil
}
