package repository

import (
	"context"

	"gorm.io/gorm"

	"gradebook/internal/model"
)

// StudentRepository defines student persistence operations.
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	List(ctx context.Context) ([]model.Student, error)
	FindByID(ctx context.Context, id int) (*model.Student, error)
	Update(ctx context.Context, id int, patch model.StudentPatch) (*model.Student, error)
	Delete(ctx context.Context, id int) (*model.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func scoresInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// Create inserts the student together with its scores.
func (r *studentRepository) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

// List returns every student ordered by id.
func (r *studentRepository) List(ctx context.Context) ([]model.Student, error) {
	students := make([]model.Student, 0)
	if err := r.db.WithContext(ctx).Preload("Scores", scoresInOrder).Order("id").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// FindByID finds a student by ID.
func (r *studentRepository) FindByID(ctx context.Context, id int) (*model.Student, error) {
	return findStudent(r.db.WithContext(ctx), id)
}

// Update applies patch inside a transaction and returns the stored result.
func (r *studentRepository) Update(ctx context.Context, id int, patch model.StudentPatch) (*model.Student, error) {
	var updated *model.Student
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findStudent(tx, id); err != nil {
			return err
		}

		if patch.Name != nil {
			if err := tx.Model(&model.Student{}).Where("id = ?", id).Update("name", *patch.Name).Error; err != nil {
				return err
			}
		}

		if patch.Scores != nil {
			if err := tx.Where("student_id = ?", id).Delete(&model.Score{}).Error; err != nil {
				return err
			}
			scores := make([]model.Score, len(patch.Scores))
			for i, s := range patch.Scores {
				scores[i] = model.Score{StudentID: id, Subject: s.Subject, Score: s.Score}
			}
			if len(scores) > 0 {
				if err := tx.Create(&scores).Error; err != nil {
					return err
				}
			}
		}

		var err error
		updated, err = findStudent(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a student and its scores, returning the removed record.
func (r *studentRepository) Delete(ctx context.Context, id int) (*model.Student, error) {
	var deleted *model.Student
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		student, err := findStudent(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&model.Score{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Student{}, "id = ?", id).Error; err != nil {
			return err
		}
		deleted = student
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func findStudent(db *gorm.DB, id int) (*model.Student, error) {
	var student model.Student
	if err := db.Preload("Scores", scoresInOrder).Where("id = ?", id).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}
