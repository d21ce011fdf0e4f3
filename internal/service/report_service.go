package service

import (
	"context"

	apperrors "gradebook/internal/errors"
	"gradebook/internal/logger"
	"gradebook/internal/model"
	"gradebook/internal/ranking"
	"gradebook/internal/repository"
)

// ReportService serves ranking reports over the full student population.
type ReportService interface {
	Report(ctx context.Context) ([]ranking.Ranked, error)
	Top(ctx context.Context, n int) ([]ranking.Ranked, error)
	BelowThreshold(ctx context.Context, threshold float64) ([]model.Student, error)
	SubjectAverages(ctx context.Context) ([]ranking.SubjectAverage, error)
	FullReport(ctx context.Context) ([]ranking.FullEntry, error)
}

type reportService struct {
	repo repository.StudentRepository
}

// NewReportService creates a report service reading from repo.
func NewReportService(repo repository.StudentRepository) ReportService {
	return &reportService{repo: repo}
}

func (s *reportService) students(ctx context.Context) ([]model.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		logger.Errorf("load students for report: %v", err)
		return nil, apperrors.Storage("load students", err)
	}
	return students, nil
}

func (s *reportService) Report(ctx context.Context) ([]ranking.Ranked, error) {
	students, err := s.students(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.Rank(students)
}

func (s *reportService) Top(ctx context.Context, n int) ([]ranking.Ranked, error) {
	if n < 0 {
		return nil, ranking.ErrInvalidLimit
	}
	students, err := s.students(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.TopN(students, n)
}

func (s *reportService) BelowThreshold(ctx context.Context, threshold float64) ([]model.Student, error) {
	students, err := s.students(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.BelowThreshold(students, threshold)
}

func (s *reportService) SubjectAverages(ctx context.Context) ([]ranking.SubjectAverage, error) {
	students, err := s.students(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.SubjectAverageList(ranking.SubjectAverages(students)), nil
}

func (s *reportService) FullReport(ctx context.Context) ([]ranking.FullEntry, error) {
	students, err := s.students(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.FullReport(students)
}
