package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "gradebook/internal/errors"
	"gradebook/internal/model"
	"gradebook/internal/ranking"
)

func reportStudents() []model.Student {
	return []model.Student{
		{ID: 1, Name: "Ada", Scores: []model.Score{{Subject: "Math", Score: 50}, {Subject: "Art", Score: 70}}},
		{ID: 2, Name: "Brian", Scores: []model.Score{{Subject: "Math", Score: 95}}},
		{ID: 3, Name: "Chen", Scores: []model.Score{{Subject: "Art", Score: 80}}},
	}
}

func newReportService(students []model.Student, err error) (ReportService, *MockStudentRepository) {
	mockRepo := new(MockStudentRepository)
	if err != nil {
		mockRepo.On("List", mock.Anything).Return(nil, err)
	} else {
		mockRepo.On("List", mock.Anything).Return(students, nil)
	}
	return NewReportService(mockRepo), mockRepo
}

func TestReportService_Report(t *testing.T) {
	service, _ := newReportService(reportStudents(), nil)

	report, err := service.Report(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 3)
	assert.Equal(t, ranking.Ranked{Rank: 1, ID: 2, Name: "Brian", AverageScore: 95}, report[0])
	assert.Equal(t, 3, report[1].ID)
	assert.Equal(t, 60.0, report[2].AverageScore)
}

func TestReportService_Top(t *testing.T) {
	service, mockRepo := newReportService(reportStudents(), nil)
	ctx := context.Background()

	top, err := service.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, 2, top[0].ID)

	_, err = service.Top(ctx, -3)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockRepo.AssertNumberOfCalls(t, "List", 1)
}

func TestReportService_BelowThreshold(t *testing.T) {
	service, _ := newReportService(reportStudents(), nil)

	below, err := service.BelowThreshold(context.Background(), 70)
	require.NoError(t, err)
	require.Len(t, below, 1)
	assert.Equal(t, "Ada", below[0].Name)
}

func TestReportService_SubjectAverages(t *testing.T) {
	service, _ := newReportService(reportStudents(), nil)

	averages, err := service.SubjectAverages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []ranking.SubjectAverage{
		{Subject: "Art", Average: 75},
		{Subject: "Math", Average: 72.5},
	}, averages)
}

func TestReportService_FullReport(t *testing.T) {
	service, _ := newReportService(reportStudents(), nil)

	report, err := service.FullReport(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 3)
	assert.Equal(t, 1, report[0].Rank)
	assert.Equal(t, []model.Score{{Subject: "Math", Score: 95}}, report[0].Scores)
}

func TestReportService_StorageFailure(t *testing.T) {
	service, _ := newReportService(nil, errors.New("connection reset"))

	_, err := service.Report(context.Background())
	var storageErr *apperrors.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "load students", storageErr.Op)
}

func TestReportService_StudentWithoutScores(t *testing.T) {
	students := append(reportStudents(), model.Student{ID: 4, Name: "Legacy"})
	service, _ := newReportService(students, nil)

	_, err := service.FullReport(context.Background())
	assert.ErrorIs(t, err, ranking.ErrNoScores)
}
