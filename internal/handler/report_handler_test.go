package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "gradebook/internal/errors"
	"gradebook/internal/model"
	"gradebook/internal/ranking"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Report(ctx context.Context) ([]ranking.Ranked, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ranking.Ranked), args.Error(1)
}

func (m *MockReportService) Top(ctx context.Context, n int) ([]ranking.Ranked, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ranking.Ranked), args.Error(1)
}

func (m *MockReportService) BelowThreshold(ctx context.Context, threshold float64) ([]model.Student, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Student), args.Error(1)
}

func (m *MockReportService) SubjectAverages(ctx context.Context) ([]ranking.SubjectAverage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ranking.SubjectAverage), args.Error(1)
}

func (m *MockReportService) FullReport(ctx context.Context) ([]ranking.FullEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ranking.FullEntry), args.Error(1)
}

func serve(e *echo.Echo, h echo.HandlerFunc, path, route string) *httptest.ResponseRecorder {
	e.GET(route, h)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestReportHandler_StorageFailure(t *testing.T) {
	mockService := new(MockReportService)
	mockService.On("Report", mock.Anything).Return(nil, apperrors.Storage("load students", errors.New("database is locked")))

	h := NewReportHandler(mockService)
	rec := serve(echo.New(), h.Report, "/report", "/report")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "STORAGE_ERROR", resp.Code)
	assert.Equal(t, "database is locked", resp.Details)
}

func TestReportHandler_Top(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setupMock  func(*MockReportService)
		wantStatus int
	}{
		{
			name: "valid",
			path: "/report/top/1",
			setupMock: func(m *MockReportService) {
				m.On("Top", mock.Anything, 1).Return([]ranking.Ranked{{Rank: 1, ID: 7, Name: "Ada", AverageScore: 90}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "not a number",
			path:       "/report/top/ten",
			setupMock:  func(m *MockReportService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative",
			path:       "/report/top/-2",
			setupMock:  func(m *MockReportService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockReportService)
			tt.setupMock(mockService)

			h := NewReportHandler(mockService)
			rec := serve(echo.New(), h.Top, tt.path, "/report/top/:n")

			assert.Equal(t, tt.wantStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestReportHandler_BelowThresholdNaN(t *testing.T) {
	mockService := new(MockReportService)

	h := NewReportHandler(mockService)
	rec := serve(echo.New(), h.BelowThreshold, "/report/below/NaN", "/report/below/:threshold")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "BelowThreshold", mock.Anything, mock.Anything)
}
