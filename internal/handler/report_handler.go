package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "gradebook/internal/errors"
	"gradebook/internal/model"
	"gradebook/internal/ranking"
	"gradebook/internal/service"
)

// ReportHandler handles ranking report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RankedReportResponse is the ranking of all students.
type RankedReportResponse struct {
	Report []ranking.Ranked `json:"report"`
}

// TopStudentsResponse holds the n best ranked students.
type TopStudentsResponse struct {
	TopStudents []ranking.Ranked `json:"topStudents"`
}

// BelowThresholdResponse lists students averaging under the threshold, in list order.
type BelowThresholdResponse struct {
	BelowThreshold []model.Student `json:"belowThreshold"`
}

// SubjectAveragesResponse holds per-subject means sorted by subject.
type SubjectAveragesResponse struct {
	SubjectAverages []ranking.SubjectAverage `json:"subjectAverages"`
}

// FullReportResponse is the ranking with every student's scores.
type FullReportResponse struct {
	RankedStudents []ranking.FullEntry `json:"rankedStudents"`
}

// Report godoc
// @Summary Ranking of all students by average score
// @Tags report
// @Produce json
// @Security BearerAuth
// @Success 200 {object} RankedReportResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /report [get]
func (h *ReportHandler) Report(c echo.Context) error {
	report, err := h.reportService.Report(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, RankedReportResponse{Report: report})
}

// Top godoc
// @Summary Top n students
// @Tags report
// @Produce json
// @Security BearerAuth
// @Param n path int true "Number of students"
// @Success 200 {object} TopStudentsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /report/top/{n} [get]
func (h *ReportHandler) Top(c echo.Context) error {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil || n < 0 {
		return errorResponse(ranking.ErrInvalidLimit)
	}

	top, err := h.reportService.Top(c.Request().Context(), n)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, TopStudentsResponse{TopStudents: top})
}

// BelowThreshold godoc
// @Summary Students whose average is below a threshold
// @Tags report
// @Produce json
// @Security BearerAuth
// @Param threshold path number true "Exclusive upper bound"
// @Success 200 {object} BelowThresholdResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /report/below/{threshold} [get]
func (h *ReportHandler) BelowThreshold(c echo.Context) error {
	threshold, err := strconv.ParseFloat(c.Param("threshold"), 64)
	if err != nil || math.IsNaN(threshold) {
		return errorResponse(apperrors.Validation("threshold must be a number"))
	}

	below, err := h.reportService.BelowThreshold(c.Request().Context(), threshold)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, BelowThresholdResponse{BelowThreshold: below})
}

// SubjectAverages godoc
// @Summary Mean score per subject across all students
// @Tags report
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SubjectAveragesResponse
// @Router /report/subject-averages [get]
func (h *ReportHandler) SubjectAverages(c echo.Context) error {
	averages, err := h.reportService.SubjectAverages(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, SubjectAveragesResponse{SubjectAverages: averages})
}

// FullReport godoc
// @Summary Ranking including every student's scores
// @Tags report
// @Produce json
// @Security BearerAuth
// @Success 200 {object} FullReportResponse
// @Router /report/full-report [get]
func (h *ReportHandler) FullReport(c echo.Context) error {
	report, err := h.reportService.FullReport(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, FullReportResponse{RankedStudents: report})
}
