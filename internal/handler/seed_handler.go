package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "gradebook/internal/errors"
	"gradebook/internal/seed"
	"gradebook/internal/service"
)

// SeedHandler handles bulk import endpoints.
type SeedHandler struct {
	studentService service.StudentService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(studentService service.StudentService) *SeedHandler {
	return &SeedHandler{studentService: studentService}
}

// SeedStudentsResponse represents the seed response.
type SeedStudentsResponse struct {
	Message string `json:"message"`
	seed.Result
}

// SeedStudents godoc
// @Summary Bulk import students
// @Description Creates each student, replacing name and scores of ids that already exist. Invalid records are skipped.
// @Tags seed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []seed.Record true "Students"
// @Success 200 {object} SeedStudentsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /seed/students [post]
func (h *SeedHandler) SeedStudents(c echo.Context) error {
	students, err := seed.Decode(c.Request().Body)
	if err != nil {
		return errorResponse(apperrors.Validation(err.Error()))
	}

	res, err := seed.Apply(c.Request().Context(), h.studentService, students)
	if err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusOK, SeedStudentsResponse{
		Message: "Students seeded successfully.",
		Result:  res,
	})
}
