package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "gradebook/internal/errors"
	"gradebook/internal/model"
	"gradebook/internal/service"
)

// StudentHandler handles student record endpoints.
type StudentHandler struct {
	studentService service.StudentService
}

// NewStudentHandler creates a new student handler.
func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// ScoreRequest is one subject score in a request body.
type ScoreRequest struct {
	Subject string   `json:"subject" validate:"required"`
	Score   *float64 `json:"score" validate:"required"`
}

// CreateStudentRequest represents a student creation request.
type CreateStudentRequest struct {
	ID     int            `json:"id" validate:"required"`
	Name   string         `json:"name" validate:"required"`
	Scores []ScoreRequest `json:"scores" validate:"required,min=1,dive"`
}

// UpdateStudentRequest is a partial update; absent fields are kept.
type UpdateStudentRequest struct {
	Name   *string        `json:"name"`
	Scores []ScoreRequest `json:"scores" validate:"omitempty,dive"`
}

// StudentResponse wraps a student with a confirmation message.
type StudentResponse struct {
	Message string         `json:"message"`
	Student *model.Student `json:"student"`
}

func toScores(req []ScoreRequest) []model.Score {
	if req == nil {
		return nil
	}
	scores := make([]model.Score, 0, len(req))
	for _, s := range req {
		score := model.Score{Subject: s.Subject}
		if s.Score != nil {
			score.Score = *s.Score
		}
		scores = append(scores, score)
	}
	return scores
}

func studentID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, errorResponse(apperrors.Validation("invalid student id"))
	}
	return id, nil
}

// CreateStudent godoc
// @Summary Create a student record
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateStudentRequest true "Student data"
// @Success 201 {object} StudentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /students [post]
func (h *StudentHandler) CreateStudent(c echo.Context) error {
	var req CreateStudentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	student, err := h.studentService.CreateStudent(c.Request().Context(), &model.Student{
		ID:     req.ID,
		Name:   req.Name,
		Scores: toScores(req.Scores),
	})
	if err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusCreated, StudentResponse{
		Message: "Student added successfully.",
		Student: student,
	})
}

// ListStudents godoc
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Student
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /students [get]
func (h *StudentHandler) ListStudents(c echo.Context) error {
	students, err := h.studentService.ListStudents(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, students)
}

// GetStudent godoc
// @Summary Get student by id
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} model.Student
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(c echo.Context) error {
	id, err := studentID(c)
	if err != nil {
		return err
	}

	student, err := h.studentService.GetStudent(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, student)
}

// UpdateStudent godoc
// @Summary Update a student's name and/or scores
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body UpdateStudentRequest true "Fields to change"
// @Success 200 {object} StudentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /students/{id} [put]
func (h *StudentHandler) UpdateStudent(c echo.Context) error {
	id, err := studentID(c)
	if err != nil {
		return err
	}

	var req UpdateStudentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	student, err := h.studentService.UpdateStudent(c.Request().Context(), id, model.StudentPatch{
		Name:   req.Name,
		Scores: toScores(req.Scores),
	})
	if err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusOK, StudentResponse{
		Message: "Student updated successfully.",
		Student: student,
	})
}

// DeleteStudent godoc
// @Summary Delete a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} StudentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c echo.Context) error {
	id, err := studentID(c)
	if err != nil {
		return err
	}

	student, err := h.studentService.DeleteStudent(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusOK, StudentResponse{
		Message: "Student deleted successfully.",
		Student: student,
	})
}
