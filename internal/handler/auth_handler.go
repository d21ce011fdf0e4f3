package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "gradebook/internal/errors"
	"gradebook/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CredentialsRequest is the body of signup and login requests.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// MessageResponse is a plain confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Registration data"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req CredentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Username, req.Password); err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "User registered successfully."})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful.",
		Token:   token,
	})
}

// Me godoc
// @Summary Current principal
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Principal
// @Failure 403 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	principal, ok := c.Get(PrincipalContextKey).(*service.Principal)
	if !ok {
		return errorResponse(apperrors.ErrInvalidToken)
	}
	return c.JSON(http.StatusOK, principal)
}
