package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	apperrors "gradebook/internal/errors"
	"gradebook/internal/handler"
	"gradebook/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	studentHandler *handler.StudentHandler,
	reportHandler *handler.ReportHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes (require a session token)
	secured := api.Group("", AuthGate(authService))

	secured.GET("/me", authHandler.Me)

	secured.POST("/students", studentHandler.CreateStudent)
	secured.GET("/students", studentHandler.ListStudents)
	secured.GET("/students/:id", studentHandler.GetStudent)
	secured.PUT("/students/:id", studentHandler.UpdateStudent)
	secured.DELETE("/students/:id", studentHandler.DeleteStudent)

	secured.GET("/report", reportHandler.Report)
	secured.GET("/report/top/:n", reportHandler.Top)
	secured.GET("/report/below/:threshold", reportHandler.BelowThreshold)
	secured.GET("/report/subject-averages", reportHandler.SubjectAverages)
	secured.GET("/report/full-report", reportHandler.FullReport)

	secured.POST("/seed/students", seedHandler.SeedStudents)
}

// AuthGate verifies the bearer token of every request through
// authService and stores the principal under handler.PrincipalContextKey.
func AuthGate(authService service.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.PrincipalContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return authService.Authenticate(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// extraction failures mean no usable bearer token was sent
			if !errors.Is(err, apperrors.ErrInvalidToken) {
				err = apperrors.ErrMissingCredential
			}
			httpErr := apperrors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
