package serviceutils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gehrmanng/taskplanner/internal/domain"
)

type GenericResponse struct {
	Success bool
	Message string
	Data    interface{}
	Error   string
}

func ResponseSuccess(c echo.Context, code int, msg string, data interface{}) error {
	return c.JSON(code, GenericResponse{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

func ResponseError(c echo.Context, code int, msg string, err error) error {
	resp := GenericResponse{
		Success: false,
		Message: msg,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return c.JSON(code, resp)
}

// ResponseForError maps domain errors to their HTTP status. Anything not in
// the taxonomy is an internal error.
func ResponseForError(c echo.Context, msg string, err error) error {
	return ResponseError(c, StatusForError(err), msg, err)
}

func StatusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidShareMode), errors.Is(err, domain.ErrNotShared):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
