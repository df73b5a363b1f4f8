package api

import (
	"errors"
	"net/http"

	"github.com/awrteam/awr/internal/apperrors"
	"github.com/labstack/echo/v4"
)

// errorHandler maps the apperrors taxonomy onto HTTP codes; bodies are always
// {"error": message}.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "внутренняя ошибка"

	var insufficient *apperrors.InsufficientStockError
	var invalid *apperrors.ValidationError
	var httpErr *echo.HTTPError

	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		code, msg = http.StatusUnauthorized, apperrors.ErrUnauthorized.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		code, msg = http.StatusForbidden, apperrors.ErrForbidden.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		code, msg = http.StatusNotFound, apperrors.ErrNotFound.Error()
	case errors.As(err, &insufficient):
		code, msg = http.StatusBadRequest, insufficient.Error()
	case errors.As(err, &invalid):
		code, msg = http.StatusBadRequest, invalid.Error()
	case errors.As(err, &httpErr):
		code = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		}
	default:
		s.log.Error("request failed", "method", c.Request().Method, "path", c.Path(), "err", err)
	}

	_ = c.JSON(code, map[string]string{"error": msg})
}
