package handlers

import (
	"net/http"

	"github.com/anonto42/project-showcase/backend/internal/logger"
	"github.com/anonto42/project-showcase/backend/internal/repositories"
	"github.com/anonto42/project-showcase/backend/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Translator renders validation errors keyed by JSON field name
type Translator interface {
	Translate(errs validator.ValidationErrors) map[string]string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that knows how to
// render service errors. Server errors are logged; everything else is the
// caller's fault and only echoed back.
func NewHTTPErrorHandler(log logger.Logger, translator Translator) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(http.StatusInternalServerError)
		var fields map[string]string

		var (
			httpErr *echo.HTTPError
			appErr  *services.AppError
			vErrs   validator.ValidationErrors
		)
		switch {
		case errors.As(err, &httpErr):
			if herr, ok := httpErr.Internal.(*echo.HTTPError); ok {
				httpErr = herr
			}
			code = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		case errors.As(err, &vErrs):
			code = http.StatusBadRequest
			message = "validation failed"
			if translator != nil {
				fields = translator.Translate(vErrs)
			}
		case errors.As(err, &appErr):
			code = statusForKind(appErr.Kind)
			message = appErr.Message
		case errors.Is(err, repositories.ErrNotFound):
			code = http.StatusNotFound
			message = "not found"
		case errors.Is(err, repositories.ErrInvalidID):
			code = http.StatusBadRequest
			message = "invalid id"
		}

		if code >= http.StatusInternalServerError {
			log.Error(c.Request().Method+" "+c.Path()+" failed", err, requestID(c))
			if code == http.StatusInternalServerError {
				message = http.StatusText(code)
			}
		}

		body := echo.Map{"success": false, "message": message}
		if len(fields) > 0 {
			body["fields"] = fields
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			log.Error("failed to write error response", err)
		}
	}
}

func statusForKind(kind services.Kind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindForbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
