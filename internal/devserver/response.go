package devserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/genius-wizard-dev/storefront/internal/common"
)

// envelope is the body of every reply.
type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Result  any    `json:"result,omitempty"`
}

func sendResult(c echo.Context, status int, result any) error {
	return c.JSON(status, envelope{Code: common.CodeSuccess, Result: result})
}

func sendError(c echo.Context, status, code int, msg string) error {
	return c.JSON(status, envelope{Code: code, Message: msg})
}

// errorHandler turns handler errors into enveloped replies.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, code, msg := classify(err)
	if status >= http.StatusInternalServerError {
		s.log.Error(c.Request().Context(), "unhandled error", "error", err, "uri", c.Request().RequestURI)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = sendError(c, status, code, msg)
	}
	if err != nil {
		s.log.Error(c.Request().Context(), "write error response", "error", err)
	}
}

func classify(err error) (status, code int, msg string) {
	var (
		valErr  ValidationError
		httpErr *echo.HTTPError
	)

	switch {
	case errors.As(err, &valErr):
		return http.StatusBadRequest, common.CodeInvalidRequest, valErr.Error()
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, common.CodeUnauthenticated, "Invalid username or password"
	case errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrTokenRevoked),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrRefreshWindowClosed):
		return http.StatusUnauthorized, common.CodeUnauthenticated, "Unauthenticated: " + err.Error()
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, common.CodeNotFound, err.Error()
	case errors.Is(err, common.ErrAlreadyExists), errors.Is(err, ErrTotalMismatch):
		return http.StatusConflict, common.CodeConflict, err.Error()
	case errors.Is(err, ErrOutOfStock):
		return http.StatusConflict, common.CodeOutOfStock, err.Error()
	case errors.Is(err, ErrInvalidQuantity):
		return http.StatusBadRequest, common.CodeInvalidRequest, err.Error()
	case errors.As(err, &httpErr):
		return httpErr.Code, codeForStatus(httpErr.Code), fmt.Sprint(httpErr.Message)
	}
	return http.StatusInternalServerError, common.CodeInternal, "Internal server error"
}

func codeForStatus(status int) int {
	switch {
	case status == http.StatusUnauthorized:
		return common.CodeUnauthenticated
	case status == http.StatusForbidden:
		return common.CodeForbidden
	case status == http.StatusNotFound:
		return common.CodeNotFound
	case status == http.StatusConflict:
		return common.CodeConflict
	case status >= http.StatusInternalServerError:
		return common.CodeInternal
	}
	return common.CodeInvalidRequest
}
