package apierr

import (
	"errors"
	"net/http"

	"github.com/mcoot/staffdir/internal/api/response"
	"github.com/mcoot/staffdir/internal/model"
)

// APIError is the JSON body of every error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Codes used only by the REST surface
const (
	CodeInvalidRequest   = "BAD_USER_INPUT"
	CodeInternalError    = "INTERNAL_SERVER_ERROR"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	response.JSON(w, he.status, he.apiError)
}

// Status returns the HTTP status WriteError would use for err
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var me *model.Error
	if !errors.As(err, &me) {
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}

	api := APIError{Code: me.Kind.Code(), Message: me.Error()}
	switch me.Kind {
	case model.KindAuthentication:
		return &httpError{http.StatusUnauthorized, api}
	case model.KindAuthorization:
		return &httpError{http.StatusForbidden, api}
	case model.KindNotFound:
		return &httpError{http.StatusNotFound, api}
	case model.KindConflict, model.KindValidation:
		return &httpError{http.StatusBadRequest, api}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// NewNotFoundError is returned for unknown API routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{model.KindNotFound.Code(), "Not found"}}
}

// NewMethodNotAllowedError is returned when an API route exists but not for the request method
func NewMethodNotAllowedError() error {
	return &httpError{http.StatusMethodNotAllowed, APIError{CodeMethodNotAllowed, "Method not allowed"}}
}
