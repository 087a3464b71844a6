// Package apperr defines the error shape returned to API clients and the
// translation of huma and database failures into it.
package apperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"
)

// Error is the body of every non-2xx response.
//
//	{"status":400,"code":"BAD_REQUEST","message":"Validation failed","errors":{"name":"is required"}}
type Error struct {
	Status  int               `json:"status"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// GetStatus makes *Error a huma.StatusError.
func (e *Error) GetStatus() int {
	return e.Status
}

// New builds an Error whose code is derived from the status text,
// e.g. 404 -> NOT_FOUND.
func New(status int, message string) *Error {
	return &Error{
		Status:  status,
		Code:    codeFor(status),
		Message: message,
	}
}

func BadRequest(message string, fields map[string]string) *Error {
	e := New(http.StatusBadRequest, message)
	if len(fields) > 0 {
		e.Errors = fields
	}
	return e
}

// NotFound reports a missing entity, e.g. NotFound("customer") -> "Customer not found".
func NotFound(entity string) *Error {
	return New(http.StatusNotFound, humanize(entity)+" not found")
}

// Internal never carries the cause; callers log it.
func Internal() *Error {
	return New(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func codeFor(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

// Install replaces huma's default RFC 9457 error constructor so that every
// error leaving the API, including schema validation failures, uses Error.
func Install() {
	huma.NewError = NewHumaError
}

// NewHumaError converts huma's error callbacks. Schema validation failures
// (422 in huma) are reported as 400 with one entry per offending field.
func NewHumaError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
		msg = "Validation failed"
	}

	if status >= http.StatusInternalServerError {
		for _, err := range errs {
			log.Error().Err(err).Int("status", status).Msg(msg)
		}
		if status == http.StatusInternalServerError {
			return Internal()
		}
		return New(status, msg)
	}

	e := New(status, msg)
	for _, err := range errs {
		var appErr *Error
		if errors.As(err, &appErr) {
			return appErr
		}

		var detail *huma.ErrorDetail
		if !errors.As(err, &detail) {
			continue
		}
		field, reason := fieldOf(detail)
		if e.Errors == nil {
			e.Errors = map[string]string{}
		}
		if prev, ok := e.Errors[field]; ok {
			if strings.Contains(prev, reason) {
				continue
			}
			reason = prev + "; " + reason
		}
		e.Errors[field] = reason
	}
	return e
}

const (
	requiredPrefix = "expected required property "
	requiredSuffix = " to be present"
)

// fieldOf turns a huma location such as "body.name" or "path.id" into the
// bare field name. Missing required properties are reported by huma against
// their parent object, so the name is recovered from the message.
func fieldOf(d *huma.ErrorDetail) (string, string) {
	field := d.Location
	for _, prefix := range []string{"body", "path", "query", "header"} {
		if field == prefix {
			field = ""
			break
		}
		if strings.HasPrefix(field, prefix+".") {
			field = strings.TrimPrefix(field, prefix+".")
			break
		}
	}

	reason := d.Message
	if strings.HasPrefix(reason, requiredPrefix) && strings.HasSuffix(reason, requiredSuffix) {
		if field == "" {
			field = strings.TrimSuffix(strings.TrimPrefix(reason, requiredPrefix), requiredSuffix)
		}
		reason = "is required"
	}
	if field == "" {
		field = "body"
	}
	return field, reason
}
