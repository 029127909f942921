package gong

import (
	"errors"
	"net/http"

	perr "introspect/internal/platform/errors"
)

// APIError carries what the call platform answered, or the transport error
// when it never answered. It is always wrapped in a coded perr error
type APIError struct {
	Status int
	Body   string
	Err    error
}

// Error interface
func (e *APIError) Error() string {
	switch {
	case e.Err != nil:
		return e.Err.Error()
	case e.Body != "":
		return http.StatusText(e.Status) + ": " + e.Body
	default:
		return http.StatusText(e.Status)
	}
}

// Unwrap interface
func (e *APIError) Unwrap() error { return e.Err }

// HTTPStatus interface, 0 for transport errors
func (e *APIError) HTTPStatus() int { return e.Status }

const maxErrBody = 2048

func statusError(path string, status int, body []byte) error {
	if len(body) > maxErrBody {
		body = body[:maxErrBody]
	}
	return perr.Wrapf(&APIError{Status: status, Body: string(body)}, perr.ErrorCodeUpstream, "gong %s: HTTP %d", path, status)
}

func transportError(path string, attempts int, err error) error {
	return perr.Wrapf(&APIError{Err: err}, perr.ErrorCodeUpstream, "gong %s: request failed after %d attempts", path, attempts)
}

func parseError(path string, status int, err error) error {
	return perr.Wrapf(&APIError{Status: status, Err: err}, perr.ErrorCodeUpstreamParse, "gong %s: invalid JSON response", path)
}

// retryableStatus reports statuses worth another attempt
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// StatusOf returns the platform status carried by err, 0 when none
func StatusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

// IsAuthRejected reports whether the platform refused the credentials
func IsAuthRejected(err error) bool {
	s := StatusOf(err)
	return s == http.StatusUnauthorized || s == http.StatusForbidden
}
