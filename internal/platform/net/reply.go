package net

import (
	"net/http"

	perr "introspect/internal/platform/errors"
)

// Wire is the envelope every read API response uses
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Count      *int           `json:"count,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func envelope(status int, reqID string, data any) Wire {
	return Wire{StatusCode: status, Status: http.StatusText(status), RequestID: reqID, Data: data}
}

// OK builds a 200 envelope
func OK(data any, reqID string) (int, Wire) {
	return http.StatusOK, envelope(http.StatusOK, reqID, data)
}

// List builds a 200 envelope with an item count
func List(data any, n int, reqID string) (int, Wire) {
	w := envelope(http.StatusOK, reqID, data)
	w.Count = &n
	return http.StatusOK, w
}

// NoContent builds a 204 envelope
func NoContent(reqID string) (int, Wire) {
	return http.StatusNoContent, envelope(http.StatusNoContent, reqID, nil)
}

// HTTPStatus maps a project error to http status, nil is 200
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return perr.HTTPStatus(err)
}

// Error builds an error envelope from any error
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return OK(nil, reqID)
	}
	status, pw := perr.HTTP(err)
	w := envelope(status, reqID, nil)
	w.Code, w.Error, w.Field = pw.Code, pw.Message, pw.Field
	return status, w
}
