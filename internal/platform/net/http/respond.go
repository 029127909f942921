package http

import (
	"encoding/json"
	stdhttp "net/http"
	"reflect"

	lumnet "introspect/internal/platform/net"
)

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes the error envelope for err
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, body := lumnet.Error(err, lumnet.RequestID(r.Context()))
	JSON(w, status, body)
}

// Response is what return-style handlers produce
type Response struct {
	Status int
	Body   any
	Count  *int
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	reqID := lumnet.RequestID(r.Context())
	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}
	if resp.Status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}
	if resp.Count != nil {
		status, body := lumnet.List(resp.Body, *resp.Count, reqID)
		JSON(w, status, body)
		return
	}
	status, body := lumnet.OK(resp.Body, reqID)
	if resp.Status != 0 {
		status, body.StatusCode, body.Status = resp.Status, resp.Status, stdhttp.StatusText(resp.Status)
	}
	JSON(w, status, body)
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// List returns a 200 response that reports the number of items
func List(items any, n int) Response { return Response{Status: stdhttp.StatusOK, Body: items, Count: &n} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }

// GetJSON mounts a pure handler for GET; slice results carry a count
func GetJSON(r Router, path string, h func(*stdhttp.Request) (any, error)) {
	r.Get(path, Handle(func(req *stdhttp.Request) Response {
		out, err := h(req)
		if err != nil {
			return Error(err)
		}
		if v := reflect.ValueOf(out); v.Kind() == reflect.Slice {
			return List(out, v.Len())
		}
		return OK(out)
	}))
}
