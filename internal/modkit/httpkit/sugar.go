package httpkit

import (
	"net/http"

	phttp "introspect/internal/platform/net/http"
	"introspect/internal/platform/net/http/bind"
)

// Get mounts a body-less handler; slices are wrapped as a counted list
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}

// GetQuery decodes and validates the query string into T before calling h
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.GetJSON(r, path, func(req *http.Request) (any, error) {
		q, err := bind.Query[T](req)
		if err != nil {
			return nil, err
		}
		return h(req, q)
	})
}
