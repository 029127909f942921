package net

import (
	"context"
	"errors"
	"net/http"
	"testing"

	perr "introspect/internal/platform/errors"
	"introspect/internal/platform/logger"
)

func TestEnvelopes(t *testing.T) {
	status, w := OK(map[string]int{"a": 1}, "r1")
	if status != http.StatusOK || w.StatusCode != 200 || w.Status != "OK" || w.RequestID != "r1" {
		t.Fatalf("OK envelope = %d %+v", status, w)
	}

	status, w = List([]string{"a.com", "b.com"}, 2, "r2")
	if status != http.StatusOK || w.Count == nil || *w.Count != 2 {
		t.Fatalf("List envelope = %d %+v", status, w)
	}

	status, w = NoContent("r3")
	if status != http.StatusNoContent || w.Data != nil {
		t.Fatalf("NoContent envelope = %d %+v", status, w)
	}
}

func TestErrorEnvelope(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   perr.ErrorCode
	}{
		{"nil", nil, http.StatusOK, perr.ErrorCodeUnknown},
		{"not found", perr.NotFoundf("account %q", "x.com"), http.StatusNotFound, perr.ErrorCodeNotFound},
		{"invalid", perr.WithField(perr.InvalidArgf("bad"), "limit"), http.StatusUnprocessableEntity, perr.ErrorCodeInvalidArgument},
		{"foreign", errors.New("boom"), http.StatusInternalServerError, perr.ErrorCodeUnknown},
	}
	for _, c := range cases {
		status, w := Error(c.err, "req")
		if status != c.status || w.StatusCode != c.status || w.Code != c.code {
			t.Fatalf("%s: Error() = %d %+v", c.name, status, w)
		}
		if HTTPStatus(c.err) != c.status {
			t.Fatalf("%s: HTTPStatus = %d", c.name, HTTPStatus(c.err))
		}
	}
	if _, w := Error(perr.WithField(perr.InvalidArgf("bad"), "limit"), ""); w.Field != "limit" {
		t.Fatalf("field not carried: %+v", w)
	}
}

func TestWithRequest(t *testing.T) {
	ctx := WithRequest(context.Background(), "abc")
	if RequestID(ctx) != "abc" {
		t.Fatalf("RequestID = %q", RequestID(ctx))
	}
	if same := WithRequest(context.Background(), ""); RequestID(same) != "" {
		t.Fatalf("empty id should leave ctx untouched")
	}
	_ = logger.C(ctx)
}
