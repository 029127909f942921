package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeUpstream, http.StatusBadGateway},
		{ErrorCodeUpstreamParse, http.StatusBadGateway},
		{ErrorCodeScoring, http.StatusBadGateway},
		{ErrorCodeConfig, http.StatusInternalServerError},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e1 := New(ErrorCodeValidation, "bad stuff")
	if CodeOf(e1) != ErrorCodeValidation {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeJSON, "bad json %d", 12)
	if got := e2.Error(); got != "bad json 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	src := stderrs.New("root")
	e3 := Wrap(src, ErrorCodeDB, "db failed")
	if u := stderrs.Unwrap(e3); u == nil || u.Error() != "root" {
		t.Fatalf("Wrap did not keep orig")
	}
	if got := e3.Error(); got != "db failed: root" {
		t.Fatalf("Wrap().Error = %q", got)
	}
	if Root(fmt.Errorf("outer: %w", e3)) != src {
		t.Fatalf("Root should reach the innermost cause")
	}
	if WrapIf(nil, ErrorCodeDB, "x") != nil {
		t.Fatalf("WrapIf(nil) should be nil")
	}

	f := WithOp(WithField(e1, "email"), "reps.load")
	pe, ok := As(f)
	if !ok || pe.Field() != "email" || pe.Op() != "reps.load" {
		t.Fatalf("WithField/WithOp mismatch: %+v", pe)
	}
	if pe1, _ := As(e1); pe1.Field() != "" {
		t.Fatalf("WithField must copy, not mutate")
	}

	plain := stderrs.New("plain")
	if WithField(plain, "x") != plain {
		t.Fatalf("foreign errors should pass through WithField")
	}
}

func TestWireAndHTTP(t *testing.T) {
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("WireFrom(nil) = %+v", w)
	}
	w := WireFrom(WithField(InvalidArgf("limit %d", -1), "limit"))
	if w.Code != ErrorCodeInvalidArgument || w.Message != "limit -1" || w.Field != "limit" {
		t.Fatalf("WireFrom = %+v", w)
	}
	if w := WireFrom(stderrs.New("raw")); w.Code != ErrorCodeUnknown || w.Message != "raw" {
		t.Fatalf("WireFrom(foreign) = %+v", w)
	}

	status, _ := HTTP(nil)
	if status != http.StatusOK {
		t.Fatalf("HTTP(nil) status = %d", status)
	}
	status, wire := HTTP(fmt.Errorf("ctx: %w", Upstreamf("gong %d", 403)))
	if status != http.StatusBadGateway || wire.Code != ErrorCodeUpstream {
		t.Fatalf("HTTP(upstream) = %d %+v", status, wire)
	}
}

func TestHelpersAndString(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
		name string
	}{
		{NotFoundf("x"), ErrorCodeNotFound, "not_found"},
		{InvalidArgf("x"), ErrorCodeInvalidArgument, "invalid_argument"},
		{JSONErrf("x"), ErrorCodeJSON, "json"},
		{PanicErrf("x"), ErrorCodePanic, "panic"},
		{Unavailablef("x"), ErrorCodeUnavailable, "unavailable"},
		{Upstreamf("x"), ErrorCodeUpstream, "upstream"},
		{Scoringf("x"), ErrorCodeScoring, "scoring"},
		{Configf("x"), ErrorCodeConfig, "config"},
		{stderrs.New("x"), ErrorCodeUnknown, "unknown"},
	}
	for _, c := range cases {
		if !IsCode(c.err, c.code) {
			t.Fatalf("IsCode(%v, %v) = false", c.err, c.code)
		}
		if c.code.String() != c.name {
			t.Fatalf("%v.String() = %q, want %q", c.code, c.code.String(), c.name)
		}
	}
}
