package bind

import (
	"net/http/httptest"
	"testing"

	perr "introspect/internal/platform/errors"
)

type listQuery struct {
	Discovery *bool  `query:"discovery"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Rep       string `query:"rep" validate:"omitempty,email"`
}

func TestQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/evaluations?discovery=true&limit=25&rep=a@co.com", nil)
	q, err := Query[listQuery](r)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if q.Discovery == nil || !*q.Discovery || q.Limit != 25 || q.Rep != "a@co.com" {
		t.Fatalf("Query = %+v", q)
	}

	r = httptest.NewRequest("GET", "/evaluations", nil)
	q, err = Query[listQuery](r)
	if err != nil || q.Discovery != nil || q.Limit != 0 {
		t.Fatalf("empty Query = %+v, %v", q, err)
	}
}

func TestQuery_Errors(t *testing.T) {
	cases := []struct {
		url   string
		code  perr.ErrorCode
		field string
	}{
		{"/x?limit=abc", perr.ErrorCodeInvalidArgument, "limit"},
		{"/x?discovery=maybe", perr.ErrorCodeInvalidArgument, "discovery"},
		{"/x?limit=1000", perr.ErrorCodeValidation, "limit"},
		{"/x?rep=not-an-email", perr.ErrorCodeValidation, "rep"},
	}
	for _, c := range cases {
		_, err := Query[listQuery](httptest.NewRequest("GET", c.url, nil))
		pe, ok := perr.As(err)
		if !ok {
			t.Fatalf("%s: err = %v, want *perr.Error", c.url, err)
		}
		if pe.Code() != c.code || pe.Field() != c.field {
			t.Fatalf("%s: code %v field %q, want %v %q", c.url, pe.Code(), pe.Field(), c.code, c.field)
		}
	}
}

func TestStruct_MessagesUseJSONNames(t *testing.T) {
	type scores struct {
		Metrics int `json:"metrics" validate:"min=0,max=5"`
	}
	err := Struct(scores{Metrics: 9})
	pe, ok := perr.As(err)
	if !ok || pe.Field() != "metrics" || pe.Error() != "metrics must be at most 5" {
		t.Fatalf("Struct err = %v", err)
	}
	if err := Struct(scores{Metrics: 3}); err != nil {
		t.Fatalf("valid struct: %v", err)
	}
}
