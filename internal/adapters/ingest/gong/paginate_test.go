package gong

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

// scriptDoer replays canned pages and records every request
type scriptDoer struct {
	pages []map[string]any
	reqs  []Request
	err   error
}

func (d *scriptDoer) Do(_ context.Context, r Request) (map[string]any, error) {
	d.reqs = append(d.reqs, r)
	if d.err != nil {
		return nil, d.err
	}
	p := d.pages[0]
	d.pages = d.pages[1:]
	return p, nil
}

func TestFetch_ConcatenatesListsAcrossPages(t *testing.T) {
	d := &scriptDoer{pages: []map[string]any{
		{"calls": []any{"a", "b"}, "records": map[string]any{"cursor": "c1", "totalRecords": 3.0}, "requestId": "r1"},
		{"calls": []any{"c"}, "records": map[string]any{"totalRecords": 3.0}, "requestId": "r2"},
	}}
	p := NewPaginator(d)
	out, err := p.Fetch(context.Background(), Request{
		Method: http.MethodPost,
		Path:   pathCalls,
		Body:   map[string]any{"limit": 200},
	}, true)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	calls, _ := out["calls"].([]any)
	if len(calls) != 3 || calls[0] != "a" || calls[2] != "c" {
		t.Fatalf("calls = %v", calls)
	}
	if out["requestId"] != "r2" {
		t.Fatalf("scalar fields keep the last page: %v", out["requestId"])
	}
	if len(d.reqs) != 2 {
		t.Fatalf("requests = %d", len(d.reqs))
	}
	if _, ok := d.reqs[0].Body["cursor"]; ok {
		t.Fatalf("first request should have no cursor: %v", d.reqs[0].Body)
	}
	if d.reqs[1].Body["cursor"] != "c1" || d.reqs[1].Body["limit"] != 200 {
		t.Fatalf("second body = %v", d.reqs[1].Body)
	}
}

func TestFetch_GetCursorGoesToQuery(t *testing.T) {
	d := &scriptDoer{pages: []map[string]any{
		{"users": []any{1}, "cursor": "next"},
		{"users": []any{2}},
	}}
	out, err := NewPaginator(d).Fetch(context.Background(), Request{
		Method: http.MethodGet,
		Path:   pathUsers,
		Query:  map[string][]string{"limit": {"200"}},
	}, true)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if users, _ := out["users"].([]any); len(users) != 2 {
		t.Fatalf("users = %v", out["users"])
	}
	q := d.reqs[1].Query
	if q.Get("cursor") != "next" || q.Get("limit") != "200" {
		t.Fatalf("second query = %v", q)
	}
	if d.reqs[0].Query.Get("cursor") != "" {
		t.Fatalf("original query mutated: %v", d.reqs[0].Query)
	}
}

func TestFetch_RecordsWithoutCursorStops(t *testing.T) {
	d := &scriptDoer{pages: []map[string]any{
		{"calls": []any{1}, "records": map[string]any{}, "cursor": "ignored"},
	}}
	if _, err := NewPaginator(d).Fetch(context.Background(), Request{Method: http.MethodPost}, true); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(d.reqs) != 1 {
		t.Fatalf("records object wins over top level cursor, requests = %d", len(d.reqs))
	}
}

func TestFetch_NoPaginateReturnsFirstPage(t *testing.T) {
	d := &scriptDoer{pages: []map[string]any{
		{"calls": []any{1}, "records": map[string]any{"cursor": "c1"}},
	}}
	out, err := NewPaginator(d).Fetch(context.Background(), Request{Method: http.MethodPost}, false)
	if err != nil || len(d.reqs) != 1 {
		t.Fatalf("Fetch = %v, %v (requests %d)", out, err, len(d.reqs))
	}
	if rec, _ := out["records"].(map[string]any); rec["cursor"] != "c1" {
		t.Fatalf("raw response expected: %v", out)
	}
}

func TestFetch_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewPaginator(&scriptDoer{err: boom}).Fetch(context.Background(), Request{}, true)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
