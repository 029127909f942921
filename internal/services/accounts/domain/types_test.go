package domain

import (
	"testing"
	"time"

	"introspect/internal/core/meddpicc"
)

func scores(t *testing.T, v ...int) meddpicc.Scores {
	t.Helper()
	s, err := meddpicc.New(meddpicc.Dims{
		Metrics: v[0], EconomicBuyer: v[1], DecisionCriteria: v[2], DecisionProcess: v[3],
		PaperProcess: v[4], IdentifyPain: v[5], Champion: v[6], Competition: v[7],
	})
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	return s
}

func TestApply_CreatesVerbatim(t *testing.T) {
	day := time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)
	c := Call{CallID: "c1", CallDate: day, Scores: scores(t, 3, 2, 4, 3, 2, 5, 3, 2)}
	a := Apply(nil, "client.com", c)
	if a.Domain != "client.com" || len(a.Calls) != 1 || !a.CreatedAt.Equal(day) || !a.UpdatedAt.Equal(day) {
		t.Fatalf("account = %+v", a)
	}
	if a.Overall != c.Scores || a.Overall.Overall != 3.0 {
		t.Fatalf("overall = %+v, want the call's vector", a.Overall)
	}
}

func TestApply_AppendsWithBestEver(t *testing.T) {
	d1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	d2, d3 := d1.AddDate(0, 0, 3), d1.AddDate(0, 0, 6)

	a := Apply(nil, "client.com", Call{CallID: "c1", CallDate: d1, Scores: scores(t, 5, 0, 0, 0, 0, 0, 0, 0)})
	a = Apply(&a, "client.com", Call{CallID: "c2", CallDate: d2, Scores: scores(t, 0, 5, 0, 0, 0, 0, 0, 0)})
	prev := a
	a = Apply(&a, "client.com", Call{CallID: "c3", CallDate: d3, Scores: scores(t, 2, 2, 2, 2, 2, 2, 2, 2)})

	if len(a.Calls) != 3 || len(prev.Calls) != 2 {
		t.Fatalf("calls = %d, prev mutated to %d", len(a.Calls), len(prev.Calls))
	}
	if !a.CreatedAt.Equal(d1) || !a.UpdatedAt.Equal(d3) {
		t.Fatalf("timestamps = %v .. %v", a.CreatedAt, a.UpdatedAt)
	}
	if a.Overall.Metrics != 5 || a.Overall.EconomicBuyer != 5 || a.Overall.Champion != 2 {
		t.Fatalf("dims = %+v", a.Overall.Dims)
	}
	// maxed dims average to 2.75 but the best single call is 2.0
	if a.Overall.Overall != 2.0 {
		t.Fatalf("overall = %v, want 2.0", a.Overall.Overall)
	}
}

func TestNormalizeDomain(t *testing.T) {
	if got := NormalizeDomain("  Client.COM "); got != "client.com" {
		t.Fatalf("NormalizeDomain = %q", got)
	}
}
