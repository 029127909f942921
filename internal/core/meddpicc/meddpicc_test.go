package meddpicc

import (
	"testing"

	perr "introspect/internal/platform/errors"
)

func dims(v ...int) Dims {
	var a [8]int
	copy(a[:], v)
	return fromValues(a)
}

func TestOverall(t *testing.T) {
	cases := []struct {
		name string
		in   Dims
		want float64
	}{
		{"example call", dims(3, 2, 4, 3, 2, 5, 3, 2), 3.0},
		{"all zero", dims(0, 0, 0, 0, 0, 0, 0, 0), 0.0},
		{"all max", dims(5, 5, 5, 5, 5, 5, 5, 5), 5.0},
		{"mean 2.125 rounds down", dims(2, 2, 2, 2, 2, 2, 2, 3), 2.1},
		{"mean 2.375 rounds up", dims(2, 2, 2, 2, 2, 3, 3, 3), 2.4},
		{"mean 0.625", dims(1, 1, 1, 1, 1, 0, 0, 0), 0.6},
		{"mean 4.875", dims(5, 5, 5, 5, 5, 5, 5, 4), 4.9},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Overall(c.in); got != c.want {
				t.Fatalf("Overall = %v, want %v", got, c.want)
			}
		})
	}
}

func TestNew_RejectsOutOfRange(t *testing.T) {
	cases := []struct {
		in    Dims
		field string
	}{
		{dims(6, 0, 0, 0, 0, 0, 0, 0), Metrics},
		{dims(0, 0, 0, 0, 0, 0, 0, -1), Competition},
		{dims(0, 0, 0, 9, 0, 0, 0, 0), DecisionProcess},
	}
	for _, c := range cases {
		_, err := New(c.in)
		pe, ok := perr.As(err)
		if !ok || pe.Code() != perr.ErrorCodeValidation || pe.Field() != c.field {
			t.Fatalf("New(%v) err = %v, want validation on %s", c.in, err, c.field)
		}
	}

	s, err := New(dims(3, 2, 4, 3, 2, 5, 3, 2))
	if err != nil || s.Overall != 3.0 {
		t.Fatalf("New = %+v, %v", s, err)
	}
}

func TestAggregate_MaxOverallNotMeanOfMaxes(t *testing.T) {
	a, _ := New(dims(5, 0, 0, 0, 0, 0, 0, 0)) // 0.6
	b, _ := New(dims(0, 5, 0, 0, 0, 0, 0, 0)) // 0.6
	c, _ := New(dims(2, 2, 2, 2, 2, 2, 2, 2)) // 2.0

	got := Aggregate([]Scores{a, b, c})
	if got.Dims != dims(5, 5, 2, 2, 2, 2, 2, 2) {
		t.Fatalf("dims = %+v", got.Dims)
	}
	if got.Overall != 2.0 {
		t.Fatalf("overall = %v, want 2.0 (max per call), mean of maxes would be %v", got.Overall, Overall(got.Dims))
	}
	if Overall(got.Dims) == got.Overall {
		t.Fatalf("fixture should separate max overall from mean of maxes")
	}
}

func TestAggregate_SingleCallIsVerbatim(t *testing.T) {
	s, _ := New(dims(3, 2, 4, 3, 2, 5, 3, 2))
	if got := Aggregate([]Scores{s}); got != s {
		t.Fatalf("Aggregate([s]) = %+v, want %+v", got, s)
	}
	if got := Aggregate(nil); got != (Scores{}) {
		t.Fatalf("Aggregate(nil) = %+v", got)
	}
}

func TestAggregate_IgnoresStoredOverall(t *testing.T) {
	forged := Scores{Dims: dims(1, 1, 1, 1, 1, 1, 1, 1), Overall: 4.9}
	if got := Aggregate([]Scores{forged}); got.Overall != 1.0 {
		t.Fatalf("overall = %v, want recomputed 1.0", got.Overall)
	}
	if forged.Recompute().Overall != 1.0 {
		t.Fatalf("Recompute did not derive overall")
	}
}

func TestDimensionsAndGet(t *testing.T) {
	names := Dimensions()
	if len(names) != 8 || names[0] != Metrics || names[7] != Competition {
		t.Fatalf("Dimensions = %v", names)
	}
	names[0] = "mutated"
	if Dimensions()[0] != Metrics {
		t.Fatalf("Dimensions must return a copy")
	}
	d := dims(1, 2, 3, 4, 5, 0, 1, 2)
	if v, ok := d.Get(PaperProcess); !ok || v != 5 {
		t.Fatalf("Get(paper_process) = %d %v", v, ok)
	}
	if _, ok := d.Get("nope"); ok {
		t.Fatalf("Get(unknown) should be false")
	}
}
