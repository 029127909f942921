package migrations

import (
	"io/fs"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"postgresql://u:p@h/db": "postgres://u:p@h/db",
		"postgres://u:p@h/db":   "postgres://u:p@h/db",
	}
	for in, want := range cases {
		if got := normalize(in); got != want {
			t.Fatalf("normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEmbeddedFilesArePaired(t *testing.T) {
	names, err := fs.Glob(files, "sql/*.sql")
	if err != nil {
		t.Fatal(err)
	}
	ups, downs := 0, 0
	for _, n := range names {
		switch {
		case strings.HasSuffix(n, ".up.sql"):
			ups++
		case strings.HasSuffix(n, ".down.sql"):
			downs++
		}
	}
	if ups == 0 || ups != downs {
		t.Fatalf("want paired up/down migrations, got %d up %d down", ups, downs)
	}

	b, err := fs.ReadFile(files, "sql/000001_init.up.sql")
	if err != nil {
		t.Fatal(err)
	}
	for _, table := range []string{"accounts", "evaluated_calls", "sales_reps"} {
		if !strings.Contains(string(b), "CREATE TABLE IF NOT EXISTS "+table) {
			t.Fatalf("init migration missing table %s", table)
		}
	}
}
