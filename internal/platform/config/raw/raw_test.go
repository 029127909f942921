package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("LOG_SERVICE", "  introspect ")
	c := New().Prefix("LOG_")

	if got := c.Get("SERVICE", "x"); got != "introspect" {
		t.Fatalf("Get = %q, want introspect", got)
	}
	if got := c.Get("MISSING", "fallback"); got != "fallback" {
		t.Fatalf("Get missing = %q, want fallback", got)
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("B_")
	cases := []struct {
		env  string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"no", true, false},
		{"0", true, false},
		{"", true, true},
	}
	for _, tc := range cases {
		t.Setenv("B_FLAG", tc.env)
		if got := c.GetBool("FLAG", tc.def); got != tc.want {
			t.Fatalf("GetBool(%q, %v) = %v, want %v", tc.env, tc.def, got, tc.want)
		}
	}
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("I_")
	cases := []struct {
		env  string
		want int
	}{
		{"42", 42},
		{" 7 ", 7},
		{"-3", 9},
		{"abc", 9},
		{"", 9},
	}
	for _, tc := range cases {
		t.Setenv("I_N", tc.env)
		if got := c.GetInt("N", 9); got != tc.want {
			t.Fatalf("GetInt(%q) = %d, want %d", tc.env, got, tc.want)
		}
	}
}
