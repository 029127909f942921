package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	kit "introspect/internal/platform/testkit"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"WARN", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"fatal", "fatal"},
		{"panic", "panic"},
		{"", "info"},
		{"  chatty  ", "info"},
	}
	for _, c := range cases {
		if got := ParseLevel(c.in).String(); got != c.want {
			t.Fatalf("ParseLevel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestInit_NamedAndContextFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "introspect-test",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "test"},
	})

	Get().Info().Msg("root-msg")
	Named("gong").Info().Msg("named-msg")

	ctx := WithRun(WithRequest(context.Background(), "req-1"), "run-42")
	C(ctx).Info().Msg("ctx-msg")

	out := buf.String()
	kit.MustContain(t, out, `"message":"root-msg"`)
	kit.MustContain(t, out, `"component":"gong"`)
	kit.MustContain(t, out, `"request_id":"req-1"`)
	kit.MustContain(t, out, `"run_id":"run-42"`)
	kit.MustContain(t, out, `"service":"introspect-test"`)
	kit.MustContain(t, out, `"build":"test"`)
}

func TestRunID(t *testing.T) {
	if got := RunID(context.Background()); got != "" {
		t.Fatalf("RunID on empty ctx = %q", got)
	}
	ctx := WithRun(context.Background(), "abc")
	if got := RunID(ctx); got != "abc" {
		t.Fatalf("RunID = %q, want abc", got)
	}
	if same := WithRun(ctx, ""); RunID(same) != "abc" {
		t.Fatalf("empty run id should not overwrite")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "svc-b")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "svc-b" {
		t.Fatalf("FromEnv fields mismatch: %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("FromEnv caller/sample mismatch: %+v", opt)
	}
	if strings.Contains(opt.Service, " ") {
		t.Fatalf("service should be trimmed")
	}
}
