package module

import (
	"context"
	"testing"
	"time"

	"github.com/tmc/langchaingo/llms"

	"introspect/internal/adapters/ingest/gong"
	"introspect/internal/modkit"
	"introspect/internal/platform/config"
	perr "introspect/internal/platform/errors"
	"introspect/internal/platform/testkit/txfake"
)

type nopAPI struct{}

func (nopAPI) ListUsers(context.Context) ([]gong.User, error) { return nil, nil }
func (nopAPI) SearchCalls(context.Context, time.Time, time.Time, []string) ([]gong.Call, error) {
	return nil, nil
}
func (nopAPI) Transcripts(context.Context, []string) ([]gong.Transcript, error) { return nil, nil }

type nopModel struct{ llms.Model }

func TestFromConfig_Defaults(t *testing.T) {
	t.Setenv("GONG_ACCESS_KEY", "ak")
	t.Setenv("GONG_SECRET_KEY", "sk")
	t.Setenv("INTERNAL_DOMAIN", "co.com")
	t.Setenv("GONG_LOOKBACK_DAYS", "14")

	o := FromConfig(config.New())
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if o.LookbackDays != 14 || o.Gong.MaxRetries != 5 || o.Gong.BackoffFactor != 0.8 ||
		o.Gong.BaseURL != gong.DefaultBaseURL || o.LLMMaxAttempts != 2 {
		t.Fatalf("options = %+v", o)
	}
}

func TestNew_MissingConfig(t *testing.T) {
	t.Setenv("GONG_ACCESS_KEY", "")
	_, err := New(modkit.Deps{Cfg: config.New()})
	if !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("New err = %v, want config error", err)
	}
}

func TestNewWith_Ports(t *testing.T) {
	m := NewWith(modkit.Deps{PG: &txfake.TxRecorder{}}, Options{InternalDomain: "co.com", LookbackDays: 7}, nopAPI{}, nopModel{})
	if m.Name() != "pipeline" {
		t.Fatalf("Name = %q", m.Name())
	}
	p, ok := m.Ports().(Ports)
	if !ok || p.Runner == nil || p.Accounts == nil || p.Ledger == nil || p.Reps == nil {
		t.Fatalf("Ports = %+v", m.Ports())
	}
	if err := m.Prepare(context.Background()); err != nil {
		t.Fatalf("Prepare without ClickHouse = %v", err)
	}
}
