package repokit

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"introspect/internal/platform/store"
)

type tag int64

func (t tag) String() string      { return "SET" }
func (t tag) RowsAffected() int64 { return int64(t) }

// recQ records executed statements and runs Tx inline
type recQ struct {
	execs []string
	err   error
}

func (r *recQ) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	r.execs = append(r.execs, sql)
	return tag(0), r.err
}
func (r *recQ) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (r *recQ) QueryRow(context.Context, string, ...any) store.Row        { return nil }
func (r *recQ) Tx(_ context.Context, fn func(Queryer) error) error        { return fn(r) }

func TestBindFunc(t *testing.T) {
	q := &recQ{}
	var got Queryer
	b := BindFunc[string](func(bound Queryer) string { got = bound; return "ok" })
	if v := b.Bind(q); v != "ok" || got != q {
		t.Fatalf("Bind = %q, bound %v", v, got)
	}
}

func TestWithBeginHooks_LocalTimeouts(t *testing.T) {
	q := &recQ{}
	tx := WithBeginHooks(q, LocalTimeouts(5*time.Second, 2*time.Second))

	ran := false
	err := tx.Tx(context.Background(), func(inner Queryer) error {
		ran = true
		_, err := inner.Exec(context.Background(), "UPDATE accounts SET calls = calls")
		return err
	})
	if err != nil || !ran {
		t.Fatalf("Tx = %v ran=%v", err, ran)
	}
	want := []string{"SET LOCAL statement_timeout = 5000", "SET LOCAL lock_timeout = 2000", "UPDATE accounts SET calls = calls"}
	if strings.Join(q.execs, "|") != strings.Join(want, "|") {
		t.Fatalf("execs = %v", q.execs)
	}

	if WithBeginHooks(q) != TxRunner(q) {
		t.Fatalf("no hooks should return inner unchanged")
	}
}

func TestWithBeginHooks_HookErrorStopsFn(t *testing.T) {
	q := &recQ{err: errors.New("denied")}
	tx := WithBeginHooks(q, LocalTimeouts(time.Second, 0))
	err := tx.Tx(context.Background(), func(Queryer) error {
		t.Fatalf("fn must not run after a failing hook")
		return nil
	})
	if err == nil || err.Error() != "denied" {
		t.Fatalf("Tx err = %v", err)
	}
}

func TestWithTx_Delegates(t *testing.T) {
	q := &recQ{}
	if err := WithTx(context.Background(), q, func(context.Context, Queryer) error { return nil }); err != nil {
		t.Fatalf("WithTx = %v", err)
	}
}
