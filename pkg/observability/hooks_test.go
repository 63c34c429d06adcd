package observability

import (
	"errors"
	"testing"
	"time"
)

type recordingHooks struct {
	starts    int
	completes int
	lastErr   error
}

func (r *recordingHooks) OnLayoutStart(int) { r.starts++ }
func (r *recordingHooks) OnLayoutComplete(_, _ int, _ time.Duration, err error) {
	r.completes++
	r.lastErr = err
}

func TestSetHooks(t *testing.T) {
	defer Reset()

	rec := &recordingHooks{}
	SetHooks(rec)

	Hooks().OnLayoutStart(3)
	wantErr := errors.New("boom")
	Hooks().OnLayoutComplete(3, 7, time.Millisecond, wantErr)

	if rec.starts != 1 || rec.completes != 1 {
		t.Errorf("starts = %d, completes = %d, want 1 and 1", rec.starts, rec.completes)
	}
	if rec.lastErr != wantErr {
		t.Errorf("lastErr = %v, want %v", rec.lastErr, wantErr)
	}
}

func TestSetHooksNilIgnored(t *testing.T) {
	defer Reset()

	rec := &recordingHooks{}
	SetHooks(rec)
	SetHooks(nil)

	Hooks().OnLayoutStart(1)
	if rec.starts != 1 {
		t.Error("nil SetHooks replaced the registered hooks")
	}
}

func TestReset(t *testing.T) {
	rec := &recordingHooks{}
	SetHooks(rec)
	Reset()

	Hooks().OnLayoutStart(1)
	if rec.starts != 0 {
		t.Error("Reset did not restore the no-op hooks")
	}
}
