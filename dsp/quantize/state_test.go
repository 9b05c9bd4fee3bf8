package quantize

import (
	"errors"
	"testing"
)

func TestStateRoundTrip(t *testing.T) {
	r := newRig(t, WithInputMode(ModeDiscrete))
	data, err := r.q.MarshalState()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"quantize_mode":1}` {
		t.Fatalf("state = %s", data)
	}

	other := newRig(t)
	if err := other.q.UnmarshalState(data); err != nil {
		t.Fatal(err)
	}
	if other.q.InputMode() != ModeDiscrete {
		t.Fatalf("InputMode() = %v, want Discrete", other.q.InputMode())
	}
}

func TestStateMissingKeyDefaultsToContinuous(t *testing.T) {
	r := newRig(t, WithInputMode(ModeDiscrete))
	if err := r.q.UnmarshalState([]byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	if r.q.InputMode() != ModeContinuous {
		t.Fatalf("InputMode() = %v, want Continuous", r.q.InputMode())
	}
}

func TestStateErrorsKeepMode(t *testing.T) {
	r := newRig(t, WithInputMode(ModeDiscrete))

	if err := r.q.UnmarshalState([]byte(`{"quantize_mode":7}`)); !errors.Is(err, ErrInvalidInputMode) {
		t.Fatalf("error = %v, want ErrInvalidInputMode", err)
	}
	if err := r.q.UnmarshalState([]byte(`not json`)); err == nil {
		t.Fatal("expected decode error")
	}
	if r.q.InputMode() != ModeDiscrete {
		t.Fatalf("InputMode() = %v, want Discrete", r.q.InputMode())
	}
}
