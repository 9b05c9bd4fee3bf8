package core

import "testing"

func TestEnsureLenReusesCapacity(t *testing.T) {
	buf := make([]float64, 2, 8)
	got := EnsureLen(buf, 6)
	if len(got) != 6 || cap(got) != 8 {
		t.Fatalf("len/cap = %d/%d, want 6/8", len(got), cap(got))
	}
	if got := EnsureLen(buf, 0); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
	if got := EnsureLen(nil, 3); len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
}

func TestEnsureChannels(t *testing.T) {
	bufs := EnsureChannels(nil, 3, 4)
	if len(bufs) != 3 {
		t.Fatalf("channels = %d, want 3", len(bufs))
	}
	for ch, b := range bufs {
		if len(b) != 4 {
			t.Fatalf("channel %d len = %d, want 4", ch, len(b))
		}
	}

	first := bufs[0]
	bufs = EnsureChannels(bufs, 2, 2)
	if len(bufs) != 2 {
		t.Fatalf("channels = %d, want 2", len(bufs))
	}
	if &bufs[0][0] != &first[0] {
		t.Fatal("expected channel storage to be reused")
	}

	if got := EnsureChannels(bufs, 0, 4); len(got) != 0 {
		t.Fatalf("channels = %d, want 0", len(got))
	}
}

func TestFill(t *testing.T) {
	buf := make([]float64, 5)
	Fill(buf, 10)
	for i, v := range buf {
		if v != 10 {
			t.Fatalf("buf[%d] = %v, want 10", i, v)
		}
	}
}
