package tuning

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"
)

func TestParseJSONRoundTrip(t *testing.T) {
	table := DefaultTable()
	table[60] = 262
	snap, err := NewSnapshot(table, 1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "table.json")
	if err := WriteFile(path, snap); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(snap, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJSONErrors(t *testing.T) {
	freqs := strings.TrimSuffix(strings.Repeat("440,", NumNotes), ",")
	tests := []struct {
		name    string
		data    string
		invalid bool
	}{
		{"syntax", `{"frequencies":`, false},
		{"short", `{"frequencies":[440,441]}`, true},
		{"zero entry", `{"frequencies":[0,` + strings.TrimPrefix(freqs, "440,") + `]}`, true},
		{"bad filter", `{"frequencies":[` + freqs + `],"filtered":[128]}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.invalid && !errors.Is(err, ErrInvalidTable) {
				t.Fatalf("error = %v, want ErrInvalidTable", err)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWatcherFollowsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.json")

	first, _ := NewSnapshot(DefaultTable())
	if err := WriteFile(path, first); err != nil {
		t.Fatal(err)
	}

	live := NewLive()
	w, err := NewWatcher(path, live, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if !live.HasAuthority() {
		t.Fatal("watcher did not publish the initial table")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	table := DefaultTable()
	table[69] = 432
	second, _ := NewSnapshot(table, 70)
	if err := WriteFile(path, second); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return live.Frequency(69) == 432 && live.Filtered(70) })

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return !live.HasAuthority() })

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
