package repl

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHistoryAddMaxSize(t *testing.T) {
	h := &History{maxSize: 3}
	for _, c := range []string{"cmd1", "cmd2", "cmd3", "cmd4"} {
		h.Add(c)
	}

	got := h.Entries()
	want := []string{"cmd2", "cmd3", "cmd4"}
	if len(got) != len(want) {
		t.Fatalf("len(Entries()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entries()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHistoryGet(t *testing.T) {
	h := NewHistory("")
	h.Add("first")
	h.Add("second")

	tests := []struct {
		index int
		want  string
	}{
		{0, "second"},
		{1, "first"},
		{2, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := h.Get(tt.index); got != tt.want {
			t.Errorf("Get(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestHistorySaveLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "history")

	h := NewHistory(file)
	h.Add("insert a 1")
	h.Add("get a")
	if err := h.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(file)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	loaded := NewHistory(file)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Get(0) != "get a" || loaded.Get(1) != "insert a 1" {
		t.Errorf("loaded entries = %v", loaded.Entries())
	}
}

func TestHistoryMissingOrDisabled(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "none"))
	if err := h.Load(); err != nil {
		t.Errorf("Load() on missing file error = %v", err)
	}

	mem := NewHistory("")
	mem.Add("x")
	if err := mem.Save(); err != nil {
		t.Errorf("Save() without file error = %v", err)
	}
	if err := mem.Load(); err != nil {
		t.Errorf("Load() without file error = %v", err)
	}
}
