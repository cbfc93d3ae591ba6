package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wizex/bucketmap/pkg/htable"
)

func TestHistogramRender(t *testing.T) {
	stats := []htable.BucketStats{
		{Index: 0, Count: 4},
		{Index: 1, Count: 2},
		{Index: 2, Count: 0},
	}

	var buf bytes.Buffer
	if err := (Histogram{Width: 8}).Render(&buf, stats); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}

	wantBars := []int{8, 4, 0}
	for i, n := range wantBars {
		if got := strings.Count(lines[i], "#"); got != n {
			t.Errorf("bucket %d bar = %d marks, want %d", i, got, n)
		}
	}
	if !strings.Contains(lines[3], "total") || !strings.Contains(lines[3], "6") {
		t.Errorf("summary line = %q, want total 6", lines[3])
	}
}

func TestHistogramEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := (Histogram{}).Render(&buf, []htable.BucketStats{{Index: 0}}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(buf.String(), "#") {
		t.Errorf("empty table rendered bars:\n%s", buf.String())
	}
}
