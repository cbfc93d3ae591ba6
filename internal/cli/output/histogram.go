package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/wizex/bucketmap/pkg/htable"
)

// Histogram renders one bar per bucket scaled to the fullest bucket.
type Histogram struct {
	Width int
}

// Render writes the distribution of stats to w.
func (h Histogram) Render(w io.Writer, stats []htable.BucketStats) error {
	width := h.Width
	if width <= 0 {
		width = 40
	}

	var peak, total int
	for _, s := range stats {
		total += s.Count
		if s.Count > peak {
			peak = s.Count
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	for _, s := range stats {
		n := 0
		if peak > 0 {
			n = s.Count * width / peak
		}
		fmt.Fprintf(tw, "%d\t%d\t %s\n", s.Index, s.Count, strings.Repeat("#", n))
	}
	fmt.Fprintf(tw, "total\t%d\t\n", total)
	return tw.Flush()
}
