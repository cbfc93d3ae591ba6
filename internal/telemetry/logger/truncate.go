package logger

import (
	"fmt"
	"log/slog"
)

// truncateAttr shortens string values longer than max bytes. Keys and
// values stored in a table can be arbitrarily large; a log line should not
// be.
func truncateAttr(a slog.Attr, max int) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		s := a.Value.String()
		if len(s) > max {
			return slog.String(a.Key, fmt.Sprintf("%s...(+%d bytes)", s[:max], len(s)-max))
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = truncateAttr(attr, max)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}
