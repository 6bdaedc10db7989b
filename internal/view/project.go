package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/productdevbook/connwatch/internal/tracker"
)

// Project filters rows by status and query, then stable-sorts them by the
// active column in ascending order. The input slice is not modified.
func Project(rows []tracker.Row, s State) []tracker.Row {
	filter := s.Filter()

	out := make([]tracker.Row, 0, len(rows))
	for _, r := range rows {
		if filter != FilterAll && r.Status != filter {
			continue
		}
		out = append(out, r)
	}

	if s.Query != "" {
		out = matchProcess(out, s.Query)
	}

	compare := comparator(s.Sort())
	slices.SortStableFunc(out, func(a, b tracker.Row) int {
		return compare(a.Record, b.Record)
	})
	return out
}

// Page returns rows[offset : offset+pageSize], clipped to bounds.
func Page(rows []tracker.Row, offset, pageSize int) []tracker.Row {
	if pageSize <= 0 || offset >= len(rows) {
		return nil
	}
	offset = max(offset, 0)
	end := min(offset+pageSize, len(rows))
	return rows[offset:end]
}

func comparator(column string) func(a, b tracker.Record) int {
	switch column {
	case SortPID:
		return func(a, b tracker.Record) int { return cmp.Compare(a.PID, b.PID) }
	case SortProcess:
		return func(a, b tracker.Record) int {
			return cmp.Compare(strings.ToLower(a.Process), strings.ToLower(b.Process))
		}
	case SortStatus:
		return func(a, b tracker.Record) int { return cmp.Compare(a.Status, b.Status) }
	case SortLocal:
		return func(a, b tracker.Record) int { return cmp.Compare(a.Local, b.Local) }
	case SortRemote:
		return func(a, b tracker.Record) int { return cmp.Compare(a.RemoteDisplay, b.RemoteDisplay) }
	}
	return func(tracker.Record, tracker.Record) int { return 0 }
}

// matchProcess keeps rows whose process name fuzzily matches query,
// preserving their order.
func matchProcess(rows []tracker.Row, query string) []tracker.Row {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Process
	}

	matched := make(map[int]struct{})
	for _, m := range fuzzy.FindNoSort(query, names) {
		matched[m.Index] = struct{}{}
	}

	out := make([]tracker.Row, 0, len(matched))
	for i, r := range rows {
		if _, ok := matched[i]; ok {
			out = append(out, r)
		}
	}
	return out
}
