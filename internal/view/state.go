// Package view holds the interactive filter, sort and scroll selection and
// the pure functions that move between states.
package view

import (
	"fmt"
	"strings"
)

const (
	FilterAll = "ALL"

	SortPID     = "pid"
	SortProcess = "process"
	SortStatus  = "status"
	SortLocal   = "local"
	SortRemote  = "remote"
)

// Filters lists the status filters in cycling order.
var Filters = []string{FilterAll, "ESTABLISHED", "TIME_WAIT", "CLOSE_WAIT", "LISTEN"}

// SortColumns lists the sort columns in cycling order.
var SortColumns = []string{SortPID, SortProcess, SortStatus, SortLocal, SortRemote}

const (
	defaultFilter = 1 // ESTABLISHED
	defaultSort   = 1 // process
)

// State is the current filter, sort column and scroll offset. Query, when
// set, restricts rows to processes fuzzily matching it.
type State struct {
	FilterIndex int
	SortIndex   int
	Offset      int
	Query       string
}

// Default returns the startup state: ESTABLISHED, sorted by process.
func Default() State {
	return State{FilterIndex: defaultFilter, SortIndex: defaultSort}
}

// New builds a state from filter and sort names. Empty names keep the
// defaults; matching is case-insensitive.
func New(filter, sortBy string) (State, error) {
	s := Default()
	if filter != "" {
		i := indexFold(Filters, filter)
		if i < 0 {
			return State{}, fmt.Errorf("unknown filter %q (want one of %s)", filter, strings.Join(Filters, ", "))
		}
		s.FilterIndex = i
	}
	if sortBy != "" {
		i := indexFold(SortColumns, sortBy)
		if i < 0 {
			return State{}, fmt.Errorf("unknown sort column %q (want one of %s)", sortBy, strings.Join(SortColumns, ", "))
		}
		s.SortIndex = i
	}
	return s, nil
}

func indexFold(list []string, v string) int {
	for i, item := range list {
		if strings.EqualFold(item, v) {
			return i
		}
	}
	return -1
}

// Filter returns the active status filter.
func (s State) Filter() string {
	return Filters[mod(s.FilterIndex, len(Filters))]
}

// Sort returns the active sort column.
func (s State) Sort() string {
	return SortColumns[mod(s.SortIndex, len(SortColumns))]
}

// CycleFilter advances to the next filter and scrolls back to the top.
func (s State) CycleFilter() State {
	s.FilterIndex = mod(s.FilterIndex+1, len(Filters))
	s.Offset = 0
	return s
}

// CycleSort advances to the next sort column and scrolls back to the top.
func (s State) CycleSort() State {
	s.SortIndex = mod(s.SortIndex+1, len(SortColumns))
	s.Offset = 0
	return s
}

// Scroll moves the offset by delta, clamped to [0, maxOffset].
func (s State) Scroll(delta, maxOffset int) State {
	s.Offset = clamp(s.Offset+delta, 0, maxOffset)
	return s
}

// Clamp pulls the offset back into [0, maxOffset], e.g. after rows vanished.
func (s State) Clamp(maxOffset int) State {
	return s.Scroll(0, maxOffset)
}

// MaxOffset is the largest valid offset for total rows and a page size.
func MaxOffset(total, pageSize int) int {
	return max(0, total-pageSize)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
