package view

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, "ESTABLISHED", s.Filter())
	assert.Equal(t, SortProcess, s.Sort())
	assert.Zero(t, s.Offset)
}

func TestCycleFilterReturnsToStart(t *testing.T) {
	start := Default()
	s := start
	seen := make(map[string]bool)
	for i := 0; i < len(Filters); i++ {
		seen[s.Filter()] = true
		s = s.CycleFilter()
	}
	assert.Equal(t, start.Filter(), s.Filter())
	assert.Len(t, seen, len(Filters))
}

func TestCycleSortReturnsToStart(t *testing.T) {
	start := Default()
	s := start
	for i := 0; i < len(SortColumns); i++ {
		s = s.CycleSort()
	}
	assert.Equal(t, start.Sort(), s.Sort())
}

func TestCyclingResetsOffset(t *testing.T) {
	s := Default().Scroll(7, 10)
	require.Equal(t, 7, s.Offset)

	assert.Zero(t, s.CycleFilter().Offset)
	assert.Zero(t, s.CycleSort().Offset)
}

func TestScrollStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		total := rng.Intn(100)
		page := 1 + rng.Intn(30)
		maxOffset := MaxOffset(total, page)

		s := Default()
		for step := 0; step < 50; step++ {
			delta := rng.Intn(2*page+1) - page
			s = s.Scroll(delta, maxOffset)
			require.GreaterOrEqual(t, s.Offset, 0)
			require.LessOrEqual(t, s.Offset, max(0, total-page))
		}
	}
}

func TestScrollExamples(t *testing.T) {
	s := Default()
	assert.Zero(t, s.Scroll(-1, 5).Offset)
	assert.Equal(t, 5, s.Scroll(100, 5).Offset)
	assert.Zero(t, s.Scroll(3, 0).Offset)
	assert.Equal(t, 2, s.Scroll(3, 5).Scroll(-1, 5).Offset)
}

func TestClamp(t *testing.T) {
	s := Default().Scroll(20, 20)
	assert.Equal(t, 4, s.Clamp(4).Offset)
	assert.Equal(t, 20, s.Clamp(30).Offset)
}

func TestNew(t *testing.T) {
	s, err := New("listen", "PID")
	require.NoError(t, err)
	assert.Equal(t, "LISTEN", s.Filter())
	assert.Equal(t, SortPID, s.Sort())

	s, err = New("", "")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)

	_, err = New("SYN_SENT", "")
	assert.Error(t, err)
	_, err = New("", "bytes")
	assert.Error(t, err)
}

func TestMaxOffset(t *testing.T) {
	assert.Equal(t, 0, MaxOffset(5, 10))
	assert.Equal(t, 0, MaxOffset(10, 10))
	assert.Equal(t, 3, MaxOffset(13, 10))
}
