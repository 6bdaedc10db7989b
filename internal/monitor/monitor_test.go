package monitor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productdevbook/connwatch/internal/keys"
	"github.com/productdevbook/connwatch/internal/render"
	"github.com/productdevbook/connwatch/internal/scanner"
	"github.com/productdevbook/connwatch/internal/tracker"
	"github.com/productdevbook/connwatch/internal/view"
)

type tick struct {
	records []tracker.Record
	err     error
}

// scriptedSource replays steps, repeating the last one once exhausted.
type scriptedSource struct {
	steps []tick
	calls int
}

func (s *scriptedSource) Collect(context.Context) ([]tracker.Record, error) {
	i := min(s.calls, len(s.steps)-1)
	s.calls++
	return s.steps[i].records, s.steps[i].err
}

func conn(n int, status string) tracker.Record {
	local := fmt.Sprintf("10.0.0.1:%d", 5000+n)
	return tracker.Record{
		Local:         local,
		Remote:        "93.184.216.34:443",
		RemoteDisplay: "93.184.216.34:443",
		Status:        status,
		PID:           100 + n,
		Process:       "proc",
	}
}

func newTestMonitor(src Source, in keys.Reader, buf *bytes.Buffer, lines int) *Monitor {
	r := render.New(buf, render.FixedLines(lines), keys.DefaultKeyMap(), render.WithoutClear())
	return New(src, r, in, 20*time.Millisecond, view.Default())
}

func TestRunQuitsOnKey(t *testing.T) {
	src := &scriptedSource{steps: []tick{{records: []tracker.Record{conn(1, "ESTABLISHED")}}}}
	in := keys.NewScripted(runeKey('f'), runeKey('q'))

	var buf bytes.Buffer
	m := newTestMonitor(src, in, &buf, 40)
	require.NoError(t, m.Run(context.Background()))

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, "TIME_WAIT", m.state.Filter())
	// One frame from the poll and one redraw for the filter key.
	assert.Equal(t, 2, strings.Count(buf.String(), "TCP Connection Monitor"))
}

func TestRunStopsOnContextCancel(t *testing.T) {
	src := &scriptedSource{steps: []tick{{records: []tracker.Record{conn(1, "ESTABLISHED")}}}}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	m := newTestMonitor(src, keys.Nop{}, &buf, 40)
	require.NoError(t, m.Run(ctx))
	assert.GreaterOrEqual(t, src.calls, 1)
}

func TestRunReturnsPermissionError(t *testing.T) {
	denied := fmt.Errorf("%w: open /proc/net/tcp", scanner.ErrPermission)
	src := &scriptedSource{steps: []tick{{err: denied}}}

	var buf bytes.Buffer
	m := newTestMonitor(src, keys.Nop{}, &buf, 40)
	err := m.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, scanner.ErrPermission))
	assert.Empty(t, buf.String())
}

func TestTransientErrorIsEmptySnapshot(t *testing.T) {
	src := &scriptedSource{steps: []tick{
		{records: []tracker.Record{conn(1, "ESTABLISHED")}},
		{err: errors.New("netlink: resource busy")},
	}}

	var buf bytes.Buffer
	m := newTestMonitor(src, keys.Nop{}, &buf, 40)
	require.NoError(t, m.step(context.Background()))

	buf.Reset()
	require.NoError(t, m.step(context.Background()))
	out := buf.String()
	assert.Contains(t, out, "Total connections: 0 | Displaying: 1")
	assert.Contains(t, out, "Recently closed: 1")
}

func TestRedrawDoesNotAdvanceHistory(t *testing.T) {
	src := &scriptedSource{steps: []tick{
		{records: []tracker.Record{conn(1, "ESTABLISHED"), conn(2, "ESTABLISHED")}},
		{records: []tracker.Record{conn(1, "ESTABLISHED")}},
	}}
	var buf bytes.Buffer
	m := newTestMonitor(src, keys.Nop{}, &buf, 40)
	require.NoError(t, m.step(context.Background()))
	require.NoError(t, m.step(context.Background()))

	// The ghost stays on screen through redraws between polls.
	m.input = keys.NewScripted(runeKey('s'), runeKey('s'))
	buf.Reset()
	quit, err := m.handleInput()
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, 2, src.calls)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "Recently closed: 1"))
}

func TestScrollClampedByLayout(t *testing.T) {
	var records []tracker.Record
	for i := range 40 {
		records = append(records, conn(i, "ESTABLISHED"))
	}
	src := &scriptedSource{steps: []tick{{records: records}}}

	// 20 lines leave a 9-row page, so 31 is the deepest offset.
	var keysIn []tea.Key
	for range 10 {
		keysIn = append(keysIn, tea.Key{Type: tea.KeyPgDown})
	}
	in := keys.NewScripted(keysIn...)

	var buf bytes.Buffer
	m := newTestMonitor(src, in, &buf, 20)
	require.NoError(t, m.step(context.Background()))
	_, err := m.handleInput()
	require.NoError(t, err)

	assert.Equal(t, 31, m.state.Offset)
	assert.Contains(t, buf.String(), "Viewing rows 32-40 of 40")
}

func TestOffsetClampedWhenRowsVanish(t *testing.T) {
	var many []tracker.Record
	for i := range 30 {
		many = append(many, conn(i, "ESTABLISHED"))
	}
	src := &scriptedSource{steps: []tick{
		{records: many},
		{records: many[:3]},
		{records: many[:3]},
	}}

	var buf bytes.Buffer
	m := newTestMonitor(src, keys.NewScripted(), &buf, 20)
	require.NoError(t, m.step(context.Background()))
	m.state = m.state.Scroll(100, m.layout.MaxScroll)
	require.Equal(t, 21, m.state.Offset)

	require.NoError(t, m.step(context.Background()))
	require.NoError(t, m.step(context.Background()))
	assert.Zero(t, m.state.Offset)
}

type panickingSource struct{}

func (panickingSource) Collect(context.Context) ([]tracker.Record, error) {
	panic("snapshot exploded")
}

func TestRunTurnsPanicIntoError(t *testing.T) {
	var buf bytes.Buffer
	m := newTestMonitor(panickingSource{}, keys.Nop{}, &buf, 40)

	var err error
	require.NotPanics(t, func() { err = m.Run(context.Background()) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot exploded")
}

func TestGhostShownInCycleConnectionVanishes(t *testing.T) {
	src := &scriptedSource{steps: []tick{
		{records: []tracker.Record{conn(1, "ESTABLISHED")}},
		{records: nil},
		{records: nil},
	}}

	var buf bytes.Buffer
	m := newTestMonitor(src, keys.Nop{}, &buf, 40)
	require.NoError(t, m.step(context.Background()))

	buf.Reset()
	require.NoError(t, m.step(context.Background()))
	assert.Contains(t, buf.String(), "Recently closed: 1")
	assert.Equal(t, 1, m.layout.TotalRows)

	buf.Reset()
	require.NoError(t, m.step(context.Background()))
	assert.NotContains(t, buf.String(), "Recently closed")
	assert.Contains(t, buf.String(), "No connections matching filter.")
}
