// Package render draws one frame of the connection table.
package render

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/productdevbook/connwatch/internal/keys"
	"github.com/productdevbook/connwatch/internal/tracker"
	"github.com/productdevbook/connwatch/internal/view"
)

const (
	// HeaderLines is the fixed budget reserved above the rows.
	HeaderLines = 10
	// FooterLines is the fixed budget reserved below the rows.
	FooterLines = 1

	clearScreen = "\x1b[H\x1b[2J"
	timeLayout  = "2006-01-02 15:04:05"
)

// Minimum column widths.
const (
	pidWidth        = 8
	minProcessWidth = 25
	minStatusWidth  = 12
	minLocalWidth   = 25
	minRemoteWidth  = 50
)

// Layout describes the page geometry of the last rendered frame.
type Layout struct {
	PageSize  int
	MaxScroll int
	TotalRows int
}

type styles struct {
	bold   lipgloss.Style
	new    lipgloss.Style
	closed lipgloss.Style
}

// Renderer writes frames to out.
type Renderer struct {
	out    io.Writer
	term   Terminal
	keymap keys.KeyMap
	help   help.Model
	styles styles
	now    func() time.Time
	crlf   bool
	clear  bool
}

type Option func(*Renderer)

// WithClock overrides the banner timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// WithCRLF ends lines with \r\n, required while the terminal is raw.
func WithCRLF(on bool) Option {
	return func(r *Renderer) { r.crlf = on }
}

// WithoutClear skips the clear-screen sequence before each frame.
func WithoutClear() Option {
	return func(r *Renderer) { r.clear = false }
}

func New(out io.Writer, t Terminal, km keys.KeyMap, opts ...Option) *Renderer {
	lr := lipgloss.NewRenderer(out)

	h := help.New()
	h.ShortSeparator = " | "
	h.Styles.ShortKey = lr.NewStyle().Bold(true)
	h.Styles.ShortDesc = lr.NewStyle()
	h.Styles.ShortSeparator = lr.NewStyle()

	r := &Renderer{
		out:    out,
		term:   t,
		keymap: km,
		help:   h,
		styles: styles{
			bold:   lr.NewStyle().Bold(true),
			new:    lr.NewStyle().Background(lipgloss.Color("2")),
			closed: lr.NewStyle().Background(lipgloss.Color("1")),
		},
		now:   time.Now,
		clear: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PageSize returns how many rows fit below the header.
func (r *Renderer) PageSize() int {
	return max(1, r.term.Lines()-HeaderLines-FooterLines)
}

// Render draws frame under state s and returns the page geometry. An
// offset beyond the last page is clamped for display.
func (r *Renderer) Render(frame tracker.Frame, s view.State) (Layout, error) {
	text, layout := r.Frame(frame, s)
	if r.crlf {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	if r.clear {
		text = clearScreen + text
	}
	_, err := io.WriteString(r.out, text)
	return layout, err
}

// Frame formats frame without writing it.
func (r *Renderer) Frame(frame tracker.Frame, s view.State) (string, Layout) {
	rows := view.Project(frame.Rows, s)
	page := r.PageSize()
	layout := Layout{
		PageSize:  page,
		MaxScroll: view.MaxOffset(len(rows), page),
		TotalRows: len(rows),
	}
	s = s.Clamp(layout.MaxScroll)

	w := columnWidths(rows)
	total := pidWidth + w.process + w.status + w.local + w.remote + 4

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("%s - %s", r.styles.bold.Render("TCP Connection Monitor"), r.now().Format(timeLayout))
	line("Total connections: %d | Displaying: %d | Filter: %s | Sort by: %s",
		frame.Observed, len(rows),
		r.styles.bold.Render(s.Filter()),
		r.styles.bold.Render(strings.ToUpper(s.Sort())))
	line("States: %s", stateSummary(frame.States))
	if frame.Ghosts > 0 {
		line("Recently closed: %d", frame.Ghosts)
	}
	if len(rows) > page {
		line("Viewing rows %d-%d of %d", s.Offset+1, min(s.Offset+page, len(rows)), len(rows))
	}
	line("")
	line("%s %s", r.styles.bold.Render("Controls:"), r.help.ShortHelpView(r.keymap.ShortHelp()))
	line("%s", strings.Repeat("=", total))
	line("%s", w.format("PID", "Process", "Status", "Local Address", "Remote Endpoint"))
	line("%s", strings.Repeat("-", total))

	if len(rows) == 0 {
		line("No connections matching filter.")
	}
	for _, row := range view.Page(rows, s.Offset, page) {
		pid := ""
		if row.PID != 0 {
			pid = strconv.Itoa(row.PID)
		}
		text := w.format(pid, sanitize(row.Process), row.Status, row.Local, row.RemoteDisplay)
		switch row.Class {
		case tracker.Closed:
			text = r.styles.closed.Render(text)
		case tracker.New:
			text = r.styles.new.Render(text)
		}
		line("%s", text)
	}

	line("%s", strings.Repeat("-", total))
	return b.String(), layout
}

func stateSummary(states map[string]int) string {
	parts := make([]string, 0, len(states))
	for _, name := range slices.Sorted(maps.Keys(states)) {
		parts = append(parts, fmt.Sprintf("%s: %d", name, states[name]))
	}
	return strings.Join(parts, " | ")
}

type widths struct {
	process, status, local, remote int
}

// columnWidths sizes each column to its longest value plus one, never
// below the column minimum.
func columnWidths(rows []tracker.Row) widths {
	w := widths{
		process: minProcessWidth,
		status:  minStatusWidth,
		local:   minLocalWidth,
		remote:  minRemoteWidth,
	}
	for _, r := range rows {
		w.process = max(w.process, utf8.RuneCountInString(sanitize(r.Process))+1)
		w.status = max(w.status, utf8.RuneCountInString(r.Status)+1)
		w.local = max(w.local, utf8.RuneCountInString(r.Local)+1)
		w.remote = max(w.remote, utf8.RuneCountInString(r.RemoteDisplay)+1)
	}
	return w
}

func (w widths) format(pid, process, status, local, remote string) string {
	return fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s",
		pidWidth, pid,
		w.process, process,
		w.status, status,
		w.local, local,
		w.remote, remote)
}
