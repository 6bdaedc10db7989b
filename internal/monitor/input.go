package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/productdevbook/connwatch/internal/keys"
	"github.com/productdevbook/connwatch/internal/render"
	"github.com/productdevbook/connwatch/internal/view"
)

// Action tells the loop what to do after a key.
type Action int

const (
	ActionNone Action = iota
	ActionRedraw
	ActionQuit
)

// Dispatch applies k to s. Scrolling is bounded by the geometry of the
// last rendered frame.
func Dispatch(km keys.KeyMap, k tea.Key, s view.State, l render.Layout) (view.State, Action) {
	switch {
	case key.Matches(k, km.Quit):
		return s, ActionQuit
	case key.Matches(k, km.Up):
		return s.Scroll(-1, l.MaxScroll), ActionRedraw
	case key.Matches(k, km.Down):
		return s.Scroll(1, l.MaxScroll), ActionRedraw
	case key.Matches(k, km.PageUp):
		return s.Scroll(-l.PageSize, l.MaxScroll), ActionRedraw
	case key.Matches(k, km.PageDown):
		return s.Scroll(l.PageSize, l.MaxScroll), ActionRedraw
	case key.Matches(k, km.Filter):
		return s.CycleFilter(), ActionRedraw
	case key.Matches(k, km.Sort):
		return s.CycleSort(), ActionRedraw
	}
	return s, ActionNone
}
