// Package monitor runs the poll, render and input loop.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/productdevbook/connwatch/internal/keys"
	"github.com/productdevbook/connwatch/internal/logs"
	"github.com/productdevbook/connwatch/internal/render"
	"github.com/productdevbook/connwatch/internal/scanner"
	"github.com/productdevbook/connwatch/internal/tracker"
	"github.com/productdevbook/connwatch/internal/view"
)

const (
	DefaultInterval = 2 * time.Second
	// Slices is how many input checks happen per poll interval.
	Slices = 10
)

// Source yields one snapshot of display records per call.
type Source interface {
	Collect(ctx context.Context) ([]tracker.Record, error)
}

// Monitor owns the view state and connection history for one session.
type Monitor struct {
	source   Source
	renderer *render.Renderer
	input    keys.Reader
	keymap   keys.KeyMap
	interval time.Duration
	log      *logrus.Entry

	state   view.State
	history tracker.History
	frame   tracker.Frame
	layout  render.Layout
}

func New(source Source, renderer *render.Renderer, input keys.Reader, interval time.Duration, initial view.State) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		source:   source,
		renderer: renderer,
		input:    input,
		keymap:   keys.DefaultKeyMap(),
		interval: interval,
		log:      logs.WithComponent("monitor"),
		state:    initial,
	}
}

// Run polls and renders until the quit key is pressed or ctx is done. It
// returns nil on a requested shutdown and an error when polling or
// drawing fails for good. A panic inside the loop is returned as an
// error so the caller can still restore the terminal.
func (m *Monitor) Run(ctx context.Context) (err error) {
	m.log.WithField("interval", m.interval).Info("monitor started")
	defer m.log.Info("monitor stopped")
	defer func() {
		if p := recover(); p != nil {
			m.log.WithField("panic", p).Error("monitor loop panicked")
			err = fmt.Errorf("monitor loop panicked: %v", p)
		}
	}()

	quantum := m.interval / Slices
	for {
		if err := m.step(ctx); err != nil {
			return err
		}

		for i := 0; i < Slices; i++ {
			quit, err := m.handleInput()
			if err != nil {
				return err
			}
			if quit {
				return nil
			}

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(quantum):
			}
		}
	}
}

// step runs one poll and render cycle without waiting for input.
func (m *Monitor) step(ctx context.Context) error {
	if err := m.poll(ctx); err != nil {
		return err
	}
	return m.draw()
}

func (m *Monitor) poll(ctx context.Context) error {
	records, err := m.source.Collect(ctx)
	if err != nil {
		if errors.Is(err, scanner.ErrPermission) {
			return err
		}
		// Transient failures show as an empty snapshot for this cycle.
		m.log.WithError(err).Warn("snapshot failed")
		records = nil
	}
	m.frame, m.history = m.history.Advance(records)
	return nil
}

func (m *Monitor) draw() error {
	layout, err := m.renderer.Render(m.frame, m.state)
	if err != nil {
		return fmt.Errorf("render frame: %w", err)
	}
	m.layout = layout
	m.state = m.state.Clamp(layout.MaxScroll)
	return nil
}

// handleInput drains pending keys, redrawing the current frame after
// each one that changed the view.
func (m *Monitor) handleInput() (bool, error) {
	for {
		k, ok := m.input.PollKey()
		if !ok {
			return false, nil
		}

		next, action := Dispatch(m.keymap, k, m.state, m.layout)
		switch action {
		case ActionQuit:
			m.log.Debug("quit requested")
			return true, nil
		case ActionRedraw:
			m.state = next
			if err := m.draw(); err != nil {
				return false, err
			}
		}
	}
}
