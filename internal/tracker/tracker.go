// Package tracker correlates successive connection snapshots. It flags
// connections that appeared since the previous snapshot and keeps the ones
// that vanished around for exactly one more cycle as closed ghosts.
package tracker

// Key uniquely identifies a connection across snapshots. Status is not
// part of the key, so state transitions never re-flag a connection as new.
type Key struct {
	Local  string
	Remote string
	PID    int
}

// Record is one connection as displayed.
type Record struct {
	Local         string `json:"local"`
	Remote        string `json:"remote"`
	RemoteDisplay string `json:"remoteDisplay"`
	Status        string `json:"status"`
	PID           int    `json:"pid"`
	Process       string `json:"process"`
}

// Key returns the identity key of r.
func (r Record) Key() Key {
	return Key{Local: r.Local, Remote: r.Remote, PID: r.PID}
}

// Class is the highlight applied to a row.
type Class int

const (
	Plain Class = iota
	New
	Closed
)

func (c Class) String() string {
	switch c {
	case New:
		return "new"
	case Closed:
		return "closed"
	default:
		return "plain"
	}
}

// Row is a record together with its highlight for one cycle.
type Row struct {
	Record
	Class Class
}

// Frame is everything observed in one cycle.
type Frame struct {
	// Rows holds current records in snapshot order followed by ghosts.
	Rows []Row
	// Observed is the number of live connections in the snapshot.
	Observed int
	// Ghosts is the number of closed rows in this frame.
	Ghosts int
	// States counts live connections per status.
	States map[string]int
}

// History is the state carried from one cycle to the next. The zero value
// is an empty history.
type History struct {
	keys    map[Key]struct{}
	records map[Key]Record
	order   []Key
}

// Advance diffs snapshot against h and returns the frame to display along
// with the history for the next cycle. Connections that vanished at this
// boundary are shown once, as closed rows after the live ones. h is not
// modified.
func (h History) Advance(snapshot []Record) (Frame, History) {
	next := History{
		keys:    make(map[Key]struct{}, len(snapshot)),
		records: make(map[Key]Record, len(snapshot)),
		order:   make([]Key, 0, len(snapshot)),
	}
	for _, rec := range snapshot {
		k := rec.Key()
		if _, dup := next.keys[k]; !dup {
			next.order = append(next.order, k)
		}
		next.keys[k] = struct{}{}
		next.records[k] = rec
	}

	// Ghosts keep the order they had in the previous snapshot.
	var ghosts []Record
	for _, k := range h.order {
		if _, alive := next.keys[k]; alive {
			continue
		}
		if rec, ok := h.records[k]; ok {
			ghosts = append(ghosts, rec)
		}
	}

	frame := Frame{
		Rows:     make([]Row, 0, len(snapshot)+len(ghosts)),
		Observed: len(snapshot),
		Ghosts:   len(ghosts),
		States:   make(map[string]int),
	}
	for _, rec := range snapshot {
		class := Plain
		if _, seen := h.keys[rec.Key()]; !seen {
			class = New
		}
		frame.States[rec.Status]++
		frame.Rows = append(frame.Rows, Row{Record: rec, Class: class})
	}
	for _, g := range ghosts {
		frame.Rows = append(frame.Rows, Row{Record: g, Class: Closed})
	}

	return frame, next
}
