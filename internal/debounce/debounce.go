// Package debounce delays an action until a burst of trigger events has
// been quiet for a fixed interval.
//
// A Debouncer is a plain value owned by a Bubble Tea model. Schedule
// returns a tea.Cmd that sleeps and then emits a FiredMsg; Resolve accepts
// only the FiredMsg of the most recent Schedule that was not cancelled, so
// there is at most one live timer per Debouncer no matter how many ticks
// are still sleeping in the runtime.
package debounce

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FiredMsg is emitted when a scheduled timer elapses.
type FiredMsg struct {
	name    string
	id      uint64
	payload tea.Msg
}

// Debouncer coalesces scheduled actions. The zero value is usable but
// anonymous; use New when a model owns more than one.
type Debouncer struct {
	name  string
	id    uint64
	armed bool
}

// New returns a Debouncer whose FiredMsgs are distinguishable from those of
// other debouncers by name.
func New(name string) Debouncer {
	return Debouncer{name: name}
}

// Schedule disarms any pending timer and arms a new one. When delay elapses
// without another Schedule or Cancel, Resolve yields payload exactly once.
func (d *Debouncer) Schedule(delay time.Duration, payload tea.Msg) tea.Cmd {
	d.id++
	d.armed = true
	name, id := d.name, d.id
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return FiredMsg{name: name, id: id, payload: payload}
	})
}

// Cancel disarms the pending timer, if any, without firing it.
func (d *Debouncer) Cancel() {
	d.id++
	d.armed = false
}

// Pending reports whether a timer is armed and has not yet fired.
func (d Debouncer) Pending() bool {
	return d.armed
}

// Owns reports whether msg was produced by this Debouncer, live or stale.
func (d Debouncer) Owns(msg FiredMsg) bool {
	return msg.name == d.name
}

// Resolve returns the payload of msg and true when msg belongs to the live
// timer. The timer is consumed, so a duplicate delivery returns false.
func (d *Debouncer) Resolve(msg FiredMsg) (tea.Msg, bool) {
	if msg.name != d.name || msg.id != d.id || !d.armed {
		return nil, false
	}
	d.armed = false
	return msg.payload, true
}
