// Package debounce turns raw input changes into stabilised queries.
package debounce

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chainsearch/internal/adapters/driving/tui/messages"
)

// DefaultDelay is the quiet period used when none is configured.
const DefaultDelay = 300 * time.Millisecond

// Debouncer delays query emission until input has been quiet for Delay.
//
// A tea.Tick cannot be cancelled, so every change bumps a sequence number
// and ticks carrying an older number are ignored by Settle.
type Debouncer struct {
	delay   time.Duration
	seq     uint64
	pending string
	waiting bool
	current string
}

// New creates a debouncer. A non-positive delay uses DefaultDelay.
func New(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Change records a new raw value.
//
// It returns the value to emit now and true when the value is blank.
// If the value equals the last emitted value any pending emission is
// cancelled and nothing is returned. Otherwise it returns a command that
// delivers messages.QuerySettled after the quiet period.
func (d *Debouncer) Change(value string) (string, bool, tea.Cmd) {
	d.seq++
	d.waiting = false

	if strings.TrimSpace(value) == "" {
		d.pending = ""
		d.current = ""
		return "", true, nil
	}
	if value == d.current {
		d.pending = ""
		return "", false, nil
	}

	d.pending = value
	d.waiting = true
	seq := d.seq
	return "", false, tea.Tick(d.delay, func(time.Time) tea.Msg {
		return messages.QuerySettled{Seq: seq, Query: value}
	})
}

// Settle handles a fired tick. It returns the stabilised value and true
// only for the tick of the latest change.
func (d *Debouncer) Settle(msg messages.QuerySettled) (string, bool) {
	if !d.waiting || msg.Seq != d.seq {
		return "", false
	}
	d.waiting = false
	d.current = d.pending
	d.pending = ""
	return d.current, true
}

// Flush emits the pending value immediately and invalidates its tick.
func (d *Debouncer) Flush() (string, bool) {
	if !d.waiting {
		return "", false
	}
	d.seq++
	d.waiting = false
	d.current = d.pending
	d.pending = ""
	return d.current, true
}

// Pending returns true while a value is waiting for its quiet period.
func (d *Debouncer) Pending() bool {
	return d.waiting
}

// Current returns the last emitted value.
func (d *Debouncer) Current() string {
	return d.current
}

// Reset cancels any pending emission and forgets the current value.
func (d *Debouncer) Reset() {
	d.seq++
	d.waiting = false
	d.pending = ""
	d.current = ""
}
