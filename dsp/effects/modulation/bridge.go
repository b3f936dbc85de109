package modulation

import (
	"math"
	"sync/atomic"
)

// ParamBridge hands parameter changes from a control goroutine to the
// goroutine that runs Chorus.Process without locks or allocation.
//
// Post may be called from any number of goroutines. Apply must be called
// from the audio goroutine, typically once before each Process call. When
// several values are posted for one parameter between two Apply calls only
// the last one is applied.
type ParamBridge struct {
	values [ParamCount]atomic.Uint64
	dirty  atomic.Uint32
}

// Post queues v for p. Invalid indices are ignored.
func (b *ParamBridge) Post(p Param, v float64) {
	if !p.Valid() {
		return
	}
	b.values[p].Store(math.Float64bits(v))
	b.dirty.Or(1 << uint(p))
}

// Apply forwards pending values to c and returns how many were applied.
func (b *ParamBridge) Apply(c *Chorus) int {
	mask := b.dirty.Swap(0)
	if mask == 0 {
		return 0
	}

	n := 0
	for p := range ParamCount {
		if mask&(1<<uint(p)) == 0 {
			continue
		}
		c.SetParameterValue(p, math.Float64frombits(b.values[p].Load()))
		n++
	}
	return n
}

// Pending reports whether any values are waiting for Apply.
func (b *ParamBridge) Pending() bool { return b.dirty.Load() != 0 }
