package ember

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and pool metrics.
// Only populated when EffectSet.debug is true.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	emitters   int
	particles  int
	capacity   int
	retired    int
}

// debugLog prints timing and pool stats to stderr.
func (s *EffectSet) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[ember] update: %v | draw: %v | total: %v\n",
		stats.updateTime, stats.drawTime, stats.updateTime+stats.drawTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[ember] emitters: %d | particles: %d/%d | retired: %d\n",
		stats.emitters, stats.particles, stats.capacity, stats.retired)
}

// globalDebug mirrors the most recently set EffectSet debug flag so that
// emitters (which lack a set pointer) can check it cheaply. Only valid with a
// single EffectSet; several sets with differing debug modes reflect whichever
// called SetDebugMode last.
var globalDebug bool

// debugCheckPool panics when an emitter's live flags and alive count disagree.
func debugCheckPool(e *Emitter) {
	n := 0
	for _, l := range e.live {
		if l {
			n++
		}
	}
	if n != e.alive || e.alive < 0 || e.alive > len(e.particles) {
		panic(fmt.Sprintf("ember debug: emitter pool has %d live slots, alive count %d, capacity %d",
			n, e.alive, len(e.particles)))
	}
}
