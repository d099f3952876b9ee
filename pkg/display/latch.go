package display

import "time"

// defaultLatch is how long a terminal key press counts as held. Terminals
// send repeats while a key is down but seldom report the release.
const defaultLatch = 150 * time.Millisecond

// latch turns a stream of key presses into held state. Movement keys stay
// down for a short window after each press; one-shot actions are reported
// for exactly one snapshot.
type latch struct {
	window  time.Duration
	held    map[Action]time.Time
	pending Keys
}

func newLatch(window time.Duration) *latch {
	return &latch{window: window, held: make(map[Action]time.Time)}
}

func oneShot(a Action) bool {
	switch a {
	case ActionPause, ActionOverlay, ActionQuit:
		return true
	}
	return a >= ActionSelect1 && a <= ActionSelect9
}

func (l *latch) press(a Action, at time.Time) {
	if a == ActionNone {
		return
	}
	if oneShot(a) {
		l.pending.Set(a)
		return
	}
	l.held[a] = at
}

func (l *latch) release(a Action) {
	delete(l.held, a)
}

// snapshot returns the keys held at time at and clears one-shot actions.
func (l *latch) snapshot(at time.Time) Keys {
	k := l.pending
	l.pending = Keys{}
	for a, t := range l.held {
		if at.Sub(t) > l.window {
			delete(l.held, a)
			continue
		}
		k.Set(a)
	}
	return k
}
