// Package streak implements the consecutive-day reading counter.
//
// The engine is a pure function over (prior state, today): callers load the
// stored state, advance it, and persist the result inside a transaction.
// All comparisons are calendar-date comparisons, never wall-clock deltas, so
// month or year boundaries and DST shifts cannot produce off-by-one streaks.
package streak

import "time"

// State is a user's streak counters as stored in the streaks table.
// LastRead is nil when the user has never recorded a reading day.
type State struct {
	Current  int
	Longest  int
	LastRead *time.Time
	Total    int
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Advance returns the state after recording a reading on the given day.
//
// Rules:
//   - reading again on the same day changes nothing (idempotent);
//   - a reading exactly one calendar day after the last one extends the streak;
//   - any larger gap, or a first-ever reading, starts a new streak at 1.
//
// The returned state always satisfies Longest >= Current, and Total grows by
// at most one per calendar day. The input is never mutated.
func Advance(s State, today time.Time) State {
	if s.LastRead != nil && sameDay(*s.LastRead, today) {
		return s
	}

	next := State{
		Current: 1,
		Longest: s.Longest,
		Total:   s.Total + 1,
	}

	if s.LastRead != nil && sameDay(s.LastRead.AddDate(0, 0, 1), today) {
		next.Current = s.Current + 1
	}

	if next.Current > next.Longest {
		next.Longest = next.Current
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	next.LastRead = &day

	return next
}
