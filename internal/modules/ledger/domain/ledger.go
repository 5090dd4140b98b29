package domain

import (
	"sort"

	"github.com/samber/lo"
)

// Ledger is the set of video ids handled by the most recent fetch run.
//
// A run saves exactly the videos it processed itself, replacing the previous
// ledger rather than adding to it. A video handled two runs ago is therefore
// no longer remembered and is processed again if it shows up in a later
// listing window.
type Ledger struct {
	ids map[string]struct{}
}

// New builds a ledger from ids.
func New(ids ...string) *Ledger {
	l := &Ledger{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		l.Add(id)
	}
	return l
}

// Has reports whether id was processed.
func (l *Ledger) Has(id string) bool {
	_, ok := l.ids[id]
	return ok
}

// Add records id. Empty ids are ignored.
func (l *Ledger) Add(id string) {
	if id == "" {
		return
	}
	l.ids[id] = struct{}{}
}

// Len is the number of ids.
func (l *Ledger) Len() int {
	return len(l.ids)
}

// IDs returns the ids sorted, so saved ledgers are stable across runs.
func (l *Ledger) IDs() []string {
	ids := lo.Keys(l.ids)
	sort.Strings(ids)
	return ids
}
