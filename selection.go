package gogrid

import (
	"slices"

	"github.com/samber/lo"
)

// SelectionLedger records row selection per page key, the page number in
// effect when the selection happened. A row id may be recorded under
// several page keys; Flatten folds them into one externally visible set.
//
// The zero value is ready to use. A nil ledger reads as empty and ignores
// mutations. A ledger is not safe for concurrent use:
// the host serializes mutations, one ledger per grid session.
type SelectionLedger struct {
	entries map[int][]RowID
}

// NewSelectionLedger returns an empty ledger.
func NewSelectionLedger() *SelectionLedger {
	return &SelectionLedger{entries: map[int][]RowID{}}
}

// ToggleRow removes id from the entry of pageKey if present, otherwise
// appends it. Other page keys are untouched.
func (l *SelectionLedger) ToggleRow(pageKey int, id RowID) {
	if l == nil {
		return
	}

	id = NormalizeID(id)
	entry := l.Entry(pageKey)

	idx := slices.Index(entry, id)
	if idx == -1 {
		l.set(pageKey, append(entry, id))
		return
	}

	l.set(pageKey, slices.Delete(entry, idx, idx+1))
}

// ToggleAllOnPage clears the entry of pageKey when it already holds as
// many ids as the page shows, otherwise replaces it with exactly pageIDs.
func (l *SelectionLedger) ToggleAllOnPage(pageKey int, pageIDs []RowID) {
	if l == nil {
		return
	}

	if len(l.Entry(pageKey)) == len(pageIDs) {
		l.set(pageKey, []RowID{})
		return
	}

	l.set(pageKey, lo.Map(pageIDs, func(id RowID, _ int) RowID {
		return NormalizeID(id)
	}))
}

// Deselect removes id from the entry of pageKey. Unknown ids are ignored.
func (l *SelectionLedger) Deselect(pageKey int, id RowID) {
	if l == nil {
		return
	}

	id = NormalizeID(id)
	entry := l.Entry(pageKey)
	if idx := slices.Index(entry, id); idx != -1 {
		l.set(pageKey, slices.Delete(entry, idx, idx+1))
	}
}

// ClearPage empties the entry of pageKey.
func (l *SelectionLedger) ClearPage(pageKey int) {
	if l == nil || l.entries == nil {
		return
	}

	delete(l.entries, pageKey)
}

// Clear empties every entry.
func (l *SelectionLedger) Clear() {
	if l == nil {
		return
	}

	l.entries = map[int][]RowID{}
}

// Entry returns a copy of the ids recorded under pageKey. Unknown page keys
// are an empty entry.
func (l *SelectionLedger) Entry(pageKey int) []RowID {
	if l == nil {
		return []RowID{}
	}

	entry, ok := l.entries[pageKey]
	if !ok {
		return []RowID{}
	}

	return slices.Clone(entry)
}

// PageKeys returns the page keys holding at least one id, ascending.
func (l *SelectionLedger) PageKeys() []int {
	if l == nil {
		return nil
	}

	keys := lo.Filter(lo.Keys(l.entries), func(key int, _ int) bool {
		return len(l.entries[key]) > 0
	})
	slices.Sort(keys)

	return keys
}

// Flatten returns the union of all entries with each id at most once:
// ascending page key, insertion order within an entry, first occurrence
// wins.
func (l *SelectionLedger) Flatten() []RowID {
	ret := make([]RowID, 0)
	for _, key := range l.PageKeys() {
		ret = append(ret, l.entries[key]...)
	}

	return lo.Uniq(ret)
}

// IsSelected returns true if id is recorded under pageKey.
func (l *SelectionLedger) IsSelected(pageKey int, id RowID) bool {
	if l == nil {
		return false
	}

	return slices.Contains(l.entries[pageKey], NormalizeID(id))
}

// IsAllSelectedOnPage returns true if the entry of pageKey holds exactly
// pageRowCount ids and the page is not empty.
func (l *SelectionLedger) IsAllSelectedOnPage(pageKey int, pageRowCount int) bool {
	if l == nil || pageRowCount <= 0 {
		return false
	}

	return len(l.entries[pageKey]) == pageRowCount
}

func (l *SelectionLedger) set(pageKey int, ids []RowID) {
	if l.entries == nil {
		l.entries = map[int][]RowID{}
	}

	l.entries[pageKey] = ids
}
