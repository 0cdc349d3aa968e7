package gogrid

import (
	"strings"

	"github.com/samber/lo"
)

// FilterScope decides which rows the search term narrows in client mode.
type FilterScope string

const (
	// FilterPage narrows only the rows of the current page, after slicing.
	// This is the default and keeps page boundaries independent of the
	// search term.
	FilterPage FilterScope = "page"
	// FilterGlobal narrows the full sorted set before slicing; the total
	// count then reflects the filtered set.
	FilterGlobal FilterScope = "global"
)

func (s FilterScope) Valid() bool {
	return s == FilterPage || s == FilterGlobal
}

// Filter keeps the rows whose value at path contains term, compared case
// insensitively. An empty term returns rows unchanged. Absent values
// stringify to "" and therefore only match the empty term.
func Filter(rows []Row, path, term string) []Row {
	if term == "" {
		return rows
	}

	needle := strings.ToLower(term)

	return lo.Filter(rows, func(row Row, _ int) bool {
		return strings.Contains(strings.ToLower(Stringify(Resolve(row, path))), needle)
	})
}
