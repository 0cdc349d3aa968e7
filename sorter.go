package gogrid

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Type ranks used to order values of mismatched types. Absent values are
// handled separately: they always order last.
const (
	rankNumber = iota
	rankString
	rankBool
	rankTime
	rankOther
)

// Sort returns rows ordered by directive. With NoSort the input slice itself
// is returned. Otherwise a sorted copy is returned: ties keep their input
// order in both directions and rows whose key is absent come last in both
// directions.
func Sort(rows []Row, directive SortDirective) []Row {
	if directive.IsNone() {
		return rows
	}

	keyed := make([]keyedRow, len(rows))
	for i, row := range rows {
		keyed[i] = keyedRow{row: row, key: Resolve(row, directive.Key)}
	}

	desc := directive.Direction == DirectionDESC
	slices.SortStableFunc(keyed, func(a, b keyedRow) int {
		return compareDirected(a.key, b.key, desc)
	})

	ret := make([]Row, len(keyed))
	for i := range keyed {
		ret[i] = keyed[i].row
	}

	return ret
}

type keyedRow struct {
	row Row
	key Value
}

func compareDirected(a, b Value, desc bool) int {
	switch {
	case !a.IsPresent() && !b.IsPresent():
		return 0
	case !a.IsPresent():
		return 1
	case !b.IsPresent():
		return -1
	}

	c := Compare(a, b)
	if desc {
		return -c
	}

	return c
}

// Compare orders two resolved values ascending. Numbers compare
// numerically, strings lexicographically, booleans false before true and
// times chronologically. Values of different types order by type rank:
// numbers, strings, booleans, times, then everything else by its string
// form. Absent values order after present ones.
func Compare(a, b Value) int {
	av, aok := a.Get()
	bv, bok := b.Get()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}

	ar, br := rank(av), rank(bv)
	if ar != br {
		return cmp.Compare(ar, br)
	}

	switch ar {
	case rankNumber:
		return compareNumbers(av, bv)
	case rankString:
		return strings.Compare(Stringify(a), Stringify(b))
	case rankBool:
		return compareBools(av.(bool), bv.(bool))
	case rankTime:
		return av.(time.Time).Compare(bv.(time.Time))
	default:
		return strings.Compare(Stringify(a), Stringify(b))
	}
}

func rank(v any) int {
	switch v.(type) {
	case string, []byte:
		return rankString
	case bool:
		return rankBool
	case time.Time:
		return rankTime
	}

	if _, ok := asFloat64(v); ok {
		return rankNumber
	}

	return rankOther
}

func compareNumbers(a, b any) int {
	ai, aInt := asInt64(a)
	bi, bInt := asInt64(b)
	if aInt && bInt {
		return cmp.Compare(ai, bi)
	}

	au, aUint := asUint64(a)
	bu, bUint := asUint64(b)
	if aUint && bUint {
		return cmp.Compare(au, bu)
	}

	af, _ := asFloat64(a)
	bf, _ := asFloat64(b)

	return cmp.Compare(af, bf)
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
