package gogrid

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
)

// Direction defines the sort direction for the displayed rows.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (o Direction) Valid() bool {
	return o == DirectionASC || o == DirectionDESC
}

// Opposite returns the other direction.
func (o Direction) Opposite() Direction {
	switch o {
	case DirectionASC:
		return DirectionDESC
	case DirectionDESC:
		return DirectionASC
	default:
		panic(fmt.Errorf("cannot invert direction '%s'", o))
	}
}

type (
	// SortDirective is the single active sort. The zero value means no
	// sorting: rows keep their input order.
	SortDirective struct {
		Key       string
		Direction Direction
	}

	ColumnAlias = string

	// ColumnMapping maps external column ids to SQL column names.
	// Key is an external alias, value is an internal column name.
	ColumnMapping = map[ColumnAlias]string
)

// NoSort is the absent directive.
var NoSort = SortDirective{}

// SortBy builds an ascending directive for key.
func SortBy(key string) SortDirective {
	return SortDirective{Key: key, Direction: DirectionASC}
}

// IsNone returns true if no sort is active.
func (s SortDirective) IsNone() bool {
	return s.Key == ""
}

// Toggle returns the directive produced by clicking the header of column
// key: the same column flips ASC -> DESC -> ASC, any other column starts
// ascending.
func (s SortDirective) Toggle(key string) SortDirective {
	if !s.IsNone() && s.Key == key && s.Direction == DirectionASC {
		return SortDirective{Key: key, Direction: DirectionDESC}
	}

	return SortBy(key)
}

// String returns "<key> <direction>" or "" when no sort is active.
func (s SortDirective) String() string {
	if s.IsNone() {
		return ""
	}

	return fmt.Sprintf("%s %s", s.Key, s.Direction)
}

func (s SortDirective) validate() error {
	if s.IsNone() {
		return nil
	}

	if !s.Direction.Valid() {
		return fmt.Errorf("invalid sort direction '%s'", s.Direction)
	}

	return nil
}

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

// toSQL converts the directive into an "ORDER BY" fragment using the
// column mapping. Returns an error for unknown aliases or unsafe column
// names.
func (s SortDirective) toSQL(columnMapping ColumnMapping) (string, error) {
	if s.IsNone() {
		return "", nil
	}

	if err := s.validate(); err != nil {
		return "", err
	}

	columnName, err := lookupColumn(s.Key, columnMapping)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s %s", columnName, s.Direction), nil
}

func lookupColumn(alias ColumnAlias, columnMapping ColumnMapping) (string, error) {
	columnName := columnMapping[alias]
	if columnName == "" {
		return "", fmt.Errorf("invalid column alias '%s'. closest: '%s'", alias, closestAlias(alias, lo.Keys(columnMapping)))
	}

	// Guard against SQL injection by restricting allowed characters in column names.
	if !lo.Every(_availableColumnNameSymbols, []rune(columnName)) {
		return "", fmt.Errorf("column name contains forbidden symbols '%s'", columnName)
	}

	return columnName, nil
}

// ParseSort builds a SortDirective from a string in the format
// "column [asc|desc]". An empty string yields NoSort. Only one column may be
// given since the grid sorts by a single column. When columnMapping is not
// nil the column must be one of its aliases.
func ParseSort(stringOrdering string, columnMapping ColumnMapping) (SortDirective, error) {
	stringOrdering = strings.TrimSpace(stringOrdering)
	if stringOrdering == "" {
		return NoSort, nil
	}

	cutStringOrdering := strings.Fields(stringOrdering)
	if len(cutStringOrdering) > 2 {
		return NoSort, fmt.Errorf("invalid ordering string format '%s'", stringOrdering)
	}

	columnAlias := cutStringOrdering[0]
	direction := DirectionASC
	if len(cutStringOrdering) == 2 {
		direction = Direction(strings.ToUpper(cutStringOrdering[1]))
	}

	if columnMapping != nil {
		if _, ok := columnMapping[columnAlias]; !ok {
			return NoSort, fmt.Errorf("invalid column alias. closest: '%s'", closestAlias(columnAlias, lo.Keys(columnMapping)))
		}
	}

	ret := SortDirective{Key: columnAlias, Direction: direction}
	if err := ret.validate(); err != nil {
		return NoSort, err
	}

	return ret, nil
}

func closestAlias(input ColumnAlias, dataSet []ColumnAlias) ColumnAlias {
	minDist := math.MaxInt
	closest := ""

	for _, dataSetAlias := range dataSet {
		dist := levenshtein([]rune(dataSetAlias), []rune(input))
		if dist < minDist || (dist == minDist && dataSetAlias < closest) {
			minDist = dist
			closest = dataSetAlias
		}
	}

	return closest
}
