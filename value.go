package gogrid

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// IDField is the row field holding the stable unique row identifier.
const IDField = "id"

type (
	// Row is an opaque record. The grid never mutates a row.
	Row = map[string]any

	// RowID is a normalized row identifier, see NormalizeID.
	RowID = any
)

// Fielder is implemented by typed records that want to be addressed by
// field paths without being converted to a Row first.
type Fielder interface {
	Field(name string) (any, bool)
}

// Value is the result of resolving a field path: either a present value
// or nothing.
type Value struct {
	v  any
	ok bool
}

// None is the absent Value.
var None = Value{}

// Some wraps v as a present Value. A nil v is absent.
func Some(v any) Value {
	if v == nil {
		return None
	}

	return Value{v: v, ok: true}
}

// Get returns the underlying value and whether it is present.
func (v Value) Get() (any, bool) {
	return v.v, v.ok
}

// IsPresent returns true if the value is present.
func (v Value) IsPresent() bool {
	return v.ok
}

// String - implements fmt.Stringer. Absent values stringify to "".
func (v Value) String() string {
	return Stringify(v)
}

// Stringify is a total string conversion: it never fails and absent values
// become the empty string rather than a placeholder.
func Stringify(v Value) string {
	if !v.ok {
		return ""
	}

	switch vt := v.v.(type) {
	case string:
		return vt
	case []byte:
		return string(vt)
	case bool:
		return strconv.FormatBool(vt)
	case float32:
		return strconv.FormatFloat(float64(vt), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(vt, 'f', -1, 64)
	case time.Time:
		return vt.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return vt.String()
	}

	if n, ok := asInt64(v.v); ok {
		return strconv.FormatInt(n, 10)
	}

	if n, ok := asUint64(v.v); ok {
		return strconv.FormatUint(n, 10)
	}

	return fmt.Sprint(v.v)
}

// NormalizeID folds equivalent identifiers into one comparable key, so that
// 5, int64(5) and a JSON-decoded 5.0 address the same row.
func NormalizeID(id any) RowID {
	switch vt := id.(type) {
	case nil:
		return nil
	case string:
		return vt
	case float32:
		return normalizeFloatID(float64(vt))
	case float64:
		return normalizeFloatID(vt)
	}

	if n, ok := asInt64(id); ok {
		return n
	}

	if n, ok := asUint64(id); ok {
		return strconv.FormatUint(n, 10)
	}

	return fmt.Sprint(id)
}

func normalizeFloatID(f float64) RowID {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f)
	}

	return f
}

// IDOf returns the normalized identifier of row, or false if the row has
// no id field.
func IDOf(row Row) (RowID, bool) {
	raw, ok := row[IDField]
	if !ok || raw == nil {
		return nil, false
	}

	return NormalizeID(raw), true
}

func asInt64(v any) (int64, bool) {
	switch vt := v.(type) {
	case int:
		return int64(vt), true
	case int8:
		return int64(vt), true
	case int16:
		return int64(vt), true
	case int32:
		return int64(vt), true
	case int64:
		return vt, true
	case uint:
		if uint64(vt) > math.MaxInt64 {
			return 0, false
		}
		return int64(vt), true
	case uint8:
		return int64(vt), true
	case uint16:
		return int64(vt), true
	case uint32:
		return int64(vt), true
	case uint64:
		if vt > math.MaxInt64 {
			return 0, false
		}
		return int64(vt), true
	default:
		return 0, false
	}
}

// asUint64 reports unsigned values, including those above math.MaxInt64
// that asInt64 refuses.
func asUint64(v any) (uint64, bool) {
	switch vt := v.(type) {
	case uint:
		return uint64(vt), true
	case uint8:
		return uint64(vt), true
	case uint16:
		return uint64(vt), true
	case uint32:
		return uint64(vt), true
	case uint64:
		return vt, true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch vt := v.(type) {
	case float32:
		return float64(vt), true
	case float64:
		return vt, true
	}

	if n, ok := asInt64(v); ok {
		return float64(n), true
	}

	if n, ok := asUint64(v); ok {
		return float64(n), true
	}

	return 0, false
}
