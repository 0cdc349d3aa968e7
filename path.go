package gogrid

import "strings"

// PathSeparator splits a column id into field segments, e.g.
// "thumbnail__alt_text" addresses row["thumbnail"]["alt_text"].
const PathSeparator = "__"

// Resolve walks path against row one segment at a time. Any missing or
// nil intermediate yields None; values are never coerced.
func Resolve(row Row, path string) Value {
	if row == nil {
		return None
	}

	return resolveSegments(row, strings.Split(path, PathSeparator))
}

// ResolveRecord is Resolve for typed records implementing Fielder.
func ResolveRecord(record Fielder, path string) Value {
	if record == nil {
		return None
	}

	return resolveSegments(record, strings.Split(path, PathSeparator))
}

func resolveSegments(current any, segments []string) Value {
	for _, segment := range segments {
		next, ok := field(current, segment)
		if !ok || next == nil {
			return None
		}

		current = next
	}

	return Some(current)
}

func field(container any, name string) (any, bool) {
	switch ct := container.(type) {
	case map[string]any:
		v, ok := ct[name]
		return v, ok
	case map[string]string:
		v, ok := ct[name]
		return v, ok
	case Fielder:
		return ct.Field(name)
	default:
		return nil, false
	}
}
