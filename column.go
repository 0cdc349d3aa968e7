package gogrid

import "fmt"

// TruncateSuffix is appended to truncated cell text.
const TruncateSuffix = "..."

// CellKind is the rendering capability a column carries: Plain, Truncated
// or Custom. The grid never invokes it; presentation layers resolve cells
// through Column.Display.
type CellKind interface {
	cellKind()
}

type (
	plainCell     struct{}
	truncatedCell struct{ length int }
	customCell    struct{ producer func(Row) any }
)

func (plainCell) cellKind()     {}
func (truncatedCell) cellKind() {}
func (customCell) cellKind()    {}

// Plain shows the resolved value as is.
func Plain() CellKind {
	return plainCell{}
}

// Truncated shortens string values longer than length runes.
func Truncated(length int) CellKind {
	return truncatedCell{length: length}
}

// Custom renders the cell with producer, which receives the whole row.
func Custom(producer func(Row) any) CellKind {
	return customCell{producer: producer}
}

// Column describes one grid column. ID is the field path used for display,
// sorting and searching.
type Column struct {
	ID    string
	Label string
	Cell  CellKind
}

func (c Column) validate() error {
	if c.ID == "" {
		return &ConfigurationError{Field: "column_id", Value: c.ID, Reason: "must not be empty"}
	}

	switch ct := c.Cell.(type) {
	case nil, plainCell:
	case truncatedCell:
		if ct.length <= 0 {
			return &ConfigurationError{Field: "truncate_length", Value: ct.length, Reason: fmt.Sprintf("column '%s': must be greater than zero", c.ID)}
		}
	case customCell:
		if ct.producer == nil {
			return &ConfigurationError{Field: "render", Value: nil, Reason: fmt.Sprintf("column '%s': producer is nil", c.ID)}
		}
	}

	return nil
}

// CellDisplay is a resolved cell as a presentation layer needs it.
type CellDisplay struct {
	// Value is the resolved field value, or the producer output for Custom
	// columns.
	Value any
	// Text is what to print.
	Text string
	// Full is the untruncated text, e.g. for a tooltip.
	Full string
	// Truncated reports whether Text was shortened.
	Truncated bool
}

// Display resolves the cell of row for this column.
func (c Column) Display(row Row) CellDisplay {
	if ct, ok := c.Cell.(customCell); ok && ct.producer != nil {
		v := ct.producer(row)
		text := Stringify(Some(v))

		return CellDisplay{Value: v, Text: text, Full: text}
	}

	value := Resolve(row, c.ID)
	raw, _ := value.Get()
	full := Stringify(value)
	ret := CellDisplay{Value: raw, Text: full, Full: full}

	// Only string values are truncated.
	if ct, ok := c.Cell.(truncatedCell); ok {
		if s, isString := raw.(string); isString {
			ret.Text = Truncate(s, ct.length)
			ret.Truncated = ret.Text != s
		}
	}

	return ret
}

// Truncate returns value cut to length runes followed by TruncateSuffix
// when it is longer than length, otherwise value itself.
func Truncate(value string, length int) string {
	runes := []rune(value)
	if length < 0 || len(runes) <= length {
		return value
	}

	return string(runes[:length]) + TruncateSuffix
}
