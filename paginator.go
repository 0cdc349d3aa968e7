package gogrid

import "fmt"

// Mode selects who owns slicing. The two modes are mutually exclusive per
// grid.
type Mode string

const (
	// ModeClient - the grid holds the full row set and slices it locally.
	ModeClient Mode = "client"
	// ModeServer - the grid is handed one already fetched page and an
	// authoritative total count.
	ModeServer Mode = "server"
)

func (m Mode) Valid() bool {
	return m == ModeClient || m == ModeServer
}

// PaginateClient slices sorted rows to the requested 1-based page. The
// total count is always len(sorted). Pages outside the available range,
// including pages below 1, yield an empty page.
//
// pageSize must be positive; callers validate it upfront.
func PaginateClient(sorted []Row, page, pageSize int) ([]Row, int) {
	total := len(sorted)
	if page < 1 || pageSize <= 0 {
		return []Row{}, total
	}

	start := (page - 1) * pageSize
	if start >= total || start < 0 {
		return []Row{}, total
	}

	end := min(start+pageSize, total)

	return sorted[start:end], total
}

// PaginateServer is a passthrough: the fetched rows already are exactly
// one server page.
func PaginateServer(fetched []Row, total int) ([]Row, int) {
	return fetched, max(total, 0)
}

// PageCount returns ceil(total / pageSize). A non-positive pageSize yields
// zero instead of dividing by zero.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}

	return (total + pageSize - 1) / pageSize
}

// Navigation describes the pager affordances of the current page.
type Navigation struct {
	Page       int
	PageSize   int
	Total      int
	PageCount  int
	LastPage   int  // target of the "last page" action, never below 1
	CanFirst   bool // false on page 1
	CanPrev    bool // false on page 1
	CanNext    bool // false once page >= PageCount
	CanLast    bool // false once page >= PageCount
	RangeStart int  // 1-based index of the first row on the page
	RangeEnd   int  // 1-based index of the last row on the page
}

// NewNavigation derives pager affordances. pageSize must be positive.
func NewNavigation(page, pageSize, total int) Navigation {
	pageCount := PageCount(total, pageSize)
	isLastPage := page*pageSize >= total

	nav := Navigation{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		PageCount:  pageCount,
		LastPage:   max(1, pageCount),
		CanFirst:   page > 1,
		CanPrev:    page > 1,
		CanNext:    page < pageCount,
		CanLast:    page < pageCount,
		RangeStart: (page-1)*pageSize + 1,
		RangeEnd:   page * pageSize,
	}
	if isLastPage {
		nav.RangeEnd = total
	}

	return nav
}

// RangeLabel renders the footer label, e.g. "11-20 of 95".
func (n Navigation) RangeLabel() string {
	return fmt.Sprintf("%d-%d of %d", n.RangeStart, n.RangeEnd, n.Total)
}

// Next returns the page the "next" action targets; the current page when
// the action is disabled.
func (n Navigation) Next() int {
	if !n.CanNext {
		return n.Page
	}

	return n.Page + 1
}

// Prev returns the page the "previous" action targets; the current page
// when the action is disabled.
func (n Navigation) Prev() int {
	if !n.CanPrev {
		return n.Page
	}

	return n.Page - 1
}
