package gogrid

import (
	"fmt"

	"github.com/samber/lo"
)

// Inputs is everything a view is derived from, apart from the selection
// ledger.
type Inputs struct {
	Mode Mode
	// Rows is the full row set in ModeClient and the fetched page in
	// ModeServer.
	Rows []Row
	// Total is the authoritative total count. Used in ModeServer only.
	Total   int
	Columns []Column
	Sort    SortDirective
	// Page is 1-based.
	Page     int
	PageSize int
	// SearchKey is the field path the search term is matched against.
	// Searching is disabled when it is empty.
	SearchKey  string
	SearchTerm string
	// FilterScope defaults to FilterPage.
	FilterScope FilterScope
}

// Validate reports configuration errors. Every returned error is a
// *ConfigurationError.
func (in Inputs) Validate() error {
	if !in.Mode.Valid() {
		return &ConfigurationError{Field: "mode", Value: in.Mode, Reason: "unknown pagination mode"}
	}

	if in.PageSize <= 0 {
		return newInvalidPageSize(in.PageSize)
	}

	if in.FilterScope != "" && !in.FilterScope.Valid() {
		return &ConfigurationError{Field: "filter_scope", Value: in.FilterScope, Reason: "unknown filter scope"}
	}

	if err := in.Sort.validate(); err != nil {
		return &ConfigurationError{Field: "sort", Value: in.Sort.String(), Reason: err.Error()}
	}

	for _, column := range in.Columns {
		if err := column.validate(); err != nil {
			return err
		}
	}

	return nil
}

func (in Inputs) searching() bool {
	return in.SearchKey != "" && in.SearchTerm != ""
}

// VisibleRow is a displayed row with its selection flag.
type VisibleRow struct {
	Row      Row
	ID       RowID
	Selected bool
}

// View is the derived, display-ready state of the grid. It is a pure
// function of Inputs and the selection ledger.
type View struct {
	Rows        []VisibleRow
	TotalCount  int
	Page        int
	PageSize    int
	PageCount   int
	Sort        SortDirective
	Navigation  Navigation
	AllSelected bool
	// Selection is the flattened selection across all pages.
	Selection []RowID
}

// Empty returns true if there is nothing to show on the current page.
func (v View) Empty() bool {
	return len(v.Rows) == 0
}

// RowIDs returns the ids of the visible rows in display order, skipping
// rows without an id.
func (v View) RowIDs() []RowID {
	return lo.FilterMap(v.Rows, func(row VisibleRow, _ int) (RowID, bool) {
		return row.ID, row.ID != nil
	})
}

// Records returns the visible rows without selection flags.
func (v View) Records() []Row {
	return lo.Map(v.Rows, func(row VisibleRow, _ int) Row {
		return row.Row
	})
}

// Recompute derives the view in a fixed order: sort, paginate, filter
// (client mode only), then consult the ledger for the selection flags of
// the resulting page. The ledger is read, never written; nil is an empty
// ledger.
func Recompute(in Inputs, ledger *SelectionLedger) (View, error) {
	if err := in.Validate(); err != nil {
		return View{}, fmt.Errorf("cannot recompute: %w", err)
	}

	sorted := Sort(in.Rows, in.Sort)

	var (
		pageRows []Row
		total    int
	)

	switch in.Mode {
	case ModeClient:
		if in.FilterScope == FilterGlobal && in.searching() {
			pageRows, total = PaginateClient(Filter(sorted, in.SearchKey, in.SearchTerm), in.Page, in.PageSize)
			break
		}

		pageRows, total = PaginateClient(sorted, in.Page, in.PageSize)
		if in.searching() {
			pageRows = Filter(pageRows, in.SearchKey, in.SearchTerm)
		}
	case ModeServer:
		pageRows, total = PaginateServer(sorted, in.Total)
	}

	visible := lo.Map(pageRows, func(row Row, _ int) VisibleRow {
		id, ok := IDOf(row)

		return VisibleRow{
			Row:      row,
			ID:       id,
			Selected: ok && ledger.IsSelected(in.Page, id),
		}
	})

	return View{
		Rows:        visible,
		TotalCount:  total,
		Page:        in.Page,
		PageSize:    in.PageSize,
		PageCount:   PageCount(total, in.PageSize),
		Sort:        in.Sort,
		Navigation:  NewNavigation(in.Page, in.PageSize, total),
		AllSelected: ledger.IsAllSelectedOnPage(in.Page, len(visible)),
		Selection:   ledger.Flatten(),
	}, nil
}
