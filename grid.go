package gogrid

import (
	"fmt"
	"log/slog"
	"slices"
)

// Engine is the stateful host of one grid session: it keeps the current
// inputs and the selection ledger, applies mutation commands and
// recomputes the view after each of them. An Engine is not safe for
// concurrent use; serialize commands the way UI events are serialized.
type Engine struct {
	in     Inputs
	ledger *SelectionLedger
	view   View
	logger *slog.Logger

	onSelectionChange func([]RowID)
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithMode sets the pagination mode. Defaults to ModeClient.
func WithMode(mode Mode) Option {
	return func(e *Engine) {
		e.in.Mode = mode
	}
}

// WithPageSize sets the number of rows per page. Defaults to
// DefaultPageSize.
func WithPageSize(pageSize int) Option {
	return func(e *Engine) {
		e.in.PageSize = pageSize
	}
}

// WithPage sets the initial page. Defaults to 1.
func WithPage(page int) Option {
	return func(e *Engine) {
		e.in.Page = page
	}
}

// WithColumns sets the column schema.
func WithColumns(columns ...Column) Option {
	return func(e *Engine) {
		e.in.Columns = columns
	}
}

// WithSearchKey sets the field path the search term is matched against.
func WithSearchKey(path string) Option {
	return func(e *Engine) {
		e.in.SearchKey = path
	}
}

// WithFilterScope sets the client mode filter scope. Defaults to
// FilterPage.
func WithFilterScope(scope FilterScope) Option {
	return func(e *Engine) {
		e.in.FilterScope = scope
	}
}

// WithSort sets the initial sort directive.
func WithSort(directive SortDirective) Option {
	return func(e *Engine) {
		e.in.Sort = directive
	}
}

// WithRows sets the initial rows. In ModeServer total is the authoritative
// count, in ModeClient it is ignored.
func WithRows(rows []Row, total int) Option {
	return func(e *Engine) {
		e.in.Rows = rows
		e.in.Total = total
	}
}

// WithLedger makes the engine record selection into ledger instead of a
// fresh one.
func WithLedger(ledger *SelectionLedger) Option {
	return func(e *Engine) {
		e.ledger = ledger
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSelectionChange registers fn to receive the flattened selection
// after every selection command.
func WithSelectionChange(fn func([]RowID)) Option {
	return func(e *Engine) {
		e.onSelectionChange = fn
	}
}

// NewEngine builds an engine and computes its first view. Configuration
// errors are reported here, never by later commands.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		in: Inputs{
			Mode:        ModeClient,
			Page:        1,
			PageSize:    DefaultPageSize,
			FilterScope: FilterPage,
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.ledger == nil {
		e.ledger = NewSelectionLedger()
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}

	view, err := Recompute(e.in, e.ledger)
	if err != nil {
		return nil, fmt.Errorf("cannot create grid engine: %w", err)
	}
	e.view = view

	return e, nil
}

// View returns the current view.
func (e *Engine) View() View {
	return e.view
}

// Inputs returns a copy of the current inputs.
func (e *Engine) Inputs() Inputs {
	in := e.in
	in.Rows = slices.Clone(e.in.Rows)
	in.Columns = slices.Clone(e.in.Columns)

	return in
}

// Ledger returns the selection ledger the engine records into.
func (e *Engine) Ledger() *SelectionLedger {
	return e.ledger
}

// Selection returns the flattened selection across all pages.
func (e *Engine) Selection() []RowID {
	return e.ledger.Flatten()
}

// Query describes the page a server-side data source must return for the
// current state.
func (e *Engine) Query() Query {
	return Query{
		Page:       e.in.Page,
		PageSize:   e.in.PageSize,
		SearchKey:  e.in.SearchKey,
		SearchTerm: e.in.SearchTerm,
		Sort:       e.in.Sort,
	}
}

// SetRows replaces the full row set. ModeClient only.
func (e *Engine) SetRows(rows []Row) (View, error) {
	if e.in.Mode != ModeClient {
		return e.view, fmt.Errorf("cannot set rows: grid is in %s mode", e.in.Mode)
	}

	e.in.Rows = rows

	return e.refresh(), nil
}

// SetServerPage installs one fetched page and the authoritative total.
// ModeServer only.
func (e *Engine) SetServerPage(rows []Row, total int) (View, error) {
	if e.in.Mode != ModeServer {
		return e.view, fmt.Errorf("cannot set server page: grid is in %s mode", e.in.Mode)
	}

	e.in.Rows = rows
	e.in.Total = total

	return e.refresh(), nil
}

// SetSort handles a click on the header of column columnID: the same
// column flips its direction, another column starts ascending.
func (e *Engine) SetSort(columnID string) View {
	e.in.Sort = e.in.Sort.Toggle(columnID)

	return e.refresh()
}

// SetSortDirective sets the directive explicitly. NoSort restores the
// input order.
func (e *Engine) SetSortDirective(directive SortDirective) (View, error) {
	if err := directive.validate(); err != nil {
		return e.view, fmt.Errorf("cannot set sort: %w", err)
	}

	e.in.Sort = directive

	return e.refresh(), nil
}

// SetPage moves to page n. Pages out of range show an empty page.
func (e *Engine) SetPage(n int) View {
	e.in.Page = n

	return e.refresh()
}

// SetPageSize changes the slicing stride. Selection recorded under earlier
// page keys stays in the ledger.
func (e *Engine) SetPageSize(n int) (View, error) {
	if n <= 0 {
		return e.view, fmt.Errorf("cannot set page size: %w", newInvalidPageSize(n))
	}

	e.in.PageSize = n

	return e.refresh(), nil
}

// SetSearchTerm sets the search term; "" disables filtering.
func (e *Engine) SetSearchTerm(term string) View {
	e.in.SearchTerm = term

	return e.refresh()
}

// ToggleRowSelection toggles id under the current page key. Toggling a row
// that is not visible is permitted and reported.
func (e *Engine) ToggleRowSelection(id RowID) View {
	id = NormalizeID(id)
	if !slices.Contains(e.view.RowIDs(), id) {
		e.logger.Warn("toggling selection of a row not on the current page",
			"page", e.in.Page,
			"row_id", id,
		)
	}

	e.ledger.ToggleRow(e.in.Page, id)

	return e.selectionChanged()
}

// ToggleSelectAll selects every visible row of the current page, or clears
// the page when it is already fully selected.
func (e *Engine) ToggleSelectAll() View {
	ids := e.view.RowIDs()
	if len(ids) == 0 {
		e.logger.Warn("toggling select all on an empty page",
			"page", e.in.Page,
		)
	}

	e.ledger.ToggleAllOnPage(e.in.Page, ids)

	return e.selectionChanged()
}

// ClearSelection empties the whole ledger.
func (e *Engine) ClearSelection() View {
	e.ledger.Clear()

	return e.selectionChanged()
}

func (e *Engine) selectionChanged() View {
	view := e.refresh()
	if e.onSelectionChange != nil {
		e.onSelectionChange(view.Selection)
	}

	return view
}

func (e *Engine) refresh() View {
	view, err := Recompute(e.in, e.ledger)
	if err != nil {
		e.logger.Error("grid recompute failed, keeping previous view", "error", err)
		return e.view
	}

	e.logger.Debug("grid recomputed",
		"mode", e.in.Mode,
		"page", view.Page,
		"page_size", view.PageSize,
		"total", view.TotalCount,
		"visible", len(view.Rows),
	)
	e.view = view

	return view
}
