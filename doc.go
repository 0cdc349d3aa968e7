// Package gogrid provides the state engine of a tabular data grid: it
// derives what to display and what is selected from a row collection, a
// sort directive, a pagination mode and page, a search term and a
// per-page selection ledger.
//
// Overview
//
// The view is derived in a fixed order:
//   - Sort: stable single-column ordering by a resolved field path.
//   - Paginate: in ModeClient the engine slices the full set; in
//     ModeServer the rows already are one page and the total count is
//     taken as given (sorting is then page-local).
//   - Filter: ModeClient only, a case insensitive substring match of the
//     search term. By default only the current page is narrowed
//     (FilterPage); FilterGlobal filters before slicing.
//   - Selection: the SelectionLedger is consulted for the rows of the
//     resulting page.
//
// Key concepts
//   - Recompute: pure derivation of a View from Inputs and a ledger.
//   - Engine: stateful host of one grid session applying mutation
//     commands (SetSort, SetPage, SetPageSize, SetSearchTerm,
//     ToggleRowSelection, ToggleSelectAll).
//   - SelectionLedger: selection keyed by the page number in effect when
//     it happened, flattened into one de-duplicated set.
//   - DataSource: the server-side collaborator; GORMSource serves pages
//     from a SQL table.
//
// Field paths address nested fields with "__", e.g. "thumbnail__alt_text".
package gogrid
