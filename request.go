package gogrid

import "fmt"

// RawGridRequest is intended for API payloads. For proper code generation,
// inline it:
//
//	type MyFilter struct {
//	    Grid RawGridRequest `json:",inline"`
//	}
type RawGridRequest struct {
	// Page - 1-based page number. Non-positive values mean the first page.
	Page int `json:"page"`
	// PageSize - number of rows per page, normalized via NormalizePageSize.
	PageSize int `json:"pageSize"`
	// Sort - "column [asc|desc]". Empty means input order.
	Sort string `json:"sort,omitempty"`
	// Search - case insensitive substring searched in the search column.
	Search string `json:"search,omitempty"`
	// Token - PageToken obtained via Query.Token(). When set it takes
	// precedence over every other field.
	Token string `json:"token,omitempty"`
}

// Decode converts RawGridRequest into a Query, normalizing Page and
// PageSize and validating Sort against columnMapping. searchKey is the
// column the search term applies to.
func (r RawGridRequest) Decode(searchKey string, columnMapping ColumnMapping) (Query, error) {
	tok, err := DecodePageToken(r.Token)
	if err != nil {
		return Query{}, fmt.Errorf("cannot decode grid request: %w", err)
	}

	if !tok.IsEmpty() {
		q := tok.Query(searchKey)
		q.PageSize = NormalizePageSize(q.PageSize)

		if !q.Sort.IsNone() {
			if _, err = ParseSort(q.Sort.String(), columnMapping); err != nil {
				return Query{}, fmt.Errorf("cannot decode grid request: %w", err)
			}
		}

		return q, nil
	}

	sort, err := ParseSort(r.Sort, columnMapping)
	if err != nil {
		return Query{}, fmt.Errorf("cannot decode grid request: %w", err)
	}

	return Query{
		Page:       NormalizePage(r.Page),
		PageSize:   NormalizePageSize(r.PageSize),
		SearchKey:  searchKey,
		SearchTerm: r.Search,
		Sort:       sort,
	}, nil
}

// Apply moves the engine to the query's page, page size, sort and search
// term.
func (q Query) Apply(e *Engine) (View, error) {
	if err := q.validate(); err != nil {
		return e.View(), fmt.Errorf("cannot apply query: %w", err)
	}

	if _, err := e.SetPageSize(q.PageSize); err != nil {
		return e.View(), err
	}

	if _, err := e.SetSortDirective(q.Sort); err != nil {
		return e.View(), err
	}

	e.SetSearchTerm(q.SearchTerm)

	return e.SetPage(q.Page), nil
}
