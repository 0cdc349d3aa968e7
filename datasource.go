package gogrid

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Query is what a server-side data source is asked for.
type Query struct {
	Page       int
	PageSize   int
	SearchKey  string
	SearchTerm string
	Sort       SortDirective
}

func (q Query) validate() error {
	if q.Page < 1 {
		return fmt.Errorf("invalid page '%d'", q.Page)
	}

	if q.PageSize <= 0 {
		return newInvalidPageSize(q.PageSize)
	}

	return q.Sort.validate()
}

// Token encodes the query as a PageToken string.
func (q Query) Token() string {
	return (&PageToken{
		Page:       q.Page,
		PageSize:   q.PageSize,
		SortKey:    q.Sort.Key,
		Direction:  q.Sort.Direction,
		SearchTerm: q.SearchTerm,
	}).String()
}

// WithPage returns a copy of the query pointing at page.
func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

// Page is one server page: its rows and the authoritative total count.
type Page struct {
	Rows  []Row
	Total int
}

// DataSource serves pages in ModeServer. The engine never calls it; hosts
// do, through Sync or directly.
type DataSource interface {
	Fetch(ctx context.Context, q Query) (Page, error)
}

// Sync fetches the page matching the engine state from src and installs it.
func Sync(ctx context.Context, src DataSource, e *Engine) (View, error) {
	page, err := src.Fetch(ctx, e.Query())
	if err != nil {
		return e.View(), fmt.Errorf("cannot sync grid: %w", err)
	}

	return e.SetServerPage(page.Rows, page.Total)
}

// GORMSource is a DataSource over one table. Columns maps external column
// ids, as used by sort directives and search keys, to SQL columns; only
// mapped columns can be sorted or searched.
type GORMSource struct {
	db      *gorm.DB
	table   string
	columns ColumnMapping
}

func NewGORMSource(db *gorm.DB, table string, columns ColumnMapping) *GORMSource {
	return &GORMSource{
		db:      db,
		table:   table,
		columns: columns,
	}
}

// Fetch - implements DataSource. Counts the matching rows, then reads the
// requested page window. Sort and search columns are checked before any
// SQL is sent.
func (s *GORMSource) Fetch(ctx context.Context, q Query) (Page, error) {
	if err := q.validate(); err != nil {
		return Page{}, fmt.Errorf("cannot fetch page: %w", err)
	}

	orderBy, err := q.Sort.toSQL(s.columns)
	if err != nil {
		return Page{}, fmt.Errorf("cannot fetch page: sort: %w", err)
	}

	db, err := s.filtered(s.db.WithContext(ctx).Table(s.table), q)
	if err != nil {
		return Page{}, fmt.Errorf("cannot fetch page: %w", err)
	}

	var total int64
	if err = db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page{}, fmt.Errorf("cannot count rows: %w", err)
	}

	if orderBy != "" {
		db = db.Order(orderBy)
	}
	db = (&PageToken{Page: q.Page, PageSize: q.PageSize}).Apply(db)

	rows := make([]map[string]any, 0, q.PageSize)
	if err = db.Find(&rows).Error; err != nil {
		return Page{}, fmt.Errorf("cannot read rows: %w", err)
	}

	ret := make([]Row, len(rows))
	for i := range rows {
		ret[i] = rows[i]
	}

	return Page{Rows: ret, Total: int(total)}, nil
}

func (s *GORMSource) filtered(db *gorm.DB, q Query) (*gorm.DB, error) {
	if q.SearchKey == "" || q.SearchTerm == "" {
		return db, nil
	}

	column, err := lookupColumn(q.SearchKey, s.columns)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	return db.Clauses(tSearchCondition{Column: column, Term: q.SearchTerm}.toGORMExpression()), nil
}

var _ DataSource = (*GORMSource)(nil)
