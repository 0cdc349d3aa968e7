package gogrid

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

var _encoder = base64.RawURLEncoding

// PageToken is an opaque, URL-safe token carrying the grid state a client
// needs to resume: page, page size, sort and search. An empty token means
// the first page with default settings.
type PageToken struct {
	Page       int       `json:"p"`
	PageSize   int       `json:"s"`
	SortKey    string    `json:"k,omitempty"`
	Direction  Direction `json:"d,omitempty"`
	SearchTerm string    `json:"q,omitempty"`
}

// DecodePageToken attempts to parse a base64-encoded token.
func DecodePageToken(b64String string) (*PageToken, error) {
	if len(b64String) == 0 {
		return nil, nil
	}

	jsonData, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 encoded page token: %w", err)
	}

	var tok PageToken
	if err = json.Unmarshal(jsonData, &tok); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json encoded page token: %w", err)
	}

	if tok.Page < 1 {
		return nil, fmt.Errorf("invalid page token page '%d'", tok.Page)
	}

	if tok.PageSize <= 0 {
		return nil, fmt.Errorf("invalid page token page size '%d'", tok.PageSize)
	}

	return &tok, nil
}

// String - implements fmt.Stringer.
func (t *PageToken) String() string {
	if t.IsEmpty() {
		return ""
	}

	jTok, err := json.Marshal(t)
	if err != nil {
		panic(fmt.Errorf("cannot marshal page token value: %w", err))
	}

	var buf bytes.Buffer
	if err = json.Compact(&buf, jTok); err != nil {
		panic(fmt.Errorf("cannot compact page token value: %w", err))
	}

	return _encoder.EncodeToString(buf.Bytes())
}

// IsEmpty returns true for a nil token or one pointing nowhere.
func (t *PageToken) IsEmpty() bool {
	return t == nil || t.Page == 0
}

// GetOffset returns the number of rows preceding the token's page.
func (t *PageToken) GetOffset() int {
	if t.IsEmpty() || t.PageSize <= 0 {
		return 0
	}

	return (t.Page - 1) * t.PageSize
}

// Sort returns the sort directive carried by the token.
func (t *PageToken) Sort() SortDirective {
	if t == nil || t.SortKey == "" {
		return NoSort
	}

	return SortDirective{Key: t.SortKey, Direction: t.Direction}
}

// Apply applies the token's page window to a gorm query.
func (t *PageToken) Apply(db *gorm.DB) *gorm.DB {
	if t == nil || t.PageSize <= 0 {
		return db
	}

	return db.Limit(t.PageSize).Offset(t.GetOffset())
}

// Query returns the data source query the token stands for.
func (t *PageToken) Query(searchKey string) Query {
	if t == nil {
		return Query{Page: 1, PageSize: DefaultPageSize, SearchKey: searchKey}
	}

	return Query{
		Page:       t.Page,
		PageSize:   t.PageSize,
		SearchKey:  searchKey,
		SearchTerm: t.SearchTerm,
		Sort:       t.Sort(),
	}
}

var _ fmt.Stringer = (*PageToken)(nil)
