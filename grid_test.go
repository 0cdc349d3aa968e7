package gogrid

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e, err := NewEngine(append([]Option{WithLogger(logger)}, opts...)...)
	require.NoError(t, err)

	return e, &logs
}

func Test_NewEngine_Defaults(t *testing.T) {
	e, _ := newTestEngine(t)

	in := e.Inputs()
	assert.Equal(t, ModeClient, in.Mode)
	assert.Equal(t, 1, in.Page)
	assert.Equal(t, DefaultPageSize, in.PageSize)
	assert.Equal(t, FilterPage, in.FilterScope)
	assert.True(t, e.View().Empty())
	assert.NotNil(t, e.Ledger())
}

func Test_NewEngine_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"zero page size", []Option{WithPageSize(0)}},
		{"negative page size", []Option{WithPageSize(-1)}},
		{"unknown mode", []Option{WithMode("paged")}},
		{"unknown filter scope", []Option{WithFilterScope("rows")}},
		{"bad column", []Option{WithColumns(Column{ID: "title", Cell: Truncated(-1)})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEngine(tt.opts...)
			require.ErrorIs(t, err, ErrConfiguration)
			require.Nil(t, e)
		})
	}
}

func Test_Engine_Scenario(t *testing.T) {
	e, _ := newTestEngine(t,
		WithRows(artworks(), 0),
		WithPageSize(2),
		WithSearchKey("title"),
		WithColumns(
			Column{ID: "id", Label: "Id"},
			Column{ID: "title", Label: "Title", Cell: Truncated(30)},
		),
	)

	view := e.View()
	assert.Equal(t, []any{1, 2}, visibleIDs(view))
	assert.Equal(t, 3, view.TotalCount)
	assert.Equal(t, 2, view.PageCount)

	view = e.SetSort("title")
	assert.Equal(t, SortBy("title"), view.Sort)
	assert.Equal(t, []any{"Mona Lisa", "Starry Night"}, titles(view))

	view = e.SetSort("title")
	assert.Equal(t, DirectionDESC, view.Sort.Direction)
	assert.Equal(t, []any{"The Scream", "Starry Night"}, titles(view))

	view = e.SetSort("title")
	assert.Equal(t, DirectionASC, view.Sort.Direction)

	_, err := e.SetSortDirective(NoSort)
	require.NoError(t, err)

	view = e.SetSearchTerm("sc")
	assert.Empty(t, view.Rows)

	view = e.SetPage(2)
	assert.Equal(t, []any{"The Scream"}, titles(view))

	view = e.SetSearchTerm("")
	assert.Equal(t, []any{3}, visibleIDs(view))
}

func Test_Engine_SetPageSize(t *testing.T) {
	e, _ := newTestEngine(t, WithRows(numberedRows(5), 0), WithPageSize(2))

	e.ToggleRowSelection(1)

	view, err := e.SetPageSize(0)
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, 2, view.PageSize)

	view, err = e.SetPageSize(3)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, visibleIDs(view))
	assert.Equal(t, 2, view.PageCount)
	// The ledger survives a stride change.
	assert.Equal(t, []RowID{int64(1)}, view.Selection)
}

func Test_Engine_Selection(t *testing.T) {
	var published [][]RowID
	e, logs := newTestEngine(t,
		WithRows(numberedRows(5), 0),
		WithPageSize(2),
		WithSelectionChange(func(ids []RowID) {
			published = append(published, ids)
		}),
	)

	view := e.ToggleRowSelection(1)
	assert.Equal(t, []bool{true, false}, selectedFlags(view))
	assert.False(t, view.AllSelected)

	view = e.ToggleSelectAll()
	assert.Equal(t, []bool{true, true}, selectedFlags(view))
	assert.True(t, view.AllSelected)

	view = e.SetPage(2)
	assert.Equal(t, []bool{false, false}, selectedFlags(view))

	view = e.ToggleSelectAll()
	assert.True(t, view.AllSelected)
	assert.Equal(t, []RowID{int64(1), int64(2), int64(3), int64(4)}, e.Selection())

	view = e.ToggleSelectAll()
	assert.False(t, view.AllSelected)
	assert.Equal(t, []RowID{int64(1), int64(2)}, view.Selection)

	require.Len(t, published, 4)
	assert.Equal(t, []RowID{int64(1)}, published[0])
	assert.NotContains(t, logs.String(), "level=WARN")

	view = e.ClearSelection()
	assert.Empty(t, view.Selection)
	require.Len(t, published, 5)
}

func Test_Engine_SelectionMisuseIsReported(t *testing.T) {
	e, logs := newTestEngine(t, WithRows(numberedRows(5), 0), WithPageSize(2))

	// Row 5 lives on page 3; recording it under page 1 is permitted.
	view := e.ToggleRowSelection(5)
	assert.Equal(t, []RowID{int64(5)}, view.Selection)
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "row_id=5")

	logs.Reset()
	e.SetPage(10)
	view = e.ToggleSelectAll()
	assert.Contains(t, logs.String(), "toggling select all on an empty page")
	assert.False(t, view.AllSelected)
}

func Test_Engine_SameRowUnderTwoPageKeys(t *testing.T) {
	e, _ := newTestEngine(t, WithRows(numberedRows(4), 0), WithPageSize(2))

	e.SetPage(2)
	e.ToggleRowSelection(3)

	// Shift boundaries so row 3 shows on page 1 and select it again.
	_, err := e.SetPageSize(4)
	require.NoError(t, err)
	e.SetPage(1)
	view := e.ToggleRowSelection(3)

	assert.Equal(t, []RowID{int64(3)}, view.Selection)
	assert.Equal(t, []int{1, 2}, e.Ledger().PageKeys())
}

func Test_Engine_ModeGuards(t *testing.T) {
	client, _ := newTestEngine(t)
	_, err := client.SetServerPage(numberedRows(2), 10)
	require.Error(t, err)

	server, _ := newTestEngine(t, WithMode(ModeServer), WithPageSize(2))
	_, err = server.SetRows(numberedRows(2))
	require.Error(t, err)

	view, err := server.SetServerPage(numberedRows(2), 10)
	require.NoError(t, err)
	assert.Equal(t, 10, view.TotalCount)
	assert.Equal(t, 5, view.PageCount)

	view, err = client.SetRows(numberedRows(3))
	require.NoError(t, err)
	assert.Equal(t, 3, view.TotalCount)
}

func Test_Engine_SetSortDirective_Invalid(t *testing.T) {
	e, _ := newTestEngine(t, WithRows(artworks(), 0))

	_, err := e.SetSortDirective(SortDirective{Key: "title", Direction: "sideways"})
	require.Error(t, err)
	assert.True(t, e.View().Sort.IsNone())
}

func Test_Engine_SharedLedger(t *testing.T) {
	ledger := NewSelectionLedger()
	ledger.ToggleRow(1, 2)

	e, _ := newTestEngine(t, WithRows(artworks(), 0), WithLedger(ledger), WithPageSize(2))
	assert.Equal(t, []bool{false, true}, selectedFlags(e.View()))

	e.ToggleRowSelection(1)
	assert.True(t, ledger.IsSelected(1, 1))
}

func Test_Engine_Query(t *testing.T) {
	e, _ := newTestEngine(t,
		WithMode(ModeServer),
		WithPageSize(10),
		WithPage(3),
		WithSearchKey("thumbnail__alt_text"),
		WithSort(SortBy("title")),
	)
	e.SetSearchTerm("bridge")

	assert.Equal(t, Query{
		Page:       3,
		PageSize:   10,
		SearchKey:  "thumbnail__alt_text",
		SearchTerm: "bridge",
		Sort:       SortBy("title"),
	}, e.Query())
}

func Test_Engine_InputsIsACopy(t *testing.T) {
	e, _ := newTestEngine(t, WithRows(artworks(), 0))

	in := e.Inputs()
	in.Rows[0] = Row{"id": 99}

	assert.Equal(t, 1, e.Inputs().Rows[0]["id"])
}
