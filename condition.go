package gogrid

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"gorm.io/gorm/clause"
)

// tSearchCondition is the server-side counterpart of Filter: a case
// insensitive substring match of Term against Column.
type tSearchCondition struct {
	Column string
	Term   string
}

// likeEscape is the LIKE escape character named in the clause. SQLite has
// no default one.
const likeEscape = "!"

// likeEscaper escapes LIKE wildcards so the term matches literally.
var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, `%`, likeEscape+`%`, `_`, likeEscape+`_`)

// pattern returns the LIKE pattern for the term, e.g. "Sc" -> "%sc%".
func (c tSearchCondition) pattern() string {
	return "%" + likeEscaper.Replace(strings.ToLower(c.Term)) + "%"
}

// toGORMExpression converts the condition into
// "LOWER(Column) LIKE ? ESCAPE '!'".
//
// IMPORTANT: The method uses the SQL placeholder "?".
func (c tSearchCondition) toGORMExpression() clause.Expression {
	sqlClause, arg := c.toSQLClause()

	return clause.Expr{
		SQL:  sqlClause,
		Vars: []any{arg},
	}
}

// toSQLClause converts the condition into an SQL condition with its
// placeholder value.
//
// Example:
//
//	tSearchCondition = {Column: "title", Term: "Sc"}
//
// Result:
//
//	("LOWER(title) LIKE ? ESCAPE '!'", "%sc%")
func (c tSearchCondition) toSQLClause() (string, driver.Value) {
	return fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '%s'", c.Column, likeEscape), c.pattern()
}
