package book

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration

	"bookquery/internal/database"
)

const (
	tableBooks     = "books"
	tableAuthors   = "authors"
	aliasBooks     = "b"
	aliasAuthors   = "a"
	colBookID      = "id"
	colTitle       = "title"
	colAuthorID    = "author_id"
	colAuthorName  = "author_name"
	colAuthorFK    = "b.author_id"
	colBookTitle   = "b.title"
	likeEscapeChar = `\`
)

// containsTemplates renders a case-insensitive "title contains pattern" predicate per dialect.
// SQLite's LIKE is already case-insensitive for ASCII.
var containsTemplates = map[string]string{
	database.DialectPostgres: `? ILIKE ? ESCAPE '\'`,
	database.DialectSQLite:   `? LIKE ? ESCAPE '\'`,
}

var likeEscaper = strings.NewReplacer(
	likeEscapeChar, likeEscapeChar+likeEscapeChar,
	"%", likeEscapeChar+"%",
	"_", likeEscapeChar+"_",
)

// Statement is a rendered query plus the values bound to its placeholders.
type Statement struct {
	SQL  string
	Args []any
}

// QueryBuilder renders the books listing query for one SQL dialect.
type QueryBuilder struct {
	dialect  string
	contains string
}

// NewQueryBuilder returns a builder for dialect ("postgres" or "sqlite3").
func NewQueryBuilder(dialect string) (QueryBuilder, error) {
	contains, ok := containsTemplates[dialect]
	if !ok {
		return QueryBuilder{}, fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
	}
	return QueryBuilder{dialect: dialect, contains: contains}, nil
}

// Build renders the query for f. Author filter, search filter and limit are applied in that
// order; every value travels as a bound parameter.
func (qb QueryBuilder) Build(f Filter) (Statement, error) {
	f = f.Normalize()

	selectStmt := goqu.Dialect(qb.dialect).
		From(goqu.T(tableBooks).As(aliasBooks)).
		Prepared(true).
		Select(
			goqu.I(aliasBooks+"."+colBookID).As(colBookID),
			goqu.I(aliasBooks+"."+colTitle).As(colTitle),
			goqu.I(aliasAuthors+"."+colBookID).As(colAuthorID),
			goqu.I(aliasAuthors+".name").As(colAuthorName),
		).
		InnerJoin(
			goqu.T(tableAuthors).As(aliasAuthors),
			goqu.On(goqu.I(colAuthorFK).Eq(goqu.I(aliasAuthors+"."+colBookID))),
		)

	clauses := qb.predicates(f)
	if len(clauses) > 0 {
		selectStmt = selectStmt.Where(goqu.And(clauses...))
	}

	if f.Limit > 0 {
		selectStmt = selectStmt.Limit(uint(f.Limit))
	}

	sqlQuery, args, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return Statement{}, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return Statement{SQL: sqlQuery, Args: args}, nil
}

// predicates collects the WHERE clauses in their fixed order: author filter, then search filter.
func (qb QueryBuilder) predicates(f Filter) []goqu.Expression {
	clauses := make([]goqu.Expression, 0, 2)

	if len(f.AuthorIDs) > 0 {
		clauses = append(clauses, goqu.I(colAuthorFK).In(f.AuthorIDs))
	}

	if f.Search != "" {
		pattern := "%" + likeEscaper.Replace(f.Search) + "%"
		clauses = append(clauses, goqu.L(qb.contains, goqu.I(colBookTitle), pattern))
	}

	return clauses
}
