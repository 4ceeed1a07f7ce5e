package book

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookquery/internal/database"
)

func newPostgresBuilder(t *testing.T) QueryBuilder {
	t.Helper()
	qb, err := NewQueryBuilder(database.DialectPostgres)
	require.NoError(t, err)
	return qb
}

func TestNewQueryBuilder_UnsupportedDialect(t *testing.T) {
	_, err := NewQueryBuilder("oracle")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}

func TestQueryBuilder_Build_NoFilters(t *testing.T) {
	stmt, err := newPostgresBuilder(t).Build(Filter{})
	require.NoError(t, err)

	assert.Contains(t, stmt.SQL, `FROM "books" AS "b"`)
	assert.Contains(t, stmt.SQL, `INNER JOIN "authors" AS "a"`)
	assert.NotContains(t, stmt.SQL, "WHERE")
	assert.NotContains(t, stmt.SQL, "LIMIT")
	assert.Empty(t, stmt.Args)
}

func TestQueryBuilder_Build_AllFiltersInOrder(t *testing.T) {
	stmt, err := newPostgresBuilder(t).Build(Filter{AuthorIDs: []int64{10, 11}, Search: "dune", Limit: 1})
	require.NoError(t, err)

	authorAt := strings.Index(stmt.SQL, `"b"."author_id" IN`)
	searchAt := strings.Index(stmt.SQL, "ILIKE")
	limitAt := strings.Index(stmt.SQL, "LIMIT")
	require.NotEqual(t, -1, authorAt)
	require.NotEqual(t, -1, searchAt)
	require.NotEqual(t, -1, limitAt)
	assert.Less(t, authorAt, searchAt)
	assert.Less(t, searchAt, limitAt)

	require.Len(t, stmt.Args, 4)
	assert.EqualValues(t, 10, stmt.Args[0])
	assert.EqualValues(t, 11, stmt.Args[1])
	assert.Equal(t, "%dune%", stmt.Args[2])
	assert.EqualValues(t, 1, stmt.Args[3])
}

func TestQueryBuilder_Build_EmptyAuthorIDsMatchesNoFilter(t *testing.T) {
	qb := newPostgresBuilder(t)

	withNil, err := qb.Build(Filter{Search: "dune"})
	require.NoError(t, err)
	withEmpty, err := qb.Build(Filter{AuthorIDs: []int64{}, Search: "dune"})
	require.NoError(t, err)

	assert.Equal(t, withNil, withEmpty)
	assert.NotContains(t, withEmpty.SQL, " IN (")
}

func TestQueryBuilder_Build_Limit(t *testing.T) {
	qb := newPostgresBuilder(t)

	for _, limit := range []int{0, -5} {
		stmt, err := qb.Build(Filter{Limit: limit})
		require.NoError(t, err)
		assert.NotContains(t, stmt.SQL, "LIMIT", "limit %d", limit)
	}

	stmt, err := qb.Build(Filter{Limit: 3})
	require.NoError(t, err)
	assert.Contains(t, stmt.SQL, "LIMIT $1")
	require.Len(t, stmt.Args, 1)
	assert.EqualValues(t, 3, stmt.Args[0])
}

func TestQueryBuilder_Build_SearchIsBoundNotInterpolated(t *testing.T) {
	tests := []struct {
		name    string
		search  string
		pattern string
	}{
		{name: "apostrophe", search: "O'Brien", pattern: "%O'Brien%"},
		{name: "injection", search: "'; DROP TABLE books; --", pattern: "%'; DROP TABLE books; --%"},
		{name: "like wildcards", search: `100%_off\`, pattern: `%100\%\_off\\%`},
	}

	qb := newPostgresBuilder(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := qb.Build(Filter{Search: tt.search})
			require.NoError(t, err)

			assert.NotContains(t, stmt.SQL, tt.search)
			assert.Contains(t, stmt.SQL, "ILIKE $1")
			assert.Equal(t, []any{tt.pattern}, stmt.Args)
		})
	}
}

func TestQueryBuilder_Build_SQLite(t *testing.T) {
	qb, err := NewQueryBuilder(database.DialectSQLite)
	require.NoError(t, err)

	stmt, err := qb.Build(Filter{AuthorIDs: []int64{10}, Search: "dune", Limit: 2})
	require.NoError(t, err)

	assert.Contains(t, stmt.SQL, "LIKE ?")
	assert.NotContains(t, stmt.SQL, "ILIKE")
	assert.NotContains(t, stmt.SQL, "$1")
	require.Len(t, stmt.Args, 3)
	assert.EqualValues(t, 10, stmt.Args[0])
	assert.Equal(t, "%dune%", stmt.Args[1])
	assert.EqualValues(t, 2, stmt.Args[2])
}
