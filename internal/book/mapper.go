package book

import (
	"errors"
	"fmt"

	"bookquery/internal/database"
)

// Row is one flat record of the books/authors join.
type Row struct {
	BookID     int64  `db:"id"`
	Title      string `db:"title"`
	AuthorID   int64  `db:"author_id"`
	AuthorName string `db:"author_name"`
}

var rowColumns = []string{colBookID, colTitle, colAuthorID, colAuthorName}

// MapRows turns joined rows into books, one Book per row, in row order.
// Each Book gets its own Author value even when authors repeat across rows.
func MapRows(rows []Row) []Book {
	books := make([]Book, 0, len(rows))
	for _, row := range rows {
		author := Author{ID: row.AuthorID, Name: row.AuthorName}
		books = append(books, Book{ID: row.BookID, Title: row.Title, Author: author})
	}
	return books
}

// ScanRows reads every row from rows. Columns are matched by name; a missing column or an
// unscannable value (such as NULL) fails with ErrMalformedRow.
func ScanRows(rows database.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Join(ErrMalformedRow, err)
	}
	// pgx reports no columns when the query failed before its row description arrived
	if len(columns) == 0 {
		if err := rows.Err(); err != nil {
			return nil, errors.Join(ErrQueryFailed, err)
		}
	}

	index := make(map[string]int, len(columns))
	for i, name := range columns {
		index[name] = i
	}
	for _, name := range rowColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedRow, name)
		}
	}

	var (
		out  = make([]Row, 0)
		row  Row
		dest = make([]any, len(columns))
	)
	for i := range dest {
		dest[i] = new(any)
	}
	dest[index[colBookID]] = &row.BookID
	dest[index[colTitle]] = &row.Title
	dest[index[colAuthorID]] = &row.AuthorID
	dest[index[colAuthorName]] = &row.AuthorName

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Join(ErrMalformedRow, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}

	return out, nil
}
