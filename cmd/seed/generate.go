package main

import (
	"fmt"
	"math/rand/v2"
)

type seedAuthor struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type seedBook struct {
	ID       int64  `db:"id"`
	Title    string `db:"title"`
	AuthorID int64  `db:"author_id"`
}

var (
	firstNames = []string{
		"Frank", "Ursula", "Flann", "Octavia", "Italo", "Doris", "Stanislaw", "Toni",
		"Jorge", "Iain", "Mary", "Kazuo", "Ann", "Gene", "Olga", "Ted",
	}
	lastNames = []string{
		"Herbert", "Le Guin", "O'Brien", "Butler", "Calvino", "Lessing", "Lem", "Morrison",
		"Borges", "Banks", "Shelley", "Ishiguro", "Leckie", "Wolfe", "Tokarczuk", "Chiang",
	}
	titleWords = []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	titleShapes = []string{"The %s of %s", "%s and %s", "A %s Beyond %s", "%s: %s 100%%", "%s_%s"}
)

// generate builds a deterministic library for seed. Ids start at 1; every book points at a generated author.
func generate(seed uint64, authorCount, bookCount int) ([]seedAuthor, []seedBook) {
	r := rand.New(rand.NewPCG(seed, seed))

	authors := make([]seedAuthor, 0, authorCount)
	for i := range authorCount {
		authors = append(authors, seedAuthor{
			ID:   int64(i + 1),
			Name: fmt.Sprintf("%s %s", pick(r, firstNames), pick(r, lastNames)),
		})
	}

	books := make([]seedBook, 0, bookCount)
	for i := range bookCount {
		books = append(books, seedBook{
			ID:       int64(i + 1),
			Title:    fmt.Sprintf(pick(r, titleShapes), pick(r, titleWords), pick(r, titleWords)),
			AuthorID: int64(r.IntN(authorCount) + 1),
		})
	}
	return authors, books
}

func pick(r *rand.Rand, words []string) string {
	return words[r.IntN(len(words))]
}
