package sqlite

import (
	"context"
	"iter"

	"github.com/bookscoutapp/bookscout-server/internal/domain"
)

// StreamBooksWithOwners returns an iterator over every book joined with
// its owner, newest first, for CSV export. Rows are yielded one at a
// time so exports never hold the whole registry in memory.
func (s *Store) StreamBooksWithOwners(ctx context.Context) iter.Seq2[*domain.AdminBook, error] {
	return func(yield func(*domain.AdminBook, error) bool) {
		rows, err := s.db.QueryContext(ctx, `SELECT `+adminBookColumns+`
			FROM books
			LEFT JOIN users ON books.user_id = users.id
			ORDER BY books.created_at DESC`)
		if err != nil {
			yield(nil, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			if ctx.Err() != nil {
				yield(nil, ctx.Err())
				return
			}

			ab, err := scanAdminBook(rows)
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}

			if !yield(ab, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, err)
		}
	}
}
