package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quotable/quotes-api/internal/core/domain"
	"github.com/quotable/quotes-api/internal/core/policy"
)

// QuoteRepository persists quotes in SQLite. Every read joins the owner's
// username.
type QuoteRepository struct {
	db *sql.DB
}

func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// List returns a page of quotes matching the predicate conjunction, ordered
// by created_at descending.
func (r *QuoteRepository) List(ctx context.Context, preds []policy.Predicate, limit, offset int) ([]domain.QuoteWithOwner, error) {
	query, args, err := buildListQuery(preds, limit, offset)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanQuoteRows(rows)
}

// FindByID retrieves a quote by primary key regardless of visibility.
func (r *QuoteRepository) FindByID(ctx context.Context, id int64) (*domain.QuoteWithOwner, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+quoteColumns+`
FROM quotes q
LEFT JOIN users u ON u.id = q.user_id
WHERE q.id = ?`, id)

	q, err := scanQuoteRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, err
	}
	return q, nil
}

// Insert stores a new quote and reads it back with the owner join.
func (r *QuoteRepository) Insert(ctx context.Context, q *domain.Quote) (*domain.QuoteWithOwner, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO quotes (text, author, is_public, is_favorite, user_id, topic_id, created_at, updated_at)
VALUES (?,?,?,?,?,?,?,?)`,
		q.Text, q.Author, q.IsPublic, q.IsFavorite, q.UserID, q.TopicID, q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	created, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("created quote not found: id=%d: %w", id, err)
	}
	return created, nil
}

// Update writes the full merged row and reads it back. The caller is
// responsible for the merge; a concurrent delete surfaces as not-found.
func (r *QuoteRepository) Update(ctx context.Context, q *domain.Quote) (*domain.QuoteWithOwner, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE quotes SET text = ?, author = ?, is_public = ?, is_favorite = ?, topic_id = ?, updated_at = ? WHERE id = ?`,
		q.Text, q.Author, q.IsPublic, q.IsFavorite, q.TopicID, q.UpdatedAt, q.ID)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrQuoteNotFound
	}

	return r.FindByID(ctx, q.ID)
}

// Delete removes the row outright. No tombstone is kept.
func (r *QuoteRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for the shared scan helper.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(s rowScanner) (*domain.QuoteWithOwner, error) {
	var q domain.QuoteWithOwner
	var author, username sql.NullString
	var userID, topicID sql.NullInt64

	if err := s.Scan(&q.ID, &q.Text, &author, &q.IsPublic, &q.IsFavorite, &userID, &topicID, &q.CreatedAt, &q.UpdatedAt, &username); err != nil {
		return nil, err
	}

	if author.Valid {
		q.Author = &author.String
	}
	if userID.Valid {
		q.UserID = &userID.Int64
	}
	if topicID.Valid {
		q.TopicID = &topicID.Int64
	}
	if username.Valid {
		q.Username = &username.String
	}
	return &q, nil
}

func scanQuoteRow(row *sql.Row) (*domain.QuoteWithOwner, error) {
	return scanQuote(row)
}

func scanQuoteRows(rows *sql.Rows) ([]domain.QuoteWithOwner, error) {
	var out []domain.QuoteWithOwner
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
