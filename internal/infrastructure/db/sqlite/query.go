package sqlite

import (
	"strings"

	"github.com/quotable/quotes-api/internal/core/domain"
	"github.com/quotable/quotes-api/internal/core/policy"
)

// maxListLimit is a resource-protection ceiling on page size, applied
// silently rather than surfaced as an error.
const maxListLimit = 100

const quoteColumns = `q.id, q.text, q.author, q.is_public, q.is_favorite, q.user_id, q.topic_id, q.created_at, q.updated_at, u.username`

// buildListQuery composes the predicate conjunction and pagination into one
// parameterized SELECT. The owner username comes in via LEFT JOIN so quotes
// with a null owner still appear. Ordering is created_at descending with no
// secondary key; rows sharing a timestamp have unspecified relative order.
func buildListQuery(preds []policy.Predicate, limit, offset int) (string, []any, error) {
	if limit <= 0 || offset < 0 {
		return "", nil, domain.ErrInvalidPagination
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + quoteColumns + `
FROM quotes q
LEFT JOIN users u ON u.id = q.user_id`)

	var args []any
	if len(preds) > 0 {
		exprs := make([]string, len(preds))
		for i, p := range preds {
			exprs[i] = p.Expr
			args = append(args, p.Args...)
		}
		b.WriteString("\nWHERE " + strings.Join(exprs, " AND "))
	}

	b.WriteString("\nORDER BY q.created_at DESC\nLIMIT ? OFFSET ?")
	args = append(args, limit, offset)

	return b.String(), args, nil
}
