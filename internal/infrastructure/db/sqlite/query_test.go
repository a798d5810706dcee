package sqlite

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/quotable/quotes-api/internal/core/domain"
	"github.com/quotable/quotes-api/internal/core/policy"
)

func TestBuildListQuery_NoPredicates(t *testing.T) {
	query, args, err := buildListQuery(nil, 20, 0)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if strings.Contains(query, "WHERE") {
		t.Fatalf("no predicates must mean no WHERE clause:\n%s", query)
	}
	if !strings.Contains(query, "LEFT JOIN users u ON u.id = q.user_id") {
		t.Fatalf("owner join missing:\n%s", query)
	}
	if !strings.Contains(query, "ORDER BY q.created_at DESC") {
		t.Fatalf("ordering missing:\n%s", query)
	}
	if !reflect.DeepEqual(args, []any{20, 0}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildListQuery_JoinsPredicatesWithAND(t *testing.T) {
	preds := []policy.Predicate{
		{Expr: "q.is_public = 1"},
		{Expr: "q.topic_id = ?", Args: []any{int64(5)}},
	}
	query, args, err := buildListQuery(preds, 10, 30)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(query, "WHERE q.is_public = 1 AND q.topic_id = ?") {
		t.Fatalf("predicates not conjoined:\n%s", query)
	}
	// Predicate args come first, pagination last.
	if !reflect.DeepEqual(args, []any{int64(5), 10, 30}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildListQuery_ClampsLimitSilently(t *testing.T) {
	_, args, err := buildListQuery(nil, 5000, 0)
	if err != nil {
		t.Fatalf("oversized limit must not error: %v", err)
	}
	if !reflect.DeepEqual(args, []any{maxListLimit, 0}) {
		t.Fatalf("limit must be clamped to %d: %v", maxListLimit, args)
	}
}

func TestBuildListQuery_RejectsInvalidPagination(t *testing.T) {
	for _, tc := range []struct{ limit, offset int }{
		{0, 0},
		{-5, 0},
		{10, -1},
	} {
		_, _, err := buildListQuery(nil, tc.limit, tc.offset)
		if !errors.Is(err, domain.ErrInvalidPagination) {
			t.Fatalf("limit=%d offset=%d: expected ErrInvalidPagination, got %v", tc.limit, tc.offset, err)
		}
	}
}

func TestBuildListQuery_NeverInterpolatesUserInput(t *testing.T) {
	search := "'; DROP TABLE quotes; --"
	preds, _ := policy.Visibility(domain.Anonymous(), policy.Filters{Search: search})

	query, args, err := buildListQuery(preds, 20, 0)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if strings.Contains(query, "DROP TABLE") {
		t.Fatalf("user input leaked into query text:\n%s", query)
	}
	found := false
	for _, a := range args {
		if s, ok := a.(string); ok && strings.Contains(s, "drop table") {
			found = true
		}
	}
	if !found {
		t.Fatalf("search term must travel as a parameter: %v", args)
	}
}
