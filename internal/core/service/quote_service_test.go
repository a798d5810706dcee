package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/quotable/quotes-api/internal/core/domain"
	"github.com/quotable/quotes-api/internal/core/policy"
	"github.com/quotable/quotes-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubQuoteRepo struct {
	byID   map[int64]*domain.QuoteWithOwner
	nextID int64

	lastPreds  []policy.Predicate // predicates passed to the last List call
	lastLimit  int
	lastOffset int
	listItems  []domain.QuoteWithOwner
	failWith   error // if set, every call returns this error
}

func newStubQuoteRepo() *stubQuoteRepo {
	return &stubQuoteRepo{byID: make(map[int64]*domain.QuoteWithOwner), nextID: 1}
}

func (r *stubQuoteRepo) List(_ context.Context, preds []policy.Predicate, limit, offset int) ([]domain.QuoteWithOwner, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	// Mirror the real repository's pagination contract.
	if limit <= 0 || offset < 0 {
		return nil, domain.ErrInvalidPagination
	}
	r.lastPreds = preds
	r.lastLimit = limit
	r.lastOffset = offset
	return r.listItems, nil
}

func (r *stubQuoteRepo) FindByID(_ context.Context, id int64) (*domain.QuoteWithOwner, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	q, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrQuoteNotFound
	}
	clone := *q
	return &clone, nil
}

func (r *stubQuoteRepo) Insert(_ context.Context, q *domain.Quote) (*domain.QuoteWithOwner, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	stored := domain.QuoteWithOwner{Quote: *q}
	stored.ID = r.nextID
	r.nextID++
	r.byID[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *stubQuoteRepo) Update(_ context.Context, q *domain.Quote) (*domain.QuoteWithOwner, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	stored, ok := r.byID[q.ID]
	if !ok {
		return nil, domain.ErrQuoteNotFound
	}
	stored.Quote = *q
	clone := *stored
	return &clone, nil
}

func (r *stubQuoteRepo) Delete(_ context.Context, id int64) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.byID[id]; !ok {
		return domain.ErrQuoteNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func seedQuote(r *stubQuoteRepo, ownerID int64, isPublic bool) *domain.QuoteWithOwner {
	owner := ownerID
	now := time.Now().UTC()
	q := &domain.QuoteWithOwner{Quote: domain.Quote{
		ID:        r.nextID,
		Text:      "seeded",
		IsPublic:  isPublic,
		UserID:    &owner,
		CreatedAt: now,
		UpdatedAt: now,
	}}
	r.byID[q.ID] = q
	r.nextID++
	return q
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func i64Ptr(v int64) *int64   { return &v }

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestQuoteService_List_PassesPolicyPredicates(t *testing.T) {
	repo := newStubQuoteRepo()
	svc := NewQuoteService(repo, discardLogger)

	actor := domain.ActorFor(3, domain.RoleUser)
	_, err := svc.List(context.Background(), actor, ports.ListQuotesInput{
		Search: "wit",
		Limit:  20,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	want, _ := policy.Visibility(actor, policy.Filters{Search: "wit"})
	if len(repo.lastPreds) != len(want) {
		t.Fatalf("expected %d predicates forwarded, got %d", len(want), len(repo.lastPreds))
	}
	for i := range want {
		if repo.lastPreds[i].Expr != want[i].Expr {
			t.Fatalf("predicate %d mismatch: %q vs %q", i, repo.lastPreds[i].Expr, want[i].Expr)
		}
	}
	if repo.lastLimit != 20 || repo.lastOffset != 0 {
		t.Fatalf("pagination not forwarded: limit=%d offset=%d", repo.lastLimit, repo.lastOffset)
	}
}

func TestQuoteService_List_ResultEnvelope(t *testing.T) {
	repo := newStubQuoteRepo()
	repo.listItems = []domain.QuoteWithOwner{
		{Quote: domain.Quote{ID: 2, Text: "b"}},
		{Quote: domain.Quote{ID: 1, Text: "a"}},
	}
	svc := NewQuoteService(repo, discardLogger)

	res, err := svc.List(context.Background(), domain.Anonymous(), ports.ListQuotesInput{Limit: 20, Offset: 40})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Count != 2 || res.Limit != 20 || res.Offset != 40 {
		t.Fatalf("unexpected envelope: %+v", res)
	}
}

func TestQuoteService_List_InvalidPagination(t *testing.T) {
	repo := newStubQuoteRepo()
	svc := NewQuoteService(repo, discardLogger)

	_, err := svc.List(context.Background(), domain.Anonymous(), ports.ListQuotesInput{Limit: 0})
	if !errors.Is(err, domain.ErrInvalidPagination) {
		t.Fatalf("expected ErrInvalidPagination, got %v", err)
	}

	_, err = svc.List(context.Background(), domain.Anonymous(), ports.ListQuotesInput{Limit: 10, Offset: -1})
	if !errors.Is(err, domain.ErrInvalidPagination) {
		t.Fatalf("expected ErrInvalidPagination, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// GetByID
// ---------------------------------------------------------------------------

func TestQuoteService_Get_PublicVisibleToAnyone(t *testing.T) {
	repo := newStubQuoteRepo()
	q := seedQuote(repo, 9, true)
	svc := NewQuoteService(repo, discardLogger)

	got, err := svc.GetByID(context.Background(), domain.Anonymous(), q.ID)
	if err != nil {
		t.Fatalf("anonymous must read public quotes: %v", err)
	}
	if got.ID != q.ID {
		t.Fatalf("wrong quote: %d", got.ID)
	}
}

func TestQuoteService_Get_PrivateForbiddenForAnonymous(t *testing.T) {
	repo := newStubQuoteRepo()
	q := seedQuote(repo, 9, false)
	svc := NewQuoteService(repo, discardLogger)

	_, err := svc.GetByID(context.Background(), domain.Anonymous(), q.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestQuoteService_Get_PrivateVisibleToOwnerAndAdmin(t *testing.T) {
	repo := newStubQuoteRepo()
	q := seedQuote(repo, 9, false)
	svc := NewQuoteService(repo, discardLogger)

	if _, err := svc.GetByID(context.Background(), domain.ActorFor(9, domain.RoleUser), q.ID); err != nil {
		t.Fatalf("owner must read own private quote: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), domain.ActorFor(1, domain.RoleAdmin), q.ID); err != nil {
		t.Fatalf("admin must read any private quote: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), domain.ActorFor(5, domain.RoleUser), q.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("other users must be forbidden, got %v", err)
	}
}

func TestQuoteService_Get_MissingIsNotFound(t *testing.T) {
	repo := newStubQuoteRepo()
	svc := NewQuoteService(repo, discardLogger)

	// Existence is checked before visibility: missing is 404, never 403.
	_, err := svc.GetByID(context.Background(), domain.Anonymous(), 777)
	if !errors.Is(err, domain.ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestQuoteService_Create_Defaults(t *testing.T) {
	repo := newStubQuoteRepo()
	svc := NewQuoteService(repo, discardLogger)

	created, err := svc.Create(context.Background(), domain.ActorFor(3, domain.RoleUser), ports.CreateQuoteInput{
		Text: "  be yourself  ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Text != "be yourself" {
		t.Fatalf("text must be trimmed: %q", created.Text)
	}
	if !created.IsPublic {
		t.Fatalf("visibility must default to public")
	}
	if created.UserID == nil || *created.UserID != 3 {
		t.Fatalf("owner must be the actor: %v", created.UserID)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("timestamps must be set")
	}
}

func TestQuoteService_Create_EmptyTextRejected(t *testing.T) {
	repo := newStubQuoteRepo()
	svc := NewQuoteService(repo, discardLogger)

	_, err := svc.Create(context.Background(), domain.ActorFor(3, domain.RoleUser), ports.CreateQuoteInput{Text: "   "})
	if !errors.Is(err, domain.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}

func TestQuoteService_Create_PrivateAndTopic(t *testing.T) {
	repo := newStubQuoteRepo()
	svc := NewQuoteService(repo, discardLogger)

	created, err := svc.Create(context.Background(), domain.ActorFor(3, domain.RoleUser), ports.CreateQuoteInput{
		Text:     "quiet",
		Author:   strPtr(" Oscar Wilde "),
		IsPublic: boolPtr(false),
		TopicID:  i64Ptr(4),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.IsPublic {
		t.Fatalf("explicit is_public=false must stick")
	}
	if created.Author == nil || *created.Author != "Oscar Wilde" {
		t.Fatalf("author must be trimmed: %v", created.Author)
	}
	if created.TopicID == nil || *created.TopicID != 4 {
		t.Fatalf("topic must be stored: %v", created.TopicID)
	}
}

func TestQuoteService_Create_AnonymousOwnerIsNull(t *testing.T) {
	repo := newStubQuoteRepo()
	svc := NewQuoteService(repo, discardLogger)

	created, err := svc.Create(context.Background(), domain.Anonymous(), ports.CreateQuoteInput{Text: "hi"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.UserID != nil {
		t.Fatalf("anonymous quotes must have a null owner, got %v", created.UserID)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestQuoteService_Update_PartialMerge(t *testing.T) {
	repo := newStubQuoteRepo()
	owner := int64(3)
	topic := int64(8)
	author := "Twain"
	before := time.Now().UTC().Add(-time.Hour)
	repo.byID[1] = &domain.QuoteWithOwner{Quote: domain.Quote{
		ID:        1,
		Text:      "original",
		Author:    &author,
		IsPublic:  true,
		UserID:    &owner,
		TopicID:   &topic,
		CreatedAt: before,
		UpdatedAt: before,
	}}
	repo.nextID = 2
	svc := NewQuoteService(repo, discardLogger)

	updated, err := svc.Update(context.Background(), domain.ActorFor(3, domain.RoleUser), 1, ports.UpdateQuoteInput{
		IsFavorite: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	// Only is_favorite and updated_at change; everything else is preserved.
	if !updated.IsFavorite {
		t.Fatalf("is_favorite must be set")
	}
	if updated.Text != "original" || updated.Author == nil || *updated.Author != "Twain" {
		t.Fatalf("untouched fields must keep stored values: %+v", updated.Quote)
	}
	if !updated.IsPublic || updated.TopicID == nil || *updated.TopicID != 8 {
		t.Fatalf("untouched fields must keep stored values: %+v", updated.Quote)
	}
	if !updated.UpdatedAt.After(before) {
		t.Fatalf("updated_at must be refreshed")
	}
	if !updated.CreatedAt.Equal(before) {
		t.Fatalf("created_at must not change")
	}
}

func TestQuoteService_Update_NotFoundBeforeForbidden(t *testing.T) {
	repo := newStubQuoteRepo()
	svc := NewQuoteService(repo, discardLogger)

	// A missing id yields not-found even for an anonymous caller.
	_, err := svc.Update(context.Background(), domain.Anonymous(), 42, ports.UpdateQuoteInput{})
	if !errors.Is(err, domain.ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}
}

func TestQuoteService_Update_NonOwnerForbidden(t *testing.T) {
	repo := newStubQuoteRepo()
	q := seedQuote(repo, 9, true)
	svc := NewQuoteService(repo, discardLogger)

	_, err := svc.Update(context.Background(), domain.ActorFor(3, domain.RoleUser), q.ID, ports.UpdateQuoteInput{
		Text: strPtr("hijacked"),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Row unchanged.
	stored := repo.byID[q.ID]
	if stored.Text != "seeded" {
		t.Fatalf("row must be untouched on denial: %q", stored.Text)
	}
}

func TestQuoteService_Update_AdminMayEditAnyQuote(t *testing.T) {
	repo := newStubQuoteRepo()
	q := seedQuote(repo, 9, false)
	svc := NewQuoteService(repo, discardLogger)

	updated, err := svc.Update(context.Background(), domain.ActorFor(1, domain.RoleAdmin), q.ID, ports.UpdateQuoteInput{
		Text: strPtr("edited"),
	})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Text != "edited" {
		t.Fatalf("text not updated: %q", updated.Text)
	}
}

func TestQuoteService_Update_BlankTextRejected(t *testing.T) {
	repo := newStubQuoteRepo()
	q := seedQuote(repo, 3, true)
	svc := NewQuoteService(repo, discardLogger)

	_, err := svc.Update(context.Background(), domain.ActorFor(3, domain.RoleUser), q.ID, ports.UpdateQuoteInput{
		Text: strPtr("   "),
	})
	if !errors.Is(err, domain.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestQuoteService_Delete_Owner(t *testing.T) {
	repo := newStubQuoteRepo()
	q := seedQuote(repo, 3, true)
	svc := NewQuoteService(repo, discardLogger)

	if err := svc.Delete(context.Background(), domain.ActorFor(3, domain.RoleUser), q.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Subsequent fetch is a 404.
	_, err := svc.GetByID(context.Background(), domain.ActorFor(3, domain.RoleUser), q.ID)
	if !errors.Is(err, domain.ErrQuoteNotFound) {
		t.Fatalf("deleted quote must be gone, got %v", err)
	}
}

func TestQuoteService_Delete_NonOwnerForbidden(t *testing.T) {
	repo := newStubQuoteRepo()
	q := seedQuote(repo, 9, false)
	svc := NewQuoteService(repo, discardLogger)

	if err := svc.Delete(context.Background(), domain.ActorFor(3, domain.RoleUser), q.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, ok := repo.byID[q.ID]; !ok {
		t.Fatalf("row must survive a denied delete")
	}
}

func TestQuoteService_Delete_StoreErrorSurfaced(t *testing.T) {
	repo := newStubQuoteRepo()
	q := seedQuote(repo, 3, true)
	svc := NewQuoteService(repo, discardLogger)

	storeErr := errors.New("disk on fire")
	repo.failWith = storeErr

	err := svc.Delete(context.Background(), domain.ActorFor(3, domain.RoleUser), q.ID)
	if !errors.Is(err, storeErr) {
		t.Fatalf("store failures must surface, got %v", err)
	}
}
