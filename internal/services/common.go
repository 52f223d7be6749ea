package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	apperrors "github.com/quantumatlas/atlas-backend/internal/pkg/errors"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
)

func notFound(kind string, id interface{}) error {
	return fmt.Errorf("%s %v: %w", kind, id, apperrors.ErrNotFound)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), apperrors.ErrValidation)
}

func inUse(kind string, id uuid.UUID, n int64, by string) error {
	return fmt.Errorf("%s %s is still referenced by %d %s: %w", kind, id, n, by, apperrors.ErrConsistency)
}

func readCtx(ctx context.Context) dbctx.Context { return dbctx.Context{Ctx: ctx} }

// found turns the repos' nil-for-missing convention into ErrNotFound:
// found(repo.GetByID(dbc, id))("algorithm", id).
func found[T any](row *T, err error) func(kind string, id interface{}) (*T, error) {
	return func(kind string, id interface{}) (*T, error) {
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, notFound(kind, id)
		}
		return row, nil
	}
}

func page[T any](rows []*T, total int64, err error, p paging.Pageable) (paging.Page[*T], error) {
	if err != nil {
		return paging.Page[*T]{}, err
	}
	return paging.NewPage(rows, total, p), nil
}

// withRef returns list with item appended unless an element with the same id is present.
func withRef[T any](list []*T, item *T, idOf func(*T) uuid.UUID) ([]*T, bool) {
	want := idOf(item)
	for _, existing := range list {
		if idOf(existing) == want {
			return list, false
		}
	}
	return append(list, item), true
}

// withoutRef drops the element with the given id. The bool reports whether anything changed.
func withoutRef[T any](list []*T, id uuid.UUID, idOf func(*T) uuid.UUID) ([]*T, bool) {
	out := make([]*T, 0, len(list))
	changed := false
	for _, existing := range list {
		if idOf(existing) == id {
			changed = true
			continue
		}
		out = append(out, existing)
	}
	return out, changed
}

func containsRef[T any](list []*T, id uuid.UUID, idOf func(*T) uuid.UUID) *T {
	for _, existing := range list {
		if idOf(existing) == id {
			return existing
		}
	}
	return nil
}

func publicationIDOf(p *types.Publication) uuid.UUID           { return p.ID }
func problemTypeIDOf(p *types.ProblemType) uuid.UUID           { return p.ID }
func applicationAreaIDOf(a *types.ApplicationArea) uuid.UUID   { return a.ID }
func tagIDOf(t *types.Tag) uuid.UUID                           { return t.ID }
func softwarePlatformIDOf(p *types.SoftwarePlatform) uuid.UUID { return p.ID }
func computeResourceIDOf(c *types.ComputeResource) uuid.UUID   { return c.ID }
func cloudServiceIDOf(c *types.CloudService) uuid.UUID         { return c.ID }

func duplicate(kind, name string) error {
	return fmt.Errorf("%s %q already exists: %w", kind, name, apperrors.ErrConsistency)
}
