package crud

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quantumatlas/atlas-backend/internal/data/db"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
)

// Table holds the queries every catalog entity shares. Entity repos embed it and add
// their own lookups on top.
type Table[T any] struct {
	DB *gorm.DB

	// SearchColumns are matched case-insensitively by List when a search term is given.
	SearchColumns []string
	// SortColumns whitelists the sort fields accepted from clients.
	SortColumns  map[string]string
	DefaultOrder string
	// Preloads are loaded for every row returned by List.
	Preloads []string
}

func (t Table[T]) Conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = t.DB
	}
	ctx := dbc.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return transaction.WithContext(ctx)
}

func (t Table[T]) Create(dbc dbctx.Context, rows ...*T) error {
	conn := t.Conn(dbc)
	for _, row := range rows {
		if row == nil {
			continue
		}
		if err := conn.Omit(clause.Associations).Create(row).Error; err != nil {
			return db.TranslateError(err)
		}
	}
	return nil
}

func (t Table[T]) GetByIDs(dbc dbctx.Context, ids []uuid.UUID, preloads ...string) ([]*T, error) {
	out := []*T{}
	if len(ids) == 0 {
		return out, nil
	}
	q := t.Conn(dbc)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns nil without error when no row matches.
func (t Table[T]) GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*T, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := t.GetByIDs(dbc, []uuid.UUID{id}, preloads...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (t Table[T]) Exists(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}
	var n int64
	if err := t.Conn(dbc).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns one page plus the total row count. Extra scopes narrow both.
func (t Table[T]) List(dbc dbctx.Context, search string, p paging.Pageable, scopes ...func(*gorm.DB) *gorm.DB) ([]*T, int64, error) {
	conn := t.Conn(dbc)
	filters := append([]func(*gorm.DB) *gorm.DB{t.searchScope(search)}, scopes...)

	var total int64
	if err := conn.Model(new(T)).Scopes(filters...).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	out := []*T{}
	q := conn.Scopes(filters...).Scopes(p.Scope(t.SortColumns, t.DefaultOrder))
	for _, name := range t.Preloads {
		q = q.Preload(name)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (t Table[T]) searchScope(search string) func(*gorm.DB) *gorm.DB {
	term := strings.ToLower(strings.TrimSpace(search))
	return func(q *gorm.DB) *gorm.DB {
		if term == "" || len(t.SearchColumns) == 0 {
			return q
		}
		like := "%" + term + "%"
		conds := make([]string, 0, len(t.SearchColumns))
		args := make([]interface{}, 0, len(t.SearchColumns))
		for _, col := range t.SearchColumns {
			conds = append(conds, "LOWER("+col+") LIKE ?")
			args = append(args, like)
		}
		return q.Where(strings.Join(conds, " OR "), args...)
	}
}

// Save writes scalar columns only; associations are edited through ReplaceAssociation.
func (t Table[T]) Save(dbc dbctx.Context, row *T) error {
	if row == nil {
		return nil
	}
	return db.TranslateError(t.Conn(dbc).Omit(clause.Associations).Save(row).Error)
}

func (t Table[T]) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return db.TranslateError(t.Conn(dbc).Where("id IN ?", ids).Delete(new(T)).Error)
}

// DeleteWhere removes every row matching column = value.
func (t Table[T]) DeleteWhere(dbc dbctx.Context, column string, value interface{}) error {
	return db.TranslateError(t.Conn(dbc).Where(column+" = ?", value).Delete(new(T)).Error)
}

func (t Table[T]) CountWhere(dbc dbctx.Context, column string, value interface{}) (int64, error) {
	var n int64
	if err := t.Conn(dbc).Model(new(T)).Where(column+" = ?", value).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// ReplaceAssociation persists the full member set of a many2many association on owner.
func ReplaceAssociation[O, V any](conn *gorm.DB, owner *O, name string, values []*V) error {
	assoc := conn.Model(owner).Association(name)
	if assoc.Error != nil {
		return assoc.Error
	}
	if len(values) == 0 {
		return db.TranslateError(assoc.Clear())
	}
	return db.TranslateError(assoc.Replace(values))
}

// JoinedOn scopes a query to rows linked through a join table.
// For example JoinedOn("algorithm_publications", "algorithm_id", "algorithm.id", "publication_id", id).
func JoinedOn(joinTable, joinCol, targetCol, filterCol string, filterID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Joins("JOIN "+joinTable+" ON "+joinTable+"."+joinCol+" = "+targetCol).
			Where(joinTable+"."+filterCol+" = ?", filterID)
	}
}
