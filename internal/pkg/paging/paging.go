package paging

import (
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultSize = 50
	MaxSize     = 500
	// MaxPage keeps Page*Size inside a signed 32-bit offset.
	MaxPage = math.MaxInt32 / MaxSize
)

type Order struct {
	Field string
	Desc  bool
}

// Pageable is a zero-based page request. Size 0 means unpaged.
type Pageable struct {
	Page int
	Size int
	Sort []Order
}

func Unpaged() Pageable { return Pageable{} }

func Of(page, size int, sort ...Order) Pageable {
	return Pageable{Page: page, Size: size, Sort: sort}
}

func (p Pageable) Paged() bool { return p.Size > 0 }

func (p Pageable) Offset() int {
	if !p.Paged() || p.Page <= 0 {
		return 0
	}
	return p.Page * p.Size
}

// Parse reads the page/size/sort query values. Sort entries look like "name,desc".
func Parse(page, size string, sort []string) Pageable {
	p := Pageable{Page: 0, Size: DefaultSize}
	if v, err := strconv.Atoi(strings.TrimSpace(page)); err == nil && v >= 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(size)); err == nil && v > 0 {
		p.Size = v
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	for _, s := range sort {
		parts := strings.Split(s, ",")
		field := strings.TrimSpace(parts[0])
		if field == "" {
			continue
		}
		o := Order{Field: field}
		if len(parts) > 1 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc") {
			o.Desc = true
		}
		p.Sort = append(p.Sort, o)
	}
	return p
}

// Scope applies ordering and limits. Only fields present in columns are honoured;
// fallback is used when nothing valid was requested.
func (p Pageable) Scope(columns map[string]string, fallback string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		ordered := false
		for _, o := range p.Sort {
			col, ok := columns[o.Field]
			if !ok {
				continue
			}
			if o.Desc {
				db = db.Order(col + " DESC")
			} else {
				db = db.Order(col + " ASC")
			}
			ordered = true
		}
		if !ordered && fallback != "" {
			db = db.Order(fallback)
		}
		if p.Paged() {
			db = db.Offset(p.Offset()).Limit(p.Size)
		}
		return db
	}
}

type Page[T any] struct {
	Content  []T
	Total    int64
	Pageable Pageable
}

func NewPage[T any](content []T, total int64, p Pageable) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{Content: content, Total: total, Pageable: p}
}

func (pg Page[T]) TotalPages() int {
	if !pg.Pageable.Paged() {
		if pg.Total > 0 {
			return 1
		}
		return 0
	}
	size := int64(pg.Pageable.Size)
	return int((pg.Total + size - 1) / size)
}

// Map converts the content while keeping paging metadata.
func Map[T, U any](pg Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(pg.Content))
	for _, v := range pg.Content {
		out = append(out, fn(v))
	}
	return Page[U]{Content: out, Total: pg.Total, Pageable: pg.Pageable}
}
