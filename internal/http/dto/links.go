package dto

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
)

// CtxAPIBase is the gin context key holding the API root used in hrefs.
const CtxAPIBase = "api_base"

type Link struct {
	Href string `json:"href"`
}

// Links is the "_links" object of a hypermedia response, keyed by relation name.
type Links map[string]Link

func (l Links) Add(rel, href string) Links {
	l[rel] = Link{Href: href}
	return l
}

// Href joins path segments onto base. Segments may be strings or ids.
func Href(base string, parts ...any) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(fmt.Sprint(p))
	}
	return b.String()
}

// Resource adds self, update and delete pointing at the same href.
func Resource(href string) Links {
	return Links{
		"self":   {Href: href},
		"update": {Href: href},
		"delete": {Href: href},
	}
}

// BaseURL returns the API root used in hrefs. A configured public URL wins over
// the address the request came in on.
func BaseURL(c *gin.Context, public string) string {
	if public = strings.TrimRight(strings.TrimSpace(public), "/"); public != "" {
		return public
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if p := strings.TrimSpace(c.GetHeader("X-Forwarded-Proto")); p != "" {
		scheme = p
	}
	host := c.Request.Host
	if h := strings.TrimSpace(c.GetHeader("X-Forwarded-Host")); h != "" {
		host = h
	}
	return scheme + "://" + host + "/api"
}

type PageMeta struct {
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
}

type PagedModel[T any] struct {
	Embedded map[string][]T `json:"_embedded"`
	Links    Links          `json:"_links"`
	Page     PageMeta       `json:"page"`
}

type CollectionModel[T any] struct {
	Embedded map[string][]T `json:"_embedded"`
	Links    Links          `json:"_links"`
}

// Paged converts a page of entities into the paged envelope under rel.
func Paged[E, T any](pg paging.Page[E], rel, self string, fn func(E) T) PagedModel[T] {
	mapped := paging.Map(pg, fn)
	size := pg.Pageable.Size
	if !pg.Pageable.Paged() {
		size = len(mapped.Content)
	}
	return PagedModel[T]{
		Embedded: map[string][]T{rel: mapped.Content},
		Links:    Links{"self": {Href: self}},
		Page: PageMeta{
			Size:          size,
			TotalElements: pg.Total,
			TotalPages:    pg.TotalPages(),
			Number:        pg.Pageable.Page,
		},
	}
}

// Collection wraps an unpaged list under rel.
func Collection[E, T any](rows []E, rel, self string, fn func(E) T) CollectionModel[T] {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return CollectionModel[T]{
		Embedded: map[string][]T{rel: out},
		Links:    Links{"self": {Href: self}},
	}
}
