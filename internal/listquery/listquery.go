// Package listquery models the state of the two listing screens (newsroom and
// marketplace) as values convertible to and from URL query strings. The same
// values drive the HTTP handlers' parsing and the client's URL bar sync, so
// both sides agree on defaults and on what a shareable link means.
//
// Serialization omits defaults, and parsing restores them, so the round trip
// parse -> Values -> parse is stable whatever the incoming URL looked like.
package listquery

import (
	"net/url"
	"strconv"
)

// Property sort orders / Ordres de tri des annonces
const (
	SortRecent    = "recent"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// StatusAll disables the availability filter / Désactive le filtre de disponibilité
const StatusAll = "tous"

// defaultStatus is the marketplace default: only available listings.
const defaultStatus = "disponible"

// parsePage normalizes a page parameter: absent, malformed or below 1 all
// mean the first page.
func parsePage(v url.Values) int {
	p, err := strconv.Atoi(v.Get("page"))
	if err != nil || p < 1 {
		return 1
	}
	return p
}

// parsePrice reads a price bound, 0 meaning unset.
func parsePrice(v url.Values, key string) int64 {
	p, err := strconv.ParseInt(v.Get(key), 10, 64)
	if err != nil || p < 0 {
		return 0
	}
	return p
}

// ArticleQuery is the state of the newsroom listing / État de la liste des articles
type ArticleQuery struct {
	Search   string
	Category string
	Page     int
}

// DefaultArticleQuery returns the initial newsroom state.
func DefaultArticleQuery() ArticleQuery {
	return ArticleQuery{Page: 1}
}

// ParseArticleQuery reads a newsroom state from URL values, restoring
// defaults for absent or invalid parameters.
func ParseArticleQuery(v url.Values) ArticleQuery {
	return ArticleQuery{
		Search:   v.Get("search"),
		Category: v.Get("category"),
		Page:     parsePage(v),
	}
}

// Values serializes the state, omitting defaults so shareable URLs stay
// minimal.
func (q ArticleQuery) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v
}

// WithSearch changes the text search and returns to the first page.
func (q ArticleQuery) WithSearch(s string) ArticleQuery {
	q.Search = s
	q.Page = 1
	return q
}

// WithCategory changes the category filter and returns to the first page.
func (q ArticleQuery) WithCategory(c string) ArticleQuery {
	q.Category = c
	q.Page = 1
	return q
}

// WithPage moves to a page, keeping search and filters.
func (q ArticleQuery) WithPage(p int) ArticleQuery {
	if p < 1 {
		p = 1
	}
	q.Page = p
	return q
}

// PropertyQuery is the state of the marketplace listing / État de la liste des annonces
type PropertyQuery struct {
	Type     string
	City     string
	Status   string // defaultStatus unless the visitor asked for StatusAll or another value
	PriceMin int64  // 0 means no lower bound
	PriceMax int64  // 0 means no upper bound
	Sort     string
	Page     int
}

// DefaultPropertyQuery returns the initial marketplace state: available
// listings, most recent first.
func DefaultPropertyQuery() PropertyQuery {
	return PropertyQuery{Status: defaultStatus, Sort: SortRecent, Page: 1}
}

// ParsePropertyQuery reads a marketplace state from URL values, restoring
// defaults for absent or invalid parameters.
func ParsePropertyQuery(v url.Values) PropertyQuery {
	q := DefaultPropertyQuery()
	q.Type = v.Get("type")
	q.City = v.Get("city")
	if s := v.Get("status"); s != "" {
		q.Status = s
	}
	q.PriceMin = parsePrice(v, "price_min")
	q.PriceMax = parsePrice(v, "price_max")
	switch s := v.Get("sort"); s {
	case SortPriceAsc, SortPriceDesc:
		q.Sort = s
	}
	q.Page = parsePage(v)
	return q
}

// Values serializes the state, omitting defaults so shareable URLs stay
// minimal.
func (q PropertyQuery) Values() url.Values {
	v := url.Values{}
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	if q.City != "" {
		v.Set("city", q.City)
	}
	if q.Status != "" && q.Status != defaultStatus {
		v.Set("status", q.Status)
	}
	if q.PriceMin > 0 {
		v.Set("price_min", strconv.FormatInt(q.PriceMin, 10))
	}
	if q.PriceMax > 0 {
		v.Set("price_max", strconv.FormatInt(q.PriceMax, 10))
	}
	if q.Sort != "" && q.Sort != SortRecent {
		v.Set("sort", q.Sort)
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v
}

// FilterAll reports whether the availability filter is disabled.
func (q PropertyQuery) FilterAll() bool {
	return q.Status == StatusAll
}

// WithType changes the transaction type and returns to the first page.
func (q PropertyQuery) WithType(t string) PropertyQuery {
	q.Type = t
	q.Page = 1
	return q
}

// WithCity changes the city filter and returns to the first page.
func (q PropertyQuery) WithCity(c string) PropertyQuery {
	q.City = c
	q.Page = 1
	return q
}

// WithStatus changes the availability filter and returns to the first page.
func (q PropertyQuery) WithStatus(s string) PropertyQuery {
	q.Status = s
	q.Page = 1
	return q
}

// WithPriceRange changes the price bounds and returns to the first page.
func (q PropertyQuery) WithPriceRange(min, max int64) PropertyQuery {
	q.PriceMin, q.PriceMax = min, max
	q.Page = 1
	return q
}

// WithSort changes the sort order and returns to the first page.
func (q PropertyQuery) WithSort(s string) PropertyQuery {
	q.Sort = s
	q.Page = 1
	return q
}

// WithPage moves to a page, keeping every filter.
func (q PropertyQuery) WithPage(p int) PropertyQuery {
	if p < 1 {
		p = 1
	}
	q.Page = p
	return q
}
