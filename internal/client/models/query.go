package models

import (
	"net/url"
	"strconv"
)

// QueryParams are the search, filter and pagination parameters accepted by
// list endpoints. Zero values are omitted from the query string.
type QueryParams struct {
	SizeFrom      int
	SizeTo        int
	WidthFrom     int
	WidthTo       int
	HeightFrom    int
	HeightTo      int
	Title         string
	Subtitle      string
	Keywords      []string
	Category      int64
	AuthorID      int64
	CreatedAtFrom string
	CreatedAtTo   string
	Page          int
	Limit         int
}

// Values encodes p using the API's snake_case parameter names.
func (p *QueryParams) Values() url.Values {
	v := url.Values{}
	if p == nil {
		return v
	}

	setInt := func(key string, n int64) {
		if n != 0 {
			v.Set(key, strconv.FormatInt(n, 10))
		}
	}
	setStr := func(key, s string) {
		if s != "" {
			v.Set(key, s)
		}
	}

	setInt("size_from", int64(p.SizeFrom))
	setInt("size_to", int64(p.SizeTo))
	setInt("width_from", int64(p.WidthFrom))
	setInt("width_to", int64(p.WidthTo))
	setInt("height_from", int64(p.HeightFrom))
	setInt("height_to", int64(p.HeightTo))
	setStr("title", p.Title)
	setStr("subtitle", p.Subtitle)
	for _, k := range p.Keywords {
		if k != "" {
			v.Add("keywords", k)
		}
	}
	setInt("category", p.Category)
	setInt("author_id", p.AuthorID)
	setStr("created_at_from", p.CreatedAtFrom)
	setStr("created_at_to", p.CreatedAtTo)
	setInt("page", int64(p.Page))
	setInt("limit", int64(p.Limit))

	return v
}
