package pagination

import (
	"math"
	"strconv"
)

// Pagination represents pagination metadata for listing endpoints
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
	Offset  int   `json:"-"`
}

// Request represents pagination parameters from a client. Limit 0 means
// "no pagination": return the full result set.
type Request struct {
	Page  int `json:"page" form:"page"`
	Limit int `json:"limit" form:"limit"`
}

// New creates pagination metadata for a result set
func New(page, limit int, total int64) *Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	pages := int(math.Ceil(float64(total) / float64(limit)))
	if pages < 1 {
		pages = 1
	}

	return &Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
		Offset:  (page - 1) * limit,
	}
}

// FromRequest parses pagination query parameters. Absent or malformed
// parameters yield a zero limit, which callers treat as "return everything".
func FromRequest(pageStr, limitStr string) *Request {
	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)

	if page < 1 {
		page = 1
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 100 {
		limit = 100
	}

	return &Request{
		Page:  page,
		Limit: limit,
	}
}

// Skip returns the number of documents to skip
func (r *Request) Skip() int {
	return (r.Page - 1) * r.Limit
}
