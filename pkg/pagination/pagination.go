package pagination

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

// MaxLimit caps the page size a client may request.
const MaxLimit = 500

// Params holds pagination parameters extracted from a request.
// A zero Limit means no paging: return the full result set.
type Params struct {
	Limit  int
	Offset int
}

// FromContext extracts limit/offset from the query string. Requests
// without a limit get the whole collection.
func FromContext(c echo.Context) Params {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 0 {
		limit = 0
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	return Params{Limit: limit, Offset: offset}
}

// SQL returns the LIMIT/OFFSET clause, or "" when unpaged.
func (p Params) SQL() string {
	if p.Limit <= 0 {
		return ""
	}
	return fmt.Sprintf("LIMIT %d OFFSET %d", p.Limit, p.Offset)
}

// HasNext reports whether another page exists after this one.
func (p Params) HasNext(total int) bool {
	if p.Limit <= 0 {
		return false
	}
	return p.Offset+p.Limit < total
}

// NextOffset returns the offset for the next page.
func (p Params) NextOffset() int {
	return p.Offset + p.Limit
}
