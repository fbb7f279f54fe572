package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// MaxPageSize caps every listing
const MaxPageSize = 100

// Default page sizes
const (
	DefaultDonationPageSize = 10
	DefaultUserPageSize     = 20
)

// Params represents pagination parameters
type Params struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// Offset is the number of rows to skip
func (p Params) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// Normalize clamps raw paging input: pageNumber floors at 1, a pageSize
// below 1 falls back to defaultSize and anything above MaxPageSize is capped.
func Normalize(pageNumber, pageSize, defaultSize int) Params {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Params{PageNumber: pageNumber, PageSize: pageSize}
}

// GetParams extracts pageNumber/pageSize from the query string.
// Unparseable values are treated as absent.
func GetParams(c *fiber.Ctx, defaultSize int) Params {
	pageNumber, _ := strconv.Atoi(c.Query("pageNumber", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", strconv.Itoa(defaultSize)))
	return Normalize(pageNumber, pageSize, defaultSize)
}

// Page is one slice of a listing plus the size of the full filtered set
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
}
