package pagination

import (
	"reflect"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Params represents pagination parameters
type Params struct {
	Page     int `json:"page"`
	Paginate int `json:"paginate"`
	Offset   int `json:"-"`
}

// DefaultPaginate is the default number of items per page
const DefaultPaginate = 10

// MaxPaginate is the maximum number of items per page
const MaxPaginate = 100

// GetParams extracts pagination parameters from request
func GetParams(c *fiber.Ctx) *Params {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	paginate, _ := strconv.Atoi(c.Query("paginate", strconv.Itoa(DefaultPaginate)))
	return Normalize(page, paginate)
}

// Normalize clamps raw page/paginate values into valid ranges
func Normalize(page, paginate int) *Params {
	if page < 1 {
		page = 1
	}
	if paginate < 1 {
		paginate = DefaultPaginate
	}
	if paginate > MaxPaginate {
		paginate = MaxPaginate
	}

	return &Params{
		Page:     page,
		Paginate: paginate,
		Offset:   (page - 1) * paginate,
	}
}

// Window represents a paginated response window
type Window struct {
	CurrentPage int         `json:"current_page"`
	Data        interface{} `json:"data"`
	LastPage    int         `json:"last_page"`
	Total       int64       `json:"total"`
	PerPage     int         `json:"per_page"`
}

// LastPage calculates the last page number for a total row count.
// An empty result set still has a last page of 1.
func LastPage(total int64, perPage int) int {
	if perPage < 1 {
		perPage = DefaultPaginate
	}

	lastPage := int(total) / perPage
	if int(total)%perPage > 0 {
		lastPage++
	}
	if lastPage < 1 {
		lastPage = 1
	}
	return lastPage
}

// NewWindow creates a paginated response window.
// Data must never be null on the wire, so nil slices are replaced.
// A typed nil slice still marshals as null, so the check goes through
// reflection rather than a plain nil comparison.
func NewWindow(data interface{}, params *Params, total int64) *Window {
	if isNilData(data) {
		data = []interface{}{}
	}

	return &Window{
		CurrentPage: params.Page,
		Data:        data,
		LastPage:    LastPage(total, params.Paginate),
		Total:       total,
		PerPage:     params.Paginate,
	}
}

func isNilData(data interface{}) bool {
	if data == nil {
		return true
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
