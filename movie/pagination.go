package movie

import "strconv"

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100

	SortAsc  = "asc"
	SortDesc = "desc"

	DefaultSortBy = "createdAt"
)

// SortByList is the allow-list of sortable fields. Sorting by anything else
// is coerced to DefaultSortBy so clients cannot sort by arbitrary or
// unindexed columns.
var SortByList = []string{
	"title",
	"director",
	"type",
	"releaseYear",
	"createdAt",
	"updatedAt",
}

// Page holds normalized pagination and sorting options for a listing.
type Page struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string
}

// NormalizePage validates raw pagination parameters and fills in defaults.
// It never fails: out-of-range or unknown values fall back to the defaults.
func NormalizePage(page, perPage, sortBy, sortOrder string) Page {
	p := Page{
		Page:      DefaultPage,
		PerPage:   DefaultPerPage,
		SortBy:    DefaultSortBy,
		SortOrder: SortAsc,
	}

	if n, err := strconv.Atoi(page); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(perPage); err == nil && n >= 1 {
		p.PerPage = n
		if p.PerPage > MaxPerPage {
			p.PerPage = MaxPerPage
		}
	}
	if sortableField(sortBy) {
		p.SortBy = sortBy
	}
	if sortOrder == SortDesc {
		p.SortOrder = SortDesc
	}

	return p
}

// Offset returns the number of records to skip for the current page.
func (p Page) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func sortableField(field string) bool {
	for _, known := range SortByList {
		if field == known {
			return true
		}
	}
	return false
}
