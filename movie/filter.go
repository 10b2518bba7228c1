package movie

import (
	"net/url"
	"strconv"
	"strings"
)

// Filter narrows a movie listing. Nil year bounds mean "no bound"; an empty
// Type means "any type". The owning user is never part of the filter: it is
// bound once by Repository.ForOwner so it cannot be overridden by input.
type Filter struct {
	MinReleaseYear *int
	MaxReleaseYear *int
	Type           string
}

// ParseFilter builds a Filter from raw query parameters. Values that do not
// parse as base-10 integers are dropped silently rather than rejected.
func ParseFilter(values url.Values) Filter {
	return Filter{
		MinReleaseYear: parsedNumber(values.Get("minReleaseYear")),
		MaxReleaseYear: parsedNumber(values.Get("maxReleaseYear")),
		Type:           strings.TrimSpace(values.Get("type")),
	}
}

func parsedNumber(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
