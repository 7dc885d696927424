// Package query implements the in-memory search, sort and paginate routine
// shared by every list endpoint.
package query

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrFieldNotFound = errors.New("field not found")
	ErrInvalidQuery  = errors.New("invalid query")
)

const (
	DefaultPageSize   = 10
	DefaultPageNumber = 1
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Field exposes one named attribute of T to the engine.
type Field[T any] struct {
	Value   func(T) string
	Numeric bool
}

// Fields is the set of searchable and sortable attributes of T, keyed by name.
type Fields[T any] map[string]Field[T]

// Directive is the parsed form of the search/sort/page query parameters.
// Empty SearchField disables filtering; empty SortField keeps input order.
type Directive struct {
	SearchField string
	SearchTerm  string
	SortField   string
	Direction   Direction
	PageSize    int
	PageNumber  int
}

// Page is the list envelope returned by every list endpoint.
type Page[T any] struct {
	PageNumber      int  `json:"page_number"`
	PageSize        int  `json:"page_size"`
	Count           int  `json:"count"`
	TotalPages      int  `json:"total_pages"`
	HasPreviousPage bool `json:"has_previous_page"`
	HasNextPage     bool `json:"has_next_page"`
	Data            []T  `json:"data"`
}

// ParseDirective builds a Directive from raw query values, e.g.
// search="name:abc", sort="price:asc", pageSize="10", pageNumber="1".
func ParseDirective(search, sort, pageSize, pageNumber string) (Directive, error) {
	d := Directive{
		Direction:  Desc,
		PageSize:   DefaultPageSize,
		PageNumber: DefaultPageNumber,
	}

	if s := strings.TrimSpace(search); s != "" {
		field, term, ok := strings.Cut(s, ":")
		if !ok || strings.TrimSpace(field) == "" {
			return d, fmt.Errorf("%w: search must be field:term", ErrInvalidQuery)
		}
		d.SearchField = strings.TrimSpace(field)
		d.SearchTerm = term
	}

	if s := strings.TrimSpace(sort); s != "" {
		field, dir, ok := strings.Cut(s, ":")
		if !ok || strings.TrimSpace(field) == "" {
			return d, fmt.Errorf("%w: sort must be field:direction", ErrInvalidQuery)
		}
		d.SortField = strings.TrimSpace(field)
		d.Direction = ParseDirection(dir)
	}

	if s := strings.TrimSpace(pageSize); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return d, fmt.Errorf("%w: page_size must be an integer", ErrInvalidQuery)
		}
		d.PageSize = n
	}
	if s := strings.TrimSpace(pageNumber); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return d, fmt.Errorf("%w: page_number must be an integer", ErrInvalidQuery)
		}
		d.PageNumber = n
	}

	return d, d.Validate()
}

// ParseDirection maps "asc" to Asc; anything else descends.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Asc)) {
		return Asc
	}
	return Desc
}

func (d Directive) Validate() error {
	if d.PageSize <= 0 {
		return fmt.Errorf("%w: page_size must be positive", ErrInvalidQuery)
	}
	if d.PageNumber <= 0 {
		return fmt.Errorf("%w: page_number must be positive", ErrInvalidQuery)
	}
	return nil
}

// Paginate filters, stably sorts and slices records according to d.
// The input slice is not modified.
func Paginate[T any](records []T, fields Fields[T], d Directive) (Page[T], error) {
	if err := d.Validate(); err != nil {
		return Page[T]{}, err
	}

	filtered, err := Filter(records, fields, d.SearchField, d.SearchTerm)
	if err != nil {
		return Page[T]{}, err
	}
	if err := Sort(filtered, fields, d.SortField, d.Direction); err != nil {
		return Page[T]{}, err
	}

	count := len(filtered)
	totalPages := int(math.Ceil(float64(count) / float64(d.PageSize)))

	data := []T{}
	// compare before multiplying so huge directives cannot overflow
	if d.PageNumber-1 < totalPages {
		start := (d.PageNumber - 1) * d.PageSize
		end := start + min(d.PageSize, count-start)
		data = append(data, filtered[start:end]...)
	}

	return Page[T]{
		PageNumber:      d.PageNumber,
		PageSize:        d.PageSize,
		Count:           count,
		TotalPages:      totalPages,
		HasPreviousPage: d.PageNumber > 1,
		HasNextPage:     d.PageNumber < totalPages,
		Data:            data,
	}, nil
}

// Filter returns a new slice with the records whose field contains term,
// ignoring case. An empty field name returns a copy of all records.
func Filter[T any](records []T, fields Fields[T], field, term string) ([]T, error) {
	out := make([]T, 0, len(records))
	if field == "" {
		return append(out, records...), nil
	}
	f, ok := fields[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, field)
	}
	needle := strings.ToLower(term)
	for _, r := range records {
		if strings.Contains(strings.ToLower(f.Value(r)), needle) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Sort orders records in place by field. Equal keys keep their relative order.
func Sort[T any](records []T, fields Fields[T], field string, dir Direction) error {
	if field == "" {
		return nil
	}
	f, ok := fields[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, field)
	}
	slices.SortStableFunc(records, func(a, b T) int {
		c := compare(f.Value(a), f.Value(b), f.Numeric)
		if dir == Asc {
			return c
		}
		return -c
	})
	return nil
}

// compare orders numeric values numerically when both parse; unparsable
// values sort after numbers and compare as strings among themselves.
func compare(a, b string, numeric bool) int {
	if !numeric {
		return strings.Compare(a, b)
	}
	x, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	y, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	switch {
	case errA == nil && errB == nil:
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}
