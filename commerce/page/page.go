package page

import (
	"fmt"
	"math"
	"strings"
)

// Direction is the sort direction of a page request
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"

	DefaultPage = 0
	DefaultSize = 10
)

// Pageable describes which slice of a result set a caller wants and how it is ordered.
// Sort is a record field name as it appears on the wire; an empty Sort keeps store order.
type Pageable struct {
	Page      int
	Size      int
	Sort      string
	Direction Direction
}

// NewPageable validates the pagination parameters and returns a Pageable.
// An empty direction defaults to descending, matching the list endpoints.
func NewPageable(pageIndex, size int, sort, direction string) (Pageable, error) {
	if pageIndex < 0 {
		return Pageable{}, fmt.Errorf("page index must not be negative, got %d", pageIndex)
	}

	if size < 1 {
		return Pageable{}, fmt.Errorf("page size must be at least 1, got %d", size)
	}

	dir := Direction(strings.ToLower(strings.TrimSpace(direction)))
	switch dir {
	case "":
		dir = Desc
	case Asc, Desc:
	default:
		return Pageable{}, fmt.Errorf("invalid sort direction: %q, must be one of: asc, desc", direction)
	}

	return Pageable{Page: pageIndex, Size: size, Sort: sort, Direction: dir}, nil
}

// Offset returns the index of the first element of the requested page. An offset beyond the int range
// saturates at math.MaxInt, which is past the end of any result set.
func (p Pageable) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}

	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}

	return p.Page * p.Size
}

// Descending reports whether the page is sorted in descending order.
func (p Pageable) Descending() bool {
	return p.Direction == Desc
}

// Page is one page of a larger result set.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// New builds a page from already-sliced content and the total number of elements.
func New[T any](content []T, p Pageable, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if p.Size > 0 && total > 0 {
		size := int64(p.Size)
		pages := total / size
		if total%size != 0 {
			pages++
		}
		totalPages = int(pages)
	}

	return Page[T]{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// Slice cuts the requested page out of a complete in-memory result set.
func Slice[T any](items []T, p Pageable) Page[T] {
	total := len(items)
	start := min(p.Offset(), total)
	end := start + min(p.Size, total-start)

	content := make([]T, end-start)
	copy(content, items[start:end])

	return New(content, p, int64(total))
}

// Map converts the content of a page, keeping its pagination metadata.
func Map[T, U any](p Page[T], f func(T) U) Page[U] {
	content := make([]U, 0, len(p.Content))
	for _, item := range p.Content {
		content = append(content, f(item))
	}

	return Page[U]{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}

// SortError is returned when a result set cannot be ordered by the requested key
type SortError struct {
	Resource string
	Key      string
}

// Error implements the error interface
func (e *SortError) Error() string {
	return fmt.Sprintf("%s cannot be sorted by %q", e.Resource, e.Key)
}
