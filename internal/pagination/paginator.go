// Package pagination implements windowed offset pagination for inline
// keyboards: fixed-size pages over an in-memory list, with prev/next
// controls encoded as "<prefix>-<page>" callback data.
package pagination

import (
	"fmt"
	"strconv"
	"strings"
)

// Control is one navigation button of a paginated keyboard.
type Control struct {
	Label string
	Data  string
}

// Paginator slices lists into fixed-size pages. Pages are 1-indexed.
type Paginator struct {
	pageSize int
}

// New returns a Paginator with the given page size. A page size below
// one is a configuration error.
func New(pageSize int) (*Paginator, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("pagination: page size must be positive, got %d", pageSize)
	}
	return &Paginator{pageSize: pageSize}, nil
}

// PageSize returns the configured page size.
func (p *Paginator) PageSize() int {
	return p.pageSize
}

// Page returns the window of items for the given 1-indexed page.
// Out-of-range pages yield an empty slice.
func Page[T any](items []T, pageSize, page int) []T {
	if pageSize < 1 || page < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Controls builds the navigation row for a list of total items viewed
// at the current page: a prev control when a previous page exists, a
// next control when items remain past this page, and always a back
// control returning to the parent menu.
func (p *Paginator) Controls(total, current int, pagePrefix, backAction string) []Control {
	var row []Control
	if current > 1 {
		row = append(row, Control{Label: "«", Data: PageAction(pagePrefix, current-1)})
	}
	if current*p.pageSize < total {
		row = append(row, Control{Label: "»", Data: PageAction(pagePrefix, current+1)})
	}
	row = append(row, Control{Label: "Назад", Data: backAction})
	return row
}

// PageAction composes callback data addressing a page of a list.
func PageAction(prefix string, page int) string {
	return prefix + "-" + strconv.Itoa(page)
}

// ParsePageAction recovers the page number from callback data produced
// by PageAction. The prefix itself may contain dashes; only the last
// segment is the page.
func ParsePageAction(data string) (int, error) {
	i := strings.LastIndex(data, "-")
	if i < 0 || i == len(data)-1 {
		return 0, fmt.Errorf("pagination: no page number in %q", data)
	}
	page, err := strconv.Atoi(data[i+1:])
	if err != nil {
		return 0, fmt.Errorf("pagination: bad page number in %q: %w", data, err)
	}
	if page < 1 {
		return 0, fmt.Errorf("pagination: page must be positive, got %d", page)
	}
	return page, nil
}
