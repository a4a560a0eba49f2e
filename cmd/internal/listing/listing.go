// Package listing provides shared list-shaping options for store queries:
// ordering, limit/offset paging, and created-since filtering.
//
// Stores translate Options into the tail of their SQL statements via Suffix,
// which only ever interpolates whitelisted column names and integers, so
// options can never inject identifiers into a query.
package listing

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultLimit is applied when no limit is requested.
const DefaultLimit = 20

// ErrOrderBy is returned when OrderBy names a column the caller did not
// declare sortable.
var ErrOrderBy = errors.New("listing: order_by column not sortable")

// Options shape a list query.
type Options struct {
	// All disables paging; Limit and Offset are ignored.
	All bool

	Limit  int
	Offset int

	// OrderBy names a column; it must be one of the sortable columns the
	// store passes to Suffix.
	OrderBy    string
	Descending bool

	// Since keeps only records created strictly after this instant.
	// Stores apply it as a WHERE clause; Suffix does not render it.
	Since *time.Time
}

// Default returns options with the default page size.
func Default() Options {
	return Options{Limit: DefaultLimit}
}

// Sortable reports whether column is in the sortable set.
func (o Options) Sortable(sortable ...string) bool {
	for _, c := range sortable {
		if c == o.OrderBy {
			return true
		}
	}
	return false
}

// Suffix renders the ORDER BY / LIMIT / OFFSET tail of a query.
func (o Options) Suffix(sortable ...string) (string, error) {
	var b strings.Builder

	if o.OrderBy != "" {
		if !o.Sortable(sortable...) {
			return "", ErrOrderBy
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(o.OrderBy)
		if o.Descending {
			b.WriteString(" DESC")
		}
	}

	if !o.All {
		limit := o.Limit
		if limit <= 0 {
			limit = DefaultLimit
		}
		fmt.Fprintf(&b, " LIMIT %d", limit)
		if o.Offset > 0 {
			fmt.Fprintf(&b, " OFFSET %d", o.Offset)
		}
	}

	return b.String(), nil
}
