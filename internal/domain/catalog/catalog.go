// Package catalog filters and orders the service catalog shown on the booking page.
// Every function is pure: the input slice is never modified.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/revobooking/revo-ui/internal/domain/model"
)

// SortKey selects one of the fixed catalog orderings.
type SortKey string

const (
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortName      SortKey = "name"
)

// SortKeys lists the orderings in the order they are offered.
var SortKeys = []SortKey{SortPriceAsc, SortPriceDesc, SortName}

// ParseSortKey returns the matching key, defaulting to ascending price.
func ParseSortKey(v string) SortKey {
	k := SortKey(strings.ToLower(strings.TrimSpace(v)))
	if slices.Contains(SortKeys, k) {
		return k
	}
	return SortPriceAsc
}

// EmptyState tells an empty result apart from an empty catalog.
type EmptyState int

const (
	// NotEmpty means at least one item is shown.
	NotEmpty EmptyState = iota
	// NoItems means the catalog itself is empty.
	NoItems
	// NoMatches means the catalog has items but none match the search text.
	NoMatches
)

// Query is the transient filter/sort state of the booking page.
type Query struct {
	Search string
	Sort   SortKey
}

// IsFiltered reports whether a search text is active.
func (q Query) IsFiltered() bool { return q.Search != "" }

// View is the rendered result of applying a Query to the full catalog.
type View struct {
	Items []model.Service
	Total int
	Query Query
	Empty EmptyState
}

// ShowClearFilter reports whether a "clear filter" action should be offered.
func (v View) ShowClearFilter() bool { return v.Empty == NoMatches }

// Matches reports whether s contains search in its name or description, ignoring case.
// An empty search matches everything.
func Matches(s model.Service, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(s.Name), needle) ||
		strings.Contains(strings.ToLower(s.Description), needle)
}

// Filter returns the services matching search, preserving catalog order.
func Filter(all []model.Service, search string) []model.Service {
	out := make([]model.Service, 0, len(all))
	for _, s := range all {
		if Matches(s, search) {
			out = append(out, s)
		}
	}
	return out
}

// Sort returns a copy of items ordered by key. Names compare with the collation
// rules of tag. Equal keys keep their input order.
func Sort(items []model.Service, key SortKey, tag language.Tag) []model.Service {
	out := slices.Clone(items)
	switch key {
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b model.Service) int { return b.Price.Cmp(a.Price) })
	case SortName:
		// collate.Collator keeps internal buffers; one per call keeps Sort safe for concurrent use.
		coll := collate.New(tag)
		slices.SortStableFunc(out, func(a, b model.Service) int {
			return cmp.Or(coll.CompareString(a.Name, b.Name), strings.Compare(a.Name, b.Name))
		})
	default:
		slices.SortStableFunc(out, func(a, b model.Service) int { return a.Price.Cmp(b.Price) })
	}
	return out
}

// Build filters then sorts the full catalog and classifies the empty state.
func Build(all []model.Service, q Query, tag language.Tag) View {
	q.Sort = ParseSortKey(string(q.Sort))
	items := Sort(Filter(all, q.Search), q.Sort, tag)

	v := View{Items: items, Total: len(all), Query: q}
	switch {
	case len(all) == 0:
		v.Empty = NoItems
	case len(items) == 0:
		v.Empty = NoMatches
	}
	return v
}
