package analysis

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortKey selects the field opportunities are ranked by.
type SortKey string

const (
	SortByEV          SortKey = "ev"
	SortByGap         SortKey = "gap"
	SortByTeam        SortKey = "team"
	SortByBoost       SortKey = "boost"
	SortByProbability SortKey = "probability"
	SortByROI         SortKey = "roi"
)

// Direction is the sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Rankable is implemented by every opportunity type the sorter handles.
// SortValue returns the numeric value for numeric keys and the text value
// for SortByTeam. Keys a type does not carry return zero values, so they
// compare equal and keep their input order.
type Rankable interface {
	SortValue(key SortKey) (float64, string)
	Sportsbooks() []string
}

// ParseSortKey validates a sort key from configuration.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case SortByEV, SortByGap, SortByTeam, SortByBoost, SortByProbability, SortByROI:
		return key, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// ParseDirection validates a sort direction from configuration.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// Sort returns a stably sorted copy of items. Ties keep their input order,
// so sorting a sorted list again by the same key is a no-op.
func Sort[T Rankable](items []T, key SortKey, dir Direction) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		c := compareBy(a, b, key)
		if dir == Descending {
			return -c
		}
		return c
	})
	return sorted
}

func compareBy[T Rankable](a, b T, key SortKey) int {
	numA, textA := a.SortValue(key)
	numB, textB := b.SortValue(key)
	if key == SortByTeam {
		return strings.Compare(strings.ToLower(textA), strings.ToLower(textB))
	}
	return cmp.Compare(numA, numB)
}

// FilterBySportsbook keeps items whose every sportsbook appears in allowed
// (case-insensitive). An empty allow-list keeps everything.
func FilterBySportsbook[T Rankable](items []T, allowed []string) []T {
	if len(allowed) == 0 {
		return slices.Clone(items)
	}

	allow := make(map[string]bool, len(allowed))
	for _, book := range allowed {
		allow[strings.ToLower(strings.TrimSpace(book))] = true
	}

	kept := make([]T, 0, len(items))
	for _, item := range items {
		ok := true
		for _, book := range item.Sportsbooks() {
			if !allow[strings.ToLower(book)] {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, item)
		}
	}
	return kept
}

// SortValue implements Rankable.
func (m MiddleOpportunity) SortValue(key SortKey) (float64, string) {
	switch key {
	case SortByGap:
		return m.Gap, ""
	case SortByProbability:
		return m.EstimatedProbability, ""
	case SortByROI:
		return m.ROI, ""
	case SortByTeam:
		return 0, m.HomeTeam
	}
	return 0, ""
}

// Sportsbooks implements Rankable.
func (m MiddleOpportunity) Sportsbooks() []string {
	return []string{m.LegA.Provider, m.LegB.Provider}
}

// SortValue implements Rankable.
func (b BoostOpportunity) SortValue(key SortKey) (float64, string) {
	switch key {
	case SortByEV:
		return b.EstimatedEV, ""
	case SortByBoost:
		return b.BoostValuePercent, ""
	case SortByTeam:
		return 0, b.HomeTeam
	}
	return 0, ""
}

// Sportsbooks implements Rankable.
func (b BoostOpportunity) Sportsbooks() []string {
	return []string{b.Sportsbook}
}
