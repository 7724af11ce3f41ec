package analysis

import (
	"slices"
	"testing"
)

func sampleBoosts() []BoostOpportunity {
	return []BoostOpportunity{
		{ID: "a", HomeTeam: "Texas", Sportsbook: "FanDuel", EstimatedEV: 12, BoostValuePercent: 30},
		{ID: "b", HomeTeam: "alabama", Sportsbook: "DraftKings", EstimatedEV: 20, BoostValuePercent: 30},
		{ID: "c", HomeTeam: "Oregon", Sportsbook: "BetMGM", EstimatedEV: 12, BoostValuePercent: 50},
		{ID: "d", HomeTeam: "Georgia", Sportsbook: "FanDuel", EstimatedEV: 7, BoostValuePercent: 20},
	}
}

func sampleMiddles() []MiddleOpportunity {
	return []MiddleOpportunity{
		{ID: "m1", HomeTeam: "USC", Gap: 3, EstimatedProbability: 14, ROI: 90,
			LegA: MiddleLeg{Provider: "DraftKings"}, LegB: MiddleLeg{Provider: "Bovada"}},
		{ID: "m2", HomeTeam: "LSU", Gap: 7, EstimatedProbability: 6, ROI: 95,
			LegA: MiddleLeg{Provider: "FanDuel"}, LegB: MiddleLeg{Provider: "DraftKings"}},
		{ID: "m3", HomeTeam: "Clemson", Gap: 3, EstimatedProbability: 14, ROI: 80,
			LegA: MiddleLeg{Provider: "FanDuel"}, LegB: MiddleLeg{Provider: "BetMGM"}},
	}
}

func boostIDs(items []BoostOpportunity) []string {
	ids := make([]string, len(items))
	for i, b := range items {
		ids[i] = b.ID
	}
	return ids
}

func middleIDs(items []MiddleOpportunity) []string {
	ids := make([]string, len(items))
	for i, m := range items {
		ids[i] = m.ID
	}
	return ids
}

func TestSortBoosts(t *testing.T) {
	tests := []struct {
		name     string
		key      SortKey
		dir      Direction
		expected []string
	}{
		{"EV descending, ties keep order", SortByEV, Descending, []string{"b", "a", "c", "d"}},
		{"EV ascending, ties keep order", SortByEV, Ascending, []string{"d", "a", "c", "b"}},
		{"Boost descending", SortByBoost, Descending, []string{"c", "a", "b", "d"}},
		{"Team ascending, case-insensitive", SortByTeam, Ascending, []string{"b", "d", "c", "a"}},
		{"Unsupported key keeps order", SortByGap, Descending, []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := boostIDs(Sort(sampleBoosts(), tt.key, tt.dir))
			if !slices.Equal(got, tt.expected) {
				t.Errorf("Sort(%s, %s) = %v, want %v", tt.key, tt.dir, got, tt.expected)
			}
		})
	}
}

func TestSortMiddles(t *testing.T) {
	tests := []struct {
		name     string
		key      SortKey
		dir      Direction
		expected []string
	}{
		{"Gap descending", SortByGap, Descending, []string{"m2", "m1", "m3"}},
		{"Gap ascending", SortByGap, Ascending, []string{"m1", "m3", "m2"}},
		{"Probability descending", SortByProbability, Descending, []string{"m1", "m3", "m2"}},
		{"ROI descending", SortByROI, Descending, []string{"m2", "m1", "m3"}},
		{"Team ascending", SortByTeam, Ascending, []string{"m3", "m2", "m1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := middleIDs(Sort(sampleMiddles(), tt.key, tt.dir))
			if !slices.Equal(got, tt.expected) {
				t.Errorf("Sort(%s, %s) = %v, want %v", tt.key, tt.dir, got, tt.expected)
			}
		})
	}
}

func TestSortIdempotent(t *testing.T) {
	for _, key := range []SortKey{SortByEV, SortByBoost, SortByTeam} {
		for _, dir := range []Direction{Ascending, Descending} {
			once := Sort(sampleBoosts(), key, dir)
			twice := Sort(once, key, dir)
			if !slices.Equal(boostIDs(once), boostIDs(twice)) {
				t.Errorf("Sort(%s, %s) not idempotent: %v then %v", key, dir, boostIDs(once), boostIDs(twice))
			}
		}
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	input := sampleBoosts()
	_ = Sort(input, SortByEV, Descending)
	if !slices.Equal(boostIDs(input), []string{"a", "b", "c", "d"}) {
		t.Errorf("input reordered: %v", boostIDs(input))
	}
}

func TestFilterBySportsbook(t *testing.T) {
	boosts := FilterBySportsbook(sampleBoosts(), []string{"fanduel", " BetMGM "})
	if got := boostIDs(boosts); !slices.Equal(got, []string{"a", "c", "d"}) {
		t.Errorf("boost filter = %v", got)
	}

	// Both legs of a middle must be allowed
	middles := FilterBySportsbook(sampleMiddles(), []string{"FanDuel", "DraftKings"})
	if got := middleIDs(middles); !slices.Equal(got, []string{"m2"}) {
		t.Errorf("middle filter = %v", got)
	}

	if got := FilterBySportsbook(sampleBoosts(), nil); len(got) != 4 {
		t.Errorf("empty allow-list should keep all, got %d", len(got))
	}
}

func TestParseSortKey(t *testing.T) {
	if k, err := ParseSortKey(" EV "); err != nil || k != SortByEV {
		t.Errorf("ParseSortKey(EV) = %q, %v", k, err)
	}
	if _, err := ParseSortKey("kelly"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("Descending"); err != nil || d != Descending {
		t.Errorf("ParseDirection(Descending) = %q, %v", d, err)
	}
	if d, err := ParseDirection("asc"); err != nil || d != Ascending {
		t.Errorf("ParseDirection(asc) = %q, %v", d, err)
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Error("expected error for unknown direction")
	}
}
