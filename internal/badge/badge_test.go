package badge

import "testing"

func TestSatisfied(t *testing.T) {
	c := Counters{VibesRated: 10, EventsAttended: 5, Streak: 7, Level: 9}

	cases := []struct {
		name string
		def  Definition
		want bool
	}{
		{"vibes met", Definition{Criteria: Criteria{Type: CriteriaVibesRated, Value: 10}}, true},
		{"vibes short", Definition{Criteria: Criteria{Type: CriteriaVibesRated, Value: 11}}, false},
		{"events met", Definition{Criteria: Criteria{Type: CriteriaEventsAttended, Value: 5}}, true},
		{"streak met", Definition{Criteria: Criteria{Type: CriteriaStreak, Value: 7}}, true},
		{"level short", Definition{Criteria: Criteria{Type: CriteriaLevel, Value: 10}}, false},
		{"unknown criteria", Definition{Criteria: Criteria{Type: "karma", Value: 1}}, false},
	}
	for _, tc := range cases {
		if got := tc.def.Satisfied(c); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestCatalogIsWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, def := range Catalog() {
		if def.ID == "" || def.Name == "" {
			t.Errorf("badge missing id or name: %+v", def)
		}
		if seen[def.ID] {
			t.Errorf("duplicate badge id %q", def.ID)
		}
		seen[def.ID] = true
		if def.XPReward <= 0 {
			t.Errorf("badge %q has no XP reward", def.ID)
		}
		if def.Criteria.Value <= 0 {
			t.Errorf("badge %q has a non-positive criteria value", def.ID)
		}
	}
}

func TestLookup(t *testing.T) {
	defs := Catalog()

	if d, ok := Lookup(defs, "em_chamas"); !ok || d.Name != "Em Chamas" {
		t.Errorf("expected to find em_chamas, got %+v (ok=%v)", d, ok)
	}
	if _, ok := Lookup(defs, "retired_badge"); ok {
		t.Error("unknown id must not resolve")
	}
}
