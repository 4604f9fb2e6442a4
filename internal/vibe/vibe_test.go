package vibe

import "testing"

const testNow = int64(1_757_000_000_000)

func TestComputeWindowBoundaries(t *testing.T) {
	ratings := []Rating{
		{Score: 5, SubmittedAt: testNow},                    // right now
		{Score: 5, SubmittedAt: testNow - WindowMillis},     // exactly 1h old, still counts
		{Score: 1, SubmittedAt: testNow - WindowMillis - 1}, // just past the window
		{Score: 1, SubmittedAt: testNow + 1},                // future (client clock skew)
		{Score: 1, SubmittedAt: 0},                          // never stamped
	}

	agg := Compute(ratings, testNow)
	if agg == nil {
		t.Fatal("expected an aggregate, got nil")
	}
	if agg.Count != 2 {
		t.Errorf("expected count 2, got %d", agg.Count)
	}
	if agg.Average != 5.0 {
		t.Errorf("expected average 5.0, got %f", agg.Average)
	}
}

func TestComputeAverage(t *testing.T) {
	ratings := []Rating{
		{Score: 5, SubmittedAt: testNow - 1000},
		{Score: 5, SubmittedAt: testNow - 2000},
		{Score: 5, SubmittedAt: testNow - 3000},
		{Score: 1, SubmittedAt: testNow - 4000},
	}

	agg := Compute(ratings, testNow)
	if agg == nil {
		t.Fatal("expected an aggregate, got nil")
	}
	if agg.Count != 4 {
		t.Errorf("expected count 4, got %d", agg.Count)
	}
	if agg.Average != 4.0 {
		t.Errorf("expected average 4.0, got %f", agg.Average)
	}
}

func TestComputeNoData(t *testing.T) {
	if agg := Compute(nil, testNow); agg != nil {
		t.Errorf("expected nil for no ratings, got %+v", agg)
	}

	stale := []Rating{
		{Score: 5, SubmittedAt: testNow - 2*WindowMillis},
	}
	if agg := Compute(stale, testNow); agg != nil {
		t.Errorf("expected nil when everything is stale, got %+v", agg)
	}
}

func TestStarsRoundsHalfUp(t *testing.T) {
	cases := []struct {
		average float64
		want    int
	}{
		{1.0, 1},
		{4.4, 4},
		{4.5, 5},
		{4.49, 4},
		{2.5, 3},
	}
	for _, c := range cases {
		got := Stars(&Aggregate{Average: c.average, Count: 10})
		if got != c.want {
			t.Errorf("Stars(%f): expected %d, got %d", c.average, c.want, got)
		}
	}

	if got := Stars(nil); got != 0 {
		t.Errorf("Stars(nil): expected 0, got %d", got)
	}
}

func TestMessageTiers(t *testing.T) {
	cases := []struct {
		name string
		agg  *Aggregate
		want string
	}{
		{"no data", nil, "Seja o primeiro a avaliar!"},
		{"few votes", &Aggregate{Average: 5.0, Count: 3}, "Poucas avaliações (3)"},
		{"low small sample", &Aggregate{Average: 2.9, Count: 4}, "Vibe baixa, pode melhorar"},
		{"mid small sample", &Aggregate{Average: 4.0, Count: 8}, "Vibe boa, mas pode melhorar"},
		{"high small sample", &Aggregate{Average: 4.5, Count: 8}, "Vibe alta, evento recomendado!"},
		{"low big sample", &Aggregate{Average: 2.0, Count: 9}, "Vibe baixa"},
		{"mid big sample", &Aggregate{Average: 4.0, Count: 20}, "Vibe moderada"},
		{"high big sample", &Aggregate{Average: 4.5, Count: 9}, "Altíssima vibe!"},
	}
	for _, c := range cases {
		if got := Message(c.agg); got != c.want {
			t.Errorf("%s: expected %q, got %q", c.name, c.want, got)
		}
	}
}

func TestHighVibeSeal(t *testing.T) {
	if HighVibe(&Aggregate{Average: 4.5, Count: 8}) {
		t.Error("seal requires at least 9 votes")
	}
	if HighVibe(&Aggregate{Average: 4.49, Count: 9}) {
		t.Error("seal requires average >= 4.5")
	}
	if !HighVibe(&Aggregate{Average: 4.5, Count: 9}) {
		t.Error("expected seal for 4.5 average with 9 votes")
	}
	if HighVibe(nil) {
		t.Error("nil aggregate never earns the seal")
	}
}
