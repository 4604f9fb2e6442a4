package vibe

import (
	"fmt"
	"math"
)

// WindowMillis is how far back a rating still counts toward the live average.
const WindowMillis = 60 * 60 * 1000

// Rating is one crowd-sentiment vote for an event. There is at most one
// per (event, user) pair; resubmitting overwrites the previous vote.
type Rating struct {
	Score       int   `json:"nota"`
	SubmittedAt int64 `json:"timestamp"`
}

// Aggregate is the rolling 1-hour average for an event. It is derived on
// every read and never stored.
type Aggregate struct {
	Average float64 `json:"media"`
	Count   int     `json:"count"`
}

// Compute filters ratings to the trailing 1-hour window relative to
// nowMillis and averages the survivors. Ratings without a timestamp are
// skipped, as are ratings stamped in the future (clock skew from client
// devices). Returns nil when nothing survives the filter, so callers can
// tell "no data" apart from an average of zero.
func Compute(ratings []Rating, nowMillis int64) *Aggregate {
	sum := 0
	count := 0

	for _, r := range ratings {
		if r.SubmittedAt == 0 {
			continue
		}
		diff := nowMillis - r.SubmittedAt
		if diff < 0 || diff > WindowMillis {
			continue
		}
		sum += r.Score
		count++
	}

	if count == 0 {
		return nil
	}

	return &Aggregate{
		Average: float64(sum) / float64(count),
		Count:   count,
	}
}

// Stars maps an aggregate to the 1-5 star display, round-half-up.
// A nil aggregate renders as zero stars.
func Stars(agg *Aggregate) int {
	if agg == nil {
		return 0
	}
	return int(math.Floor(agg.Average + 0.5))
}

// Message returns the qualitative label shown on event cards.
func Message(agg *Aggregate) string {
	if agg == nil || agg.Count == 0 {
		return "Seja o primeiro a avaliar!"
	}
	if agg.Count <= 3 {
		return fmt.Sprintf("Poucas avaliações (%d)", agg.Count)
	}
	if agg.Count < 9 {
		if agg.Average < 3 {
			return "Vibe baixa, pode melhorar"
		}
		if agg.Average < 4.5 {
			return "Vibe boa, mas pode melhorar"
		}
		return "Vibe alta, evento recomendado!"
	}
	if agg.Average < 3 {
		return "Vibe baixa"
	}
	if agg.Average < 4.5 {
		return "Vibe moderada"
	}
	return "Altíssima vibe!"
}

// HighVibe reports whether the event earns the "Alta Vibe" seal.
func HighVibe(agg *Aggregate) bool {
	return agg != nil && agg.Count >= 9 && agg.Average >= 4.5
}
