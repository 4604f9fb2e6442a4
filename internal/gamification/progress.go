package gamification

import "time"

// DateLayout is the calendar-date key format used for streaks and daily
// challenges ("2024-01-31").
const DateLayout = "2006-01-02"

// ChallengeDay is the per-date progress record for the daily challenge.
type ChallengeDay struct {
	VibesRatedToday int  `json:"vibesAvaliadasHoje"`
	Completed       bool `json:"completed"`
}

// Unlock is the metadata recorded when a badge is earned.
type Unlock struct {
	UnlockedAt int64 `json:"unlockedAt"`
}

// Progress is one user's persistent gamification record. The engine treats
// it as a value: transitions take a snapshot and return a new one, and the
// caller persists the whole record back.
type Progress struct {
	Level            int                     `json:"level"`
	XP               int                     `json:"xp"`
	XPToNext         int                     `json:"xpToNext"`
	VibesRated       int                     `json:"vibesAvaliadas"`
	EventsAttended   int                     `json:"eventosParticipados"`
	Badges           []string                `json:"badges"`
	Streak           int                     `json:"streak"`
	LastActivityDate string                  `json:"lastActivityDate,omitempty"`
	DailyChallenges  map[string]ChallengeDay `json:"dailyChallenges"`
	Achievements     map[string]Unlock       `json:"achievements"`
}

// NewProgress returns the record created the first time a user's progress
// is requested and none exists yet.
func NewProgress() Progress {
	return Progress{
		Level:           1,
		XP:              0,
		XPToNext:        100,
		Streak:          0,
		Badges:          []string{},
		DailyChallenges: map[string]ChallengeDay{},
		Achievements:    map[string]Unlock{},
	}
}

// HasBadge reports whether the badge id is already unlocked.
func (p Progress) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// clone deep-copies the record so a transition never aliases the caller's
// maps and slices.
func (p Progress) clone() Progress {
	out := p
	out.Badges = append([]string{}, p.Badges...)
	out.DailyChallenges = make(map[string]ChallengeDay, len(p.DailyChallenges))
	for k, v := range p.DailyChallenges {
		out.DailyChallenges[k] = v
	}
	out.Achievements = make(map[string]Unlock, len(p.Achievements))
	for k, v := range p.Achievements {
		out.Achievements[k] = v
	}
	return out
}

// Effects tells the UI what to celebrate after a transition.
type Effects struct {
	LeveledUp          bool     `json:"leveledUp"`
	LevelsGained       int      `json:"levelsGained"`
	UnlockedBadges     []string `json:"unlockedBadges"`
	ChallengeCompleted bool     `json:"challengeCompleted"`
}

// DayKey formats t as a calendar-date key.
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}
