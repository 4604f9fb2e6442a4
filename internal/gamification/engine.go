package gamification

import (
	"fmt"
	"time"

	"piauiTicketsAPI/internal/badge"
)

// Config holds the XP economy. The exact numbers are product tuning, not
// logic, so they are injected rather than hardcoded in the transitions.
type Config struct {
	VibeXPReward     int
	EventXPReward    int
	ChallengeTarget  int
	ChallengeBonusXP int
	// Level curve: xpToNext(level) = LevelXPBase + (level-1)*LevelXPStep.
	// LevelXPBase must be positive and LevelXPStep non-negative so the
	// overflow loop always terminates.
	LevelXPBase int
	LevelXPStep int
}

// DefaultConfig matches the rewards the app advertises (daily challenge:
// rate 3 vibes for a 50 XP bonus).
func DefaultConfig() Config {
	return Config{
		VibeXPReward:     10,
		EventXPReward:    50,
		ChallengeTarget:  3,
		ChallengeBonusXP: 50,
		LevelXPBase:      100,
		LevelXPStep:      50,
	}
}

// Engine computes gamification transitions. It owns no state and performs
// no I/O; callers load the Progress record, apply a transition, and persist
// the result. The clock is injected so tests can cross day boundaries
// deterministically.
type Engine struct {
	cfg    Config
	badges []badge.Definition
	now    func() time.Time
}

func NewEngine(cfg Config, badges []badge.Definition, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	if cfg.LevelXPBase <= 0 {
		cfg.LevelXPBase = 100
	}
	if cfg.LevelXPStep < 0 {
		cfg.LevelXPStep = 0
	}
	return &Engine{cfg: cfg, badges: badges, now: now}
}

// Badges exposes the injected catalog for read-only listing.
func (e *Engine) Badges() []badge.Definition {
	return e.badges
}

// xpToNextFor is the level curve. Strictly positive at every level.
func (e *Engine) xpToNextFor(level int) int {
	if level < 1 {
		level = 1
	}
	return e.cfg.LevelXPBase + (level-1)*e.cfg.LevelXPStep
}

// RegisterVibeEvaluated applies the "user rated a vibe" transition: counter,
// fixed XP reward, streak, daily challenge, level overflow, badge scan.
// Returns an error for a score outside 1-5 without touching the record.
func (e *Engine) RegisterVibeEvaluated(p Progress, eventID string, score int) (Progress, Effects, error) {
	if score < 1 || score > 5 {
		return p, Effects{}, fmt.Errorf("invalid vibe score %d: must be between 1 and 5", score)
	}

	now := e.now()
	out := p.clone()
	var fx Effects

	out.VibesRated++
	out.XP += e.cfg.VibeXPReward
	e.updateStreak(&out, now)

	today := DayKey(now)
	day := out.DailyChallenges[today]
	day.VibesRatedToday++
	if !day.Completed && day.VibesRatedToday >= e.cfg.ChallengeTarget {
		day.Completed = true
		fx.ChallengeCompleted = true
		out.XP += e.cfg.ChallengeBonusXP
	}
	out.DailyChallenges[today] = day

	e.resolveLevels(&out, &fx)
	e.evaluateBadges(&out, &fx, now)

	return out, fx, nil
}

// RegisterEventParticipation applies the "user attended an event"
// transition. Participation is deliberately not deduplicated by eventID:
// two calls for the same event count twice (the ticket flow decides when
// to call this, not the engine).
func (e *Engine) RegisterEventParticipation(p Progress, eventID string) (Progress, Effects) {
	now := e.now()
	out := p.clone()
	var fx Effects

	out.EventsAttended++
	out.XP += e.cfg.EventXPReward
	e.updateStreak(&out, now)

	e.resolveLevels(&out, &fx)
	e.evaluateBadges(&out, &fx, now)

	return out, fx
}

// updateStreak applies the shared streak rule. Same-day activity never
// double-counts; exactly-yesterday extends; anything else (gaps, clock
// moving backwards) restarts at 1.
func (e *Engine) updateStreak(p *Progress, now time.Time) {
	today := DayKey(now)
	last := p.LastActivityDate

	switch {
	case last == "":
		p.Streak = 1
	case last == today:
		return
	case isNextDay(last, today):
		p.Streak++
	default:
		p.Streak = 1
	}

	p.LastActivityDate = today
}

func isNextDay(last, today string) bool {
	t, err := time.Parse(DateLayout, last)
	if err != nil {
		return false
	}
	return DayKey(t.AddDate(0, 0, 1)) == today
}

// resolveLevels drains XP overflow into level increments. xpToNext is
// recomputed per level from the curve, which is strictly positive, so the
// loop terminates.
func (e *Engine) resolveLevels(p *Progress, fx *Effects) {
	if p.XPToNext <= 0 {
		p.XPToNext = e.xpToNextFor(p.Level)
	}
	for p.XP >= p.XPToNext {
		p.XP -= p.XPToNext
		p.Level++
		p.XPToNext = e.xpToNextFor(p.Level)
		fx.LeveledUp = true
		fx.LevelsGained++
	}
}

// evaluateBadges scans definitions not yet held against the post-update
// counters. Badge XP re-enters level resolution, and since a level-up can
// in turn satisfy a level-criterion badge, the scan repeats until a pass
// unlocks nothing. Already-held badges are never re-added or re-awarded.
func (e *Engine) evaluateBadges(p *Progress, fx *Effects, now time.Time) {
	for {
		counters := badge.Counters{
			VibesRated:     p.VibesRated,
			EventsAttended: p.EventsAttended,
			Streak:         p.Streak,
			Level:          p.Level,
		}

		awardedXP := 0
		unlocked := false
		for _, def := range e.badges {
			if p.HasBadge(def.ID) || !def.Satisfied(counters) {
				continue
			}
			p.Badges = append(p.Badges, def.ID)
			p.Achievements[def.ID] = Unlock{UnlockedAt: now.UnixMilli()}
			fx.UnlockedBadges = append(fx.UnlockedBadges, def.ID)
			awardedXP += def.XPReward
			unlocked = true
		}

		if !unlocked {
			return
		}

		p.XP += awardedXP
		e.resolveLevels(p, fx)
	}
}
