package gamification

import (
	"testing"
	"time"

	"piauiTicketsAPI/internal/badge"
)

func fixedClock(day string) func() time.Time {
	t, err := time.Parse(DateLayout, day)
	if err != nil {
		panic(err)
	}
	t = t.Add(20 * time.Hour)
	return func() time.Time { return t }
}

// engine with no badge catalog, to keep XP math isolated
func bareEngine(day string) *Engine {
	return NewEngine(DefaultConfig(), nil, fixedClock(day))
}

func TestFirstVibeEvaluated(t *testing.T) {
	e := NewEngine(DefaultConfig(), badge.Catalog(), fixedClock("2026-03-14"))

	out, fx, err := e.RegisterVibeEvaluated(NewProgress(), "ev-1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.VibesRated != 1 {
		t.Errorf("expected 1 vibe rated, got %d", out.VibesRated)
	}
	if out.Streak != 1 || out.LastActivityDate != "2026-03-14" {
		t.Errorf("expected streak 1 on 2026-03-14, got %d on %q", out.Streak, out.LastActivityDate)
	}
	// 10 XP for the vibe plus 20 XP from the "Primeira Vibe" badge
	if out.Level != 1 || out.XP != 30 || out.XPToNext != 100 {
		t.Errorf("expected level 1, 30/100 XP, got level %d, %d/%d", out.Level, out.XP, out.XPToNext)
	}
	if len(fx.UnlockedBadges) != 1 || fx.UnlockedBadges[0] != "primeira_vibe" {
		t.Errorf("expected primeira_vibe unlock, got %v", fx.UnlockedBadges)
	}
	if _, ok := out.Achievements["primeira_vibe"]; !ok {
		t.Error("expected unlock timestamp recorded in achievements")
	}
	if fx.ChallengeCompleted {
		t.Error("one vibe should not complete the daily challenge")
	}
}

func TestInvalidScoreRejected(t *testing.T) {
	e := bareEngine("2026-03-14")
	p := NewProgress()

	for _, score := range []int{0, 6, -1} {
		out, fx, err := e.RegisterVibeEvaluated(p, "ev-1", score)
		if err == nil {
			t.Fatalf("expected error for score %d", score)
		}
		if out.VibesRated != 0 || out.XP != 0 {
			t.Errorf("score %d: record must be untouched, got %+v", score, out)
		}
		if fx.LeveledUp || len(fx.UnlockedBadges) != 0 {
			t.Errorf("score %d: expected empty effects, got %+v", score, fx)
		}
	}
}

func TestStreakRules(t *testing.T) {
	e := bareEngine("2026-03-14")

	// Consecutive day extends
	p := NewProgress()
	p.Streak = 4
	p.LastActivityDate = "2026-03-13"
	out, _, err := e.RegisterVibeEvaluated(p, "ev-1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Streak != 5 {
		t.Errorf("yesterday's activity should extend the streak to 5, got %d", out.Streak)
	}

	// Same day leaves the streak alone
	out2, _, err := e.RegisterVibeEvaluated(out, "ev-2", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out2.Streak != 5 {
		t.Errorf("same-day activity must not change the streak, got %d", out2.Streak)
	}

	// A gap resets to 1
	p.LastActivityDate = "2026-03-10"
	out3, _, err := e.RegisterVibeEvaluated(p, "ev-3", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out3.Streak != 1 {
		t.Errorf("a gap should reset the streak to 1, got %d", out3.Streak)
	}

	// Clock moving backwards also resets
	p.LastActivityDate = "2026-03-20"
	out4, _, err := e.RegisterVibeEvaluated(p, "ev-4", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out4.Streak != 1 {
		t.Errorf("a future last-activity date should reset the streak to 1, got %d", out4.Streak)
	}
}

func TestDailyChallenge(t *testing.T) {
	e := bareEngine("2026-03-14")
	p := NewProgress()

	var fx Effects
	var err error
	for i := 0; i < 2; i++ {
		p, fx, err = e.RegisterVibeEvaluated(p, "ev", 4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fx.ChallengeCompleted {
			t.Fatalf("challenge completed after %d vibes", i+1)
		}
	}

	p, fx, err = e.RegisterVibeEvaluated(p, "ev", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fx.ChallengeCompleted {
		t.Fatal("third vibe of the day should complete the challenge")
	}
	// 3 * 10 XP plus the 50 XP bonus
	if p.XP != 80 {
		t.Errorf("expected 80 XP after the bonus, got %d", p.XP)
	}

	// The bonus never pays twice
	p, fx, err = e.RegisterVibeEvaluated(p, "ev", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fx.ChallengeCompleted {
		t.Error("challenge bonus must not repeat on the fourth vibe")
	}
	if day := p.DailyChallenges["2026-03-14"]; day.VibesRatedToday != 4 || !day.Completed {
		t.Errorf("expected 4 vibes recorded and completed=true, got %+v", day)
	}
}

func TestLevelOverflowLoop(t *testing.T) {
	e := bareEngine("2026-03-14")

	p := NewProgress()
	p.XP = 230
	p.XPToNext = 100

	out, fx := e.RegisterEventParticipation(p, "ev-1")

	// 280 XP drains through level 2 (cost 100) and level 3 (cost 150)
	if out.Level != 3 {
		t.Errorf("expected level 3, got %d", out.Level)
	}
	if out.XP != 30 || out.XPToNext != 200 {
		t.Errorf("expected 30/200 XP, got %d/%d", out.XP, out.XPToNext)
	}
	if !fx.LeveledUp || fx.LevelsGained != 2 {
		t.Errorf("expected 2 levels gained, got %+v", fx)
	}
}

func TestParticipationNotDeduplicated(t *testing.T) {
	e := bareEngine("2026-03-14")

	p := NewProgress()
	p, _ = e.RegisterEventParticipation(p, "ev-1")
	p, _ = e.RegisterEventParticipation(p, "ev-1")

	if p.EventsAttended != 2 {
		t.Errorf("same event twice must count twice, got %d", p.EventsAttended)
	}
	if p.XP != 100 {
		t.Errorf("expected 100 XP from two participations, got %d", p.XP)
	}
}

func TestBadgesNeverReawarded(t *testing.T) {
	e := NewEngine(DefaultConfig(), badge.Catalog(), fixedClock("2026-03-14"))

	p := NewProgress()
	p.VibesRated = 1
	p.Badges = []string{"primeira_vibe"}
	p.Achievements["primeira_vibe"] = Unlock{UnlockedAt: 1}

	out, fx, err := e.RegisterVibeEvaluated(p, "ev-1", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fx.UnlockedBadges) != 0 {
		t.Errorf("held badge must not unlock again, got %v", fx.UnlockedBadges)
	}
	if len(out.Badges) != 1 {
		t.Errorf("expected badge list unchanged, got %v", out.Badges)
	}
	if out.Achievements["primeira_vibe"].UnlockedAt != 1 {
		t.Error("original unlock timestamp must be preserved")
	}
}

func TestBadgeXPCascadesIntoLevelBadge(t *testing.T) {
	e := NewEngine(DefaultConfig(), badge.Catalog(), fixedClock("2026-03-14"))

	// One vibe away from "Crítico de Vibe"; its XP pushes into level 10,
	// which in turn unlocks "Lenda Local" in the same transition.
	p := NewProgress()
	p.Level = 9
	p.XP = 485
	p.XPToNext = 500 // curve value at level 9
	p.VibesRated = 9
	p.Badges = []string{"primeira_vibe"}
	p.Achievements["primeira_vibe"] = Unlock{UnlockedAt: 1}

	out, fx, err := e.RegisterVibeEvaluated(p, "ev-1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Level != 10 {
		t.Errorf("expected level 10, got %d", out.Level)
	}
	if out.XP != 295 || out.XPToNext != 550 {
		t.Errorf("expected 295/550 XP, got %d/%d", out.XP, out.XPToNext)
	}
	if len(fx.UnlockedBadges) != 2 ||
		fx.UnlockedBadges[0] != "critico_de_vibe" ||
		fx.UnlockedBadges[1] != "lenda_local" {
		t.Errorf("expected critico_de_vibe then lenda_local, got %v", fx.UnlockedBadges)
	}
	if !fx.LeveledUp || fx.LevelsGained != 1 {
		t.Errorf("expected one level gained, got %+v", fx)
	}
}

func TestTransitionDoesNotAliasInput(t *testing.T) {
	e := bareEngine("2026-03-14")

	p := NewProgress()
	out, _, err := e.RegisterVibeEvaluated(p, "ev-1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out.DailyChallenges["2026-03-14"] = ChallengeDay{VibesRatedToday: 99}
	if day := p.DailyChallenges["2026-03-14"]; day.VibesRatedToday != 0 {
		t.Errorf("input record was mutated through a shared map: %+v", day)
	}
	if p.VibesRated != 0 || p.XP != 0 {
		t.Errorf("input record changed: %+v", p)
	}
}
