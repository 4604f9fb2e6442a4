package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"piauiTicketsAPI/internal/badge"
	"piauiTicketsAPI/internal/gamification"
	"piauiTicketsAPI/internal/types/leaderboard"
)

// ProgressService owns persistence of UserGameProgress records. All
// gamification arithmetic lives in the engine; this service only does the
// load -> transition -> save cycle. Concurrent transitions for the same
// user are last-write-wins on the full record, so the app serializes
// submissions per user (one in-flight request at a time).
type ProgressService struct {
	db           *pgxpool.Pool
	engine       *gamification.Engine
	notifService *NotificationService
}

func NewProgressService(db *pgxpool.Pool, engine *gamification.Engine, notifService *NotificationService) *ProgressService {
	return &ProgressService{
		db:           db,
		engine:       engine,
		notifService: notifService,
	}
}

// LoadProgress fetches a user's record, defaulting a fresh one when none
// exists yet. A missing record is a first-time user, not an error.
func (s *ProgressService) LoadProgress(ctx context.Context, clerkID string) (gamification.Progress, error) {
	query := `
	SELECT level, xp, xp_to_next, vibes_rated, events_attended, streak,
	       COALESCE(last_activity_date, ''), badges, daily_challenges, achievements
	FROM user_game_progress
	WHERE user_id = $1
	`

	p := gamification.NewProgress()
	var badgesJSON, challengesJSON, achievementsJSON []byte

	err := s.db.QueryRow(ctx, query, clerkID).Scan(
		&p.Level,
		&p.XP,
		&p.XPToNext,
		&p.VibesRated,
		&p.EventsAttended,
		&p.Streak,
		&p.LastActivityDate,
		&badgesJSON,
		&challengesJSON,
		&achievementsJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return gamification.NewProgress(), nil
		}
		return gamification.Progress{}, fmt.Errorf("failed to load progress: %w", err)
	}

	if err := json.Unmarshal(badgesJSON, &p.Badges); err != nil {
		return gamification.Progress{}, fmt.Errorf("failed to decode badges: %w", err)
	}
	if err := json.Unmarshal(challengesJSON, &p.DailyChallenges); err != nil {
		return gamification.Progress{}, fmt.Errorf("failed to decode daily challenges: %w", err)
	}
	if err := json.Unmarshal(achievementsJSON, &p.Achievements); err != nil {
		return gamification.Progress{}, fmt.Errorf("failed to decode achievements: %w", err)
	}

	return p, nil
}

// SaveProgress writes the whole record back. The engine computed it in
// memory; if this write fails the caller discards the snapshot and the
// stored record stays as it was (no partial application).
func (s *ProgressService) SaveProgress(ctx context.Context, clerkID string, p gamification.Progress) error {
	badgesJSON, err := json.Marshal(p.Badges)
	if err != nil {
		return fmt.Errorf("failed to encode badges: %w", err)
	}
	challengesJSON, err := json.Marshal(p.DailyChallenges)
	if err != nil {
		return fmt.Errorf("failed to encode daily challenges: %w", err)
	}
	achievementsJSON, err := json.Marshal(p.Achievements)
	if err != nil {
		return fmt.Errorf("failed to encode achievements: %w", err)
	}

	query := `
	INSERT INTO user_game_progress
		(user_id, level, xp, xp_to_next, vibes_rated, events_attended, streak,
		 last_activity_date, badges, daily_challenges, achievements, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, NOW())
	ON CONFLICT (user_id)
	DO UPDATE SET
		level = $2,
		xp = $3,
		xp_to_next = $4,
		vibes_rated = $5,
		events_attended = $6,
		streak = $7,
		last_activity_date = NULLIF($8, ''),
		badges = $9,
		daily_challenges = $10,
		achievements = $11,
		updated_at = NOW()
	`

	_, err = s.db.Exec(ctx, query,
		clerkID,
		p.Level,
		p.XP,
		p.XPToNext,
		p.VibesRated,
		p.EventsAttended,
		p.Streak,
		p.LastActivityDate,
		badgesJSON,
		challengesJSON,
		achievementsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	return nil
}

// RegisterVibeEvaluated runs the full cycle for a vibe rating and fires
// celebration pushes on the side.
func (s *ProgressService) RegisterVibeEvaluated(ctx context.Context, clerkID, eventID string, score int) (gamification.Progress, gamification.Effects, error) {
	current, err := s.LoadProgress(ctx, clerkID)
	if err != nil {
		return gamification.Progress{}, gamification.Effects{}, err
	}

	updated, fx, err := s.engine.RegisterVibeEvaluated(current, eventID, score)
	if err != nil {
		return gamification.Progress{}, gamification.Effects{}, err
	}

	if err := s.SaveProgress(ctx, clerkID, updated); err != nil {
		return gamification.Progress{}, gamification.Effects{}, err
	}

	s.notifyEffects(clerkID, updated, fx)
	return updated, fx, nil
}

// RegisterEventParticipation runs the full cycle for an event
// participation. Calling it twice for the same event counts twice; there
// is no dedup by event id here.
func (s *ProgressService) RegisterEventParticipation(ctx context.Context, clerkID, eventID string) (gamification.Progress, gamification.Effects, error) {
	current, err := s.LoadProgress(ctx, clerkID)
	if err != nil {
		return gamification.Progress{}, gamification.Effects{}, err
	}

	updated, fx := s.engine.RegisterEventParticipation(current, eventID)

	if err := s.SaveProgress(ctx, clerkID, updated); err != nil {
		return gamification.Progress{}, gamification.Effects{}, err
	}

	s.notifyEffects(clerkID, updated, fx)
	return updated, fx, nil
}

func (s *ProgressService) notifyEffects(clerkID string, p gamification.Progress, fx gamification.Effects) {
	if s.notifService == nil {
		return
	}
	if fx.LeveledUp {
		go s.notifService.NotifyLevelUp(clerkID, p.Level)
	}
	if len(fx.UnlockedBadges) > 0 {
		go s.notifService.NotifyBadgesUnlocked(clerkID, fx.UnlockedBadges)
	}
}

// GetBadges returns the whole catalog annotated with the caller's unlock
// state, unlocked first.
func (s *ProgressService) GetBadges(ctx context.Context, clerkID string) ([]*badge.WithStatus, error) {
	p, err := s.LoadProgress(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	var unlocked, locked []*badge.WithStatus
	for _, def := range s.engine.Badges() {
		ws := &badge.WithStatus{Definition: def}
		if u, ok := p.Achievements[def.ID]; ok || p.HasBadge(def.ID) {
			ws.Unlocked = true
			if ok {
				at := u.UnlockedAt
				ws.UnlockedAt = &at
			}
			unlocked = append(unlocked, ws)
		} else {
			locked = append(locked, ws)
		}
	}

	return append(unlocked, locked...), nil
}

// GetLeaderboard ranks users by level then XP, surfacing the requesting
// user's position.
func (s *ProgressService) GetLeaderboard(ctx context.Context, clerkID string) (*leaderboard.Leaderboard, error) {
	query := `
	SELECT
		u.clerk_id,
		u.username,
		u.image_url,
		p.level,
		p.xp,
		p.streak,
		RANK() OVER (ORDER BY p.level DESC, p.xp DESC) AS rank
	FROM user_game_progress p
	INNER JOIN users u ON u.clerk_id = p.user_id
	ORDER BY p.level DESC, p.xp DESC
	LIMIT 50
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*leaderboard.Entry
	var userPosition *leaderboard.Entry

	for rows.Next() {
		entry := &leaderboard.Entry{}
		err := rows.Scan(
			&entry.UserID,
			&entry.Username,
			&entry.ImageURL,
			&entry.Level,
			&entry.XP,
			&entry.Streak,
			&entry.Rank,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}

		entries = append(entries, entry)

		if entry.UserID == clerkID {
			userPosition = entry
		}
	}

	if err = rows.Err(); err != nil {
		log.Printf("GetLeaderboard: error iterating rows: %v", err)
		return nil, fmt.Errorf("error iterating leaderboard rows: %w", err)
	}

	return &leaderboard.Leaderboard{
		Entries:      entries,
		UserPosition: userPosition,
		TotalUsers:   len(entries),
	}, nil
}
