package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"piauiTicketsAPI/internal/vibe"
)

// VibeService stores vibe votes and computes the rolling aggregate. The
// aggregate itself is pure (internal/vibe); this service only materializes
// the rating set.
type VibeService struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewVibeService(db *pgxpool.Pool, now func() time.Time) *VibeService {
	if now == nil {
		now = time.Now
	}
	return &VibeService{db: db, now: now}
}

// SubmitRating records one user's vote for an event. One vote per
// (event, user): resubmitting overwrites, it never accumulates.
func (s *VibeService) SubmitRating(ctx context.Context, clerkID, eventID string, score int) (*vibe.Rating, error) {
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("invalid vibe score %d: must be between 1 and 5", score)
	}

	submittedAt := s.now().UnixMilli()

	query := `
	INSERT INTO vibe_ratings (event_id, user_id, score, submitted_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (event_id, user_id)
	DO UPDATE SET score = $3, submitted_at = $4
	`

	_, err := s.db.Exec(ctx, query, eventID, clerkID, score, submittedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to submit vibe rating: %w", err)
	}

	return &vibe.Rating{Score: score, SubmittedAt: submittedAt}, nil
}

// GetUserRating returns the caller's existing vote for an event, or nil
// when they have not voted yet.
func (s *VibeService) GetUserRating(ctx context.Context, clerkID, eventID string) (*vibe.Rating, error) {
	query := `
	SELECT score, submitted_at
	FROM vibe_ratings
	WHERE event_id = $1 AND user_id = $2
	`

	r := &vibe.Rating{}
	err := s.db.QueryRow(ctx, query, eventID, clerkID).Scan(&r.Score, &r.SubmittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vibe rating: %w", err)
	}

	return r, nil
}

// LoadRatings fetches every vote ever cast for an event. Window filtering
// happens in vibe.Compute, not in SQL, so the aggregate semantics live in
// one place.
func (s *VibeService) LoadRatings(ctx context.Context, eventID string) ([]vibe.Rating, error) {
	query := `
	SELECT score, submitted_at
	FROM vibe_ratings
	WHERE event_id = $1
	`

	rows, err := s.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vibe ratings: %w", err)
	}
	defer rows.Close()

	var ratings []vibe.Rating
	for rows.Next() {
		var r vibe.Rating
		if err := rows.Scan(&r.Score, &r.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vibe rating: %w", err)
		}
		ratings = append(ratings, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vibe ratings: %w", err)
	}

	return ratings, nil
}

// GetAggregate computes the live 1-hour aggregate for an event. A fetch
// failure is treated as "no ratings" so event cards never block on it.
func (s *VibeService) GetAggregate(ctx context.Context, eventID string) *vibe.Aggregate {
	ratings, err := s.LoadRatings(ctx, eventID)
	if err != nil {
		log.Printf("GetAggregate: failed to load ratings for event %s: %v", eventID, err)
		return nil
	}

	return vibe.Compute(ratings, s.now().UnixMilli())
}
