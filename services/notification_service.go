package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"piauiTicketsAPI/internal/badge"
	"piauiTicketsAPI/internal/types/notification"
)

// PushProvider is the delivery backend (FCM in production, a fake in
// tests).
type PushProvider interface {
	SendPush(ctx context.Context, tokens []notification.DeviceToken, title, body string, data map[string]any) error
}

type NotificationService struct {
	db       *pgxpool.Pool
	provider PushProvider
	badges   []badge.Definition
}

func NewNotificationService(db *pgxpool.Pool, badges []badge.Definition) *NotificationService {
	return &NotificationService{db: db, badges: badges}
}

// SetPushProvider injects the delivery backend after construction, so the
// API still boots when FCM credentials are absent.
func (s *NotificationService) SetPushProvider(p PushProvider) {
	s.provider = p
}

// RegisterDevice stores or refreshes a push token for a user.
func (s *NotificationService) RegisterDevice(ctx context.Context, clerkID, token, platform string) error {
	if token == "" {
		return fmt.Errorf("device token is required")
	}

	query := `
	INSERT INTO device_tokens (user_id, token, platform, updated_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (token)
	DO UPDATE SET user_id = $1, platform = $3, updated_at = NOW()
	`

	_, err := s.db.Exec(ctx, query, clerkID, token, platform)
	if err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}

	return nil
}

func (s *NotificationService) tokensFor(ctx context.Context, clerkID string) ([]notification.DeviceToken, error) {
	query := `
	SELECT user_id, token, COALESCE(platform, ''), updated_at
	FROM device_tokens
	WHERE user_id = $1
	`

	rows, err := s.db.Query(ctx, query, clerkID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []notification.DeviceToken
	for rows.Next() {
		var t notification.DeviceToken
		if err := rows.Scan(&t.UserID, &t.Token, &t.Platform, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		tokens = append(tokens, t)
	}

	return tokens, rows.Err()
}

// NotifyLevelUp pushes the level-up celebration. Best effort: failures are
// logged, never surfaced to the request that triggered them.
func (s *NotificationService) NotifyLevelUp(clerkID string, level int) {
	if s.provider == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tokens, err := s.tokensFor(ctx, clerkID)
	if err != nil {
		log.Printf("NotifyLevelUp: %v", err)
		return
	}

	title := "Parabéns!"
	body := fmt.Sprintf("Você subiu para o nível %d!", level)
	data := map[string]any{"type": "level_up", "level": level}

	if err := s.provider.SendPush(ctx, tokens, title, body, data); err != nil {
		log.Printf("NotifyLevelUp: push failed for %s: %v", clerkID, err)
	}
}

// NotifyBadgesUnlocked pushes one notification listing the newly earned
// badges by display name.
func (s *NotificationService) NotifyBadgesUnlocked(clerkID string, badgeIDs []string) {
	if s.provider == nil || len(badgeIDs) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tokens, err := s.tokensFor(ctx, clerkID)
	if err != nil {
		log.Printf("NotifyBadgesUnlocked: %v", err)
		return
	}

	names := make([]string, 0, len(badgeIDs))
	for _, id := range badgeIDs {
		if def, ok := badge.Lookup(s.badges, id); ok {
			names = append(names, def.Name)
		} else {
			names = append(names, id)
		}
	}

	title := "Nova conquista!"
	body := fmt.Sprintf("Você desbloqueou: %s", strings.Join(names, ", "))
	data := map[string]any{"type": "badge_unlocked", "badges": strings.Join(badgeIDs, ",")}

	if err := s.provider.SendPush(ctx, tokens, title, body, data); err != nil {
		log.Printf("NotifyBadgesUnlocked: push failed for %s: %v", clerkID, err)
	}
}
