package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"piauiTicketsAPI/internal/types/event"
	"piauiTicketsAPI/internal/vibe"
)

type EventService struct {
	db          *pgxpool.Pool
	vibeService *VibeService
	now         func() time.Time
}

func NewEventService(db *pgxpool.Pool, vibeService *VibeService, now func() time.Time) *EventService {
	if now == nil {
		now = time.Now
	}
	return &EventService{db: db, vibeService: vibeService, now: now}
}

// ListVisible returns every visible event as a card with its live vibe
// reading. Events happening today sort first, matching the home screen.
func (s *EventService) ListVisible(ctx context.Context) ([]*event.Card, error) {
	events, err := s.listVisibleEvents(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var today, future []*event.Card

	for _, ev := range events {
		agg := s.vibeService.GetAggregate(ctx, ev.ID)
		card := s.buildCard(ev, agg, now)
		if card.Today {
			today = append(today, card)
		} else {
			future = append(future, card)
		}
	}

	cards := append(today, future...)
	if cards == nil {
		cards = []*event.Card{}
	}
	return cards, nil
}

// GetCard returns one event with its vibe reading.
func (s *EventService) GetCard(ctx context.Context, eventID string) (*event.Card, error) {
	ev, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	agg := s.vibeService.GetAggregate(ctx, ev.ID)
	return s.buildCard(ev, agg, s.now()), nil
}

// Stories returns the stories-carousel entries: every visible event, with
// the high-vibe seal and urgency label the carousel renders.
func (s *EventService) Stories(ctx context.Context) ([]*event.Story, error) {
	events, err := s.listVisibleEvents(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stories := []*event.Story{}
	for _, ev := range events {
		agg := s.vibeService.GetAggregate(ctx, ev.ID)
		stories = append(stories, &event.Story{
			EventID:  ev.ID,
			Name:     ev.Name,
			ImageURL: ev.ImageURL,
			HighVibe: vibe.HighVibe(agg),
			Urgency:  UrgencyMessage(ev, now),
		})
	}

	return stories, nil
}

func (s *EventService) buildCard(ev *event.Event, agg *vibe.Aggregate, now time.Time) *event.Card {
	card := &event.Card{
		Event:       *ev,
		VibeCount:   0,
		VibeStars:   vibe.Stars(agg),
		VibeMessage: vibe.Message(agg),
		HighVibe:    vibe.HighVibe(agg),
		Urgency:     UrgencyMessage(ev, now),
		Today:       IsToday(ev, now),
	}
	if agg != nil {
		card.VibeAverage = agg.Average
		card.VibeCount = agg.Count
	}
	return card
}

func (s *EventService) listVisibleEvents(ctx context.Context) ([]*event.Event, error) {
	query := `
	SELECT id, name, COALESCE(slug, ''), image_url, visible,
	       COALESCE(start_date, ''), COALESCE(doors_open, ''),
	       COALESCE(location, ''), COALESCE(category, ''),
	       sale_open, COALESCE(sale_message, '')
	FROM events
	WHERE visible = true
	ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	defer rows.Close()

	var events []*event.Event
	for rows.Next() {
		ev := &event.Event{}
		err := rows.Scan(
			&ev.ID,
			&ev.Name,
			&ev.Slug,
			&ev.ImageURL,
			&ev.Visible,
			&ev.StartDate,
			&ev.DoorsOpen,
			&ev.Location,
			&ev.Category,
			&ev.SaleOpen,
			&ev.SaleMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

func (s *EventService) getEvent(ctx context.Context, eventID string) (*event.Event, error) {
	query := `
	SELECT id, name, COALESCE(slug, ''), image_url, visible,
	       COALESCE(start_date, ''), COALESCE(doors_open, ''),
	       COALESCE(location, ''), COALESCE(category, ''),
	       sale_open, COALESCE(sale_message, '')
	FROM events
	WHERE id = $1
	`

	ev := &event.Event{}
	err := s.db.QueryRow(ctx, query, eventID).Scan(
		&ev.ID,
		&ev.Name,
		&ev.Slug,
		&ev.ImageURL,
		&ev.Visible,
		&ev.StartDate,
		&ev.DoorsOpen,
		&ev.Location,
		&ev.Category,
		&ev.SaleOpen,
		&ev.SaleMessage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("event not found")
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return ev, nil
}

// StartTime parses the event's "dd/mm/yyyy" date and "19h30" doors-open
// time in the server's local zone. Second return is false when either
// field is missing or malformed.
func StartTime(ev *event.Event, loc *time.Location) (time.Time, bool) {
	if ev.StartDate == "" || ev.DoorsOpen == "" {
		return time.Time{}, false
	}

	day, err := time.ParseInLocation("02/01/2006", ev.StartDate, loc)
	if err != nil {
		return time.Time{}, false
	}

	clock, err := time.Parse("15h04", ev.DoorsOpen)
	if err != nil {
		clock, err = time.Parse("15:04", ev.DoorsOpen)
		if err != nil {
			return time.Time{}, false
		}
	}

	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0, loc), true
}

// UrgencyMessage is the countdown label on story cards: "Acontecendo
// agora!" once doors are open, minute/hour countdowns within 5 hours,
// empty further out or when dates are unparseable.
func UrgencyMessage(ev *event.Event, now time.Time) string {
	start, ok := StartTime(ev, now.Location())
	if !ok {
		return ""
	}

	diff := start.Sub(now)
	diffMin := int(diff.Minutes())
	diffHours := int(diff.Hours())

	if diffMin <= 0 {
		return "Acontecendo agora!"
	}
	if diffMin < 60 {
		return fmt.Sprintf("Faltam %d min", diffMin)
	}
	if diffHours <= 5 {
		return fmt.Sprintf("Faltam %d horas", diffHours)
	}
	return ""
}

// IsToday reports whether the event's start date falls on now's calendar
// day.
func IsToday(ev *event.Event, now time.Time) bool {
	if ev.StartDate == "" {
		return false
	}
	day, err := time.ParseInLocation("02/01/2006", ev.StartDate, now.Location())
	if err != nil {
		return false
	}
	return day.Year() == now.Year() && day.YearDay() == now.YearDay()
}
