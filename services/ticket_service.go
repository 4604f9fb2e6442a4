package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skip2/go-qrcode"

	"piauiTicketsAPI/internal/types/ticket"
)

type TicketService struct {
	db *pgxpool.Pool
}

func NewTicketService(db *pgxpool.Pool) *TicketService {
	return &TicketService{db: db}
}

// ListEventGroups returns the caller's tickets grouped per event, for the
// "Meus Ingressos" list.
func (s *TicketService) ListEventGroups(ctx context.Context, clerkID string) ([]*ticket.EventGroup, error) {
	query := `
	SELECT
		t.event_id,
		COALESCE(e.name, 'Evento desconhecido'),
		COALESCE(e.image_url, ''),
		COALESCE(e.start_date, ''),
		COALESCE(e.location, ''),
		COUNT(*) AS quantity
	FROM tickets t
	LEFT JOIN events e ON e.id = t.event_id
	WHERE t.holder_id = $1
	GROUP BY t.event_id, e.name, e.image_url, e.start_date, e.location
	ORDER BY MAX(t.purchased_at) DESC
	`

	rows, err := s.db.Query(ctx, query, clerkID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tickets: %w", err)
	}
	defer rows.Close()

	groups := []*ticket.EventGroup{}
	for rows.Next() {
		g := &ticket.EventGroup{}
		err := rows.Scan(
			&g.EventID,
			&g.EventName,
			&g.ImageURL,
			&g.EventDate,
			&g.Location,
			&g.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket group: %w", err)
		}
		groups = append(groups, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ticket groups: %w", err)
	}

	return groups, nil
}

// ListEventTickets returns the caller's individual tickets for one event.
func (s *TicketService) ListEventTickets(ctx context.Context, clerkID, eventID string) ([]*ticket.Ticket, error) {
	query := `
	SELECT code, event_id, type, holder_id, purchased_at
	FROM tickets
	WHERE holder_id = $1 AND event_id = $2
	ORDER BY purchased_at
	`

	rows, err := s.db.Query(ctx, query, clerkID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event tickets: %w", err)
	}
	defer rows.Close()

	tickets := []*ticket.Ticket{}
	for rows.Next() {
		t := &ticket.Ticket{}
		if err := rows.Scan(&t.Code, &t.EventID, &t.Type, &t.HolderID, &t.PurchasedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickets: %w", err)
	}

	return tickets, nil
}

// GetDetail returns one ticket with its QR code rendered as a base64 PNG.
// Only the holder can fetch it; the code is the QR payload presented at
// the door.
func (s *TicketService) GetDetail(ctx context.Context, clerkID, code string) (*ticket.Detail, error) {
	query := `
	SELECT t.code, t.event_id, t.type, t.holder_id, t.purchased_at,
	       COALESCE(e.name, 'Evento desconhecido')
	FROM tickets t
	LEFT JOIN events e ON e.id = t.event_id
	WHERE t.code = $1
	`

	d := &ticket.Detail{}
	err := s.db.QueryRow(ctx, query, code).Scan(
		&d.Code,
		&d.EventID,
		&d.Type,
		&d.HolderID,
		&d.PurchasedAt,
		&d.EventName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ticket not found")
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	if d.HolderID != clerkID {
		return nil, fmt.Errorf("ticket not found")
	}

	pngBytes, err := qrcode.Encode(d.Code, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR png: %w", err)
	}
	d.QRCodeBase64 = base64.StdEncoding.EncodeToString(pngBytes)

	return d, nil
}
