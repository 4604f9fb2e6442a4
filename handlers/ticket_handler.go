package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"piauiTicketsAPI/middleware"
	"piauiTicketsAPI/services"
)

type TicketHandler struct {
	ticketService *services.TicketService
}

func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
	}
}

// ListTickets returns the caller's tickets grouped per event, or the
// individual tickets for one event when ?eventId= is present.
func (h *TicketHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if eventID := r.URL.Query().Get("eventId"); eventID != "" {
		tickets, err := h.ticketService.ListEventTickets(ctx, clerkID, eventID)
		if err != nil {
			log.Printf("ListTickets Handler: Service error: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to load tickets")
			return
		}
		respondWithJSON(w, http.StatusOK, tickets)
		return
	}

	groups, err := h.ticketService.ListEventGroups(ctx, clerkID)
	if err != nil {
		log.Printf("ListTickets Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load tickets")
		return
	}

	respondWithJSON(w, http.StatusOK, groups)
}

// GetTicket returns one digital ticket with its QR code payload.
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	code := mux.Vars(r)["code"]
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "ticket code is required")
		return
	}

	detail, err := h.ticketService.GetDetail(ctx, clerkID, code)
	if err != nil {
		if err.Error() == "ticket not found" {
			respondWithError(w, http.StatusNotFound, "Ticket not found")
			return
		}
		log.Printf("GetTicket Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load ticket")
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}
