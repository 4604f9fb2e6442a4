package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"piauiTicketsAPI/services"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cards, err := h.eventService.ListVisible(ctx)
	if err != nil {
		log.Printf("ListEvents Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load events")
		return
	}

	respondWithJSON(w, http.StatusOK, cards)
}

func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	eventID := mux.Vars(r)["eventID"]
	if eventID == "" {
		respondWithError(w, http.StatusBadRequest, "eventID is required")
		return
	}

	card, err := h.eventService.GetCard(ctx, eventID)
	if err != nil {
		if err.Error() == "event not found" {
			respondWithError(w, http.StatusNotFound, "Event not found")
			return
		}
		log.Printf("GetEvent Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load event")
		return
	}

	respondWithJSON(w, http.StatusOK, card)
}

func (h *EventHandler) GetStories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stories, err := h.eventService.Stories(ctx)
	if err != nil {
		log.Printf("GetStories Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load stories")
		return
	}

	respondWithJSON(w, http.StatusOK, stories)
}
