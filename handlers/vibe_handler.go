package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"piauiTicketsAPI/internal/gamification"
	"piauiTicketsAPI/internal/vibe"
	"piauiTicketsAPI/middleware"
	"piauiTicketsAPI/services"
)

type VibeHandler struct {
	vibeService     *services.VibeService
	progressService *services.ProgressService
}

func NewVibeHandler(vibeService *services.VibeService, progressService *services.ProgressService) *VibeHandler {
	return &VibeHandler{
		vibeService:     vibeService,
		progressService: progressService,
	}
}

type vibeReadingResponse struct {
	Exists     bool         `json:"exists"`
	Average    float64      `json:"media,omitempty"`
	Count      int          `json:"count"`
	Stars      int          `json:"stars"`
	Message    string       `json:"mensagem"`
	HighVibe   bool         `json:"altaVibe"`
	UserRating *vibe.Rating `json:"userRating,omitempty"`
}

// GetEventVibe returns the live 1-hour reading for an event plus the
// caller's own vote, if any. No data is not an error: the card renders
// "Seja o primeiro a avaliar!".
func (h *VibeHandler) GetEventVibe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	eventID := mux.Vars(r)["eventID"]
	if eventID == "" {
		respondWithError(w, http.StatusBadRequest, "eventID is required")
		return
	}

	agg := h.vibeService.GetAggregate(ctx, eventID)

	resp := vibeReadingResponse{
		Exists:   agg != nil,
		Stars:    vibe.Stars(agg),
		Message:  vibe.Message(agg),
		HighVibe: vibe.HighVibe(agg),
	}
	if agg != nil {
		resp.Average = agg.Average
		resp.Count = agg.Count
	}

	rating, err := h.vibeService.GetUserRating(ctx, clerkID, eventID)
	if err != nil {
		log.Printf("GetEventVibe Handler: failed to load user rating: %v", err)
	} else {
		resp.UserRating = rating
	}

	respondWithJSON(w, http.StatusOK, resp)
}

type submitVibeResponse struct {
	Rating   *vibe.Rating          `json:"rating"`
	Progress gamification.Progress `json:"progress"`
	Effects  gamification.Effects  `json:"effects"`
}

// SubmitVibe stores the caller's vote (upsert per event+user) and applies
// the gamification transition in one request.
func (h *VibeHandler) SubmitVibe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	eventID := mux.Vars(r)["eventID"]
	if eventID == "" {
		respondWithError(w, http.StatusBadRequest, "eventID is required")
		return
	}

	var req struct {
		Score int `json:"nota"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rating, err := h.vibeService.SubmitRating(ctx, clerkID, eventID, req.Score)
	if err != nil {
		if isScoreError(err) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("SubmitVibe Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to submit vibe rating")
		return
	}

	progress, effects, err := h.progressService.RegisterVibeEvaluated(ctx, clerkID, eventID, req.Score)
	if err != nil {
		log.Printf("SubmitVibe Handler: gamification error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to update progress")
		return
	}

	middleware.CountVibeSubmission()

	respondWithJSON(w, http.StatusOK, submitVibeResponse{
		Rating:   rating,
		Progress: progress,
		Effects:  effects,
	})
}
