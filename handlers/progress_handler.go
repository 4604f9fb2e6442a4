package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"piauiTicketsAPI/internal/gamification"
	"piauiTicketsAPI/middleware"
	"piauiTicketsAPI/services"
)

type ProgressHandler struct {
	progressService *services.ProgressService
}

func NewProgressHandler(progressService *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
	}
}

func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	progress, err := h.progressService.LoadProgress(ctx, clerkID)
	if err != nil {
		log.Printf("GetProgress Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load progress")
		return
	}

	respondWithJSON(w, http.StatusOK, progress)
}

type participationResponse struct {
	Progress gamification.Progress `json:"progress"`
	Effects  gamification.Effects  `json:"effects"`
}

func (h *ProgressHandler) RegisterParticipation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req struct {
		EventID string `json:"eventId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.EventID == "" {
		respondWithError(w, http.StatusBadRequest, "eventId is required")
		return
	}

	progress, effects, err := h.progressService.RegisterEventParticipation(ctx, clerkID, req.EventID)
	if err != nil {
		log.Printf("RegisterParticipation Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to register participation")
		return
	}

	respondWithJSON(w, http.StatusOK, participationResponse{Progress: progress, Effects: effects})
}

func (h *ProgressHandler) GetBadges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	badges, err := h.progressService.GetBadges(ctx, clerkID)
	if err != nil {
		log.Printf("GetBadges Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load badges")
		return
	}

	respondWithJSON(w, http.StatusOK, badges)
}

func (h *ProgressHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	lb, err := h.progressService.GetLeaderboard(ctx, clerkID)
	if err != nil {
		log.Printf("GetLeaderboard Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load leaderboard")
		return
	}

	respondWithJSON(w, http.StatusOK, lb)
}

// isScoreError distinguishes the caller contract violation (score outside
// 1-5) from persistence failures.
func isScoreError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "invalid vibe score")
}
