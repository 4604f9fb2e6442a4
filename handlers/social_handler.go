package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"piauiTicketsAPI/internal/types/post"
	"piauiTicketsAPI/middleware"
	"piauiTicketsAPI/services"
)

type SocialHandler struct {
	socialService *services.SocialService
}

func NewSocialHandler(socialService *services.SocialService) *SocialHandler {
	return &SocialHandler{
		socialService: socialService,
	}
}

func (h *SocialHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	posts, err := h.socialService.ListPosts(ctx)
	if err != nil {
		log.Printf("GetPosts Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load posts")
		return
	}

	respondWithJSON(w, http.StatusOK, posts)
}

func (h *SocialHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req post.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.socialService.CreatePost(ctx, clerkID, &req)
	if err != nil {
		if err.Error() == "post must have text or an image" {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("CreatePost Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}

	respondWithJSON(w, http.StatusCreated, p)
}

func (h *SocialHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := middleware.GetClerkID(ctx); !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	postID := mux.Vars(r)["postID"]
	if postID == "" {
		respondWithError(w, http.StatusBadRequest, "postID is required")
		return
	}

	likes, err := h.socialService.LikePost(ctx, postID)
	if err != nil {
		if err.Error() == "post not found" {
			respondWithError(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Printf("LikePost Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to like post")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int{"curtidas": likes})
}

func (h *SocialHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	postID := mux.Vars(r)["postID"]
	if postID == "" {
		respondWithError(w, http.StatusBadRequest, "postID is required")
		return
	}

	var req post.AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.socialService.AddComment(ctx, clerkID, postID, &req)
	if err != nil {
		switch err.Error() {
		case "post not found":
			respondWithError(w, http.StatusNotFound, "Post not found")
		case "comment text is required":
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("AddComment Handler: Service error: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to add comment")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, c)
}
