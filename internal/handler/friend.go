package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kmadan/splitledger/internal/middleware"
	"github.com/kmadan/splitledger/internal/models"
	"github.com/kmadan/splitledger/internal/service"
)

// FriendHandler serves the friends directory.
type FriendHandler struct {
	svc *service.FriendService
}

// NewFriendHandler creates a FriendHandler.
func NewFriendHandler(svc *service.FriendService) *FriendHandler {
	return &FriendHandler{svc: svc}
}

type addFriendRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Add handles POST /api/friends.
func (h *FriendHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	friend, err := h.svc.AddFriend(r.Context(), middleware.GetUserID(r.Context()), req.Name, req.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"friend":  friend,
	})
}

// List handles GET /api/friends.
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	friends, err := h.svc.ListFriends(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	if friends == nil {
		friends = []models.Friend{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"friends": friends,
	})
}

// Remove handles DELETE /api/friends/{id}.
func (h *FriendHandler) Remove(w http.ResponseWriter, r *http.Request) {
	friendID := mux.Vars(r)["id"]
	if err := h.svc.RemoveFriend(r.Context(), middleware.GetUserID(r.Context()), friendID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
