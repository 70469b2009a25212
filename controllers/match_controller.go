package controllers

import (
	"context"
	"net/http"

	"flatmates_server/middleware"
	"flatmates_server/models"

	"github.com/gorilla/mux"
)

// MatchOperations is the slice of the match service the controller uses.
type MatchOperations interface {
	PotentialCandidates(ctx context.Context, requesterID string) ([]models.User, error)
	Like(ctx context.Context, requesterID, targetID string) (bool, error)
	Dislike(ctx context.Context, requesterID, targetID string) error
	Matches(ctx context.Context, requesterID string) ([]models.User, error)
}

// MatchNotifier publishes a match event to the realtime channel. Matching
// itself never depends on it.
type MatchNotifier interface {
	NotifyMatch(userA, userB string)
}

// MatchController handles swipe and match-listing requests
type MatchController struct {
	MatchService MatchOperations
	Notifier     MatchNotifier
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService MatchOperations, notifier MatchNotifier) *MatchController {
	return &MatchController{MatchService: matchService, Notifier: notifier}
}

// HandlePotentialMatches lists swipeable candidates for the requester
func (mc *MatchController) HandlePotentialMatches(w http.ResponseWriter, r *http.Request) {
	candidates, err := mc.MatchService.PotentialCandidates(r.Context(), middleware.UserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, candidates)
}

// HandleLike records a like toward the target user and reports whether it
// completed a mutual match
func (mc *MatchController) HandleLike(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.UserID(r)
	targetID := mux.Vars(r)["userId"]

	isMatch, err := mc.MatchService.Like(r.Context(), requesterID, targetID)
	if err != nil {
		respondError(w, err)
		return
	}

	if isMatch && mc.Notifier != nil {
		mc.Notifier.NotifyMatch(requesterID, targetID)
	}

	respondJSON(w, http.StatusOK, map[string]bool{"isMatch": isMatch})
}

// HandleDislike records a dislike toward the target user
func (mc *MatchController) HandleDislike(w http.ResponseWriter, r *http.Request) {
	if err := mc.MatchService.Dislike(r.Context(), middleware.UserID(r), mux.Vars(r)["userId"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{})
}

// HandleMatches lists the requester's mutual matches
func (mc *MatchController) HandleMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := mc.MatchService.Matches(r.Context(), middleware.UserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, matches)
}
