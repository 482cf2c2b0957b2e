package handler

import (
	"errors"
	"log"
	"net/http"

	"batepapo/internal/model"
)

// CreateParticipant handles POST /participants
func (h *Handler) CreateParticipant(w http.ResponseWriter, r *http.Request) {
	const tag = "POST /participants"
	log.Printf("[%s] Request received from %s", tag, r.RemoteAddr)

	var req participantRequest
	if err := decodeBody(w, r, &req); err != nil {
		fail(w, tag, http.StatusUnprocessableEntity, "invalid participant", err)
		return
	}

	p, err := h.Directory.Join(r.Context(), req.Name)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrConflict):
		fail(w, tag, http.StatusConflict, "name already in use", err)
		return
	case model.IsValidation(err):
		fail(w, tag, http.StatusUnprocessableEntity, "invalid participant", err)
		return
	default:
		fail(w, tag, http.StatusInternalServerError, "Failed to create participant", err)
		return
	}

	log.Printf("[%s] ✅ %q joined", tag, p.Name)
	writeJSON(w, http.StatusCreated, p)
}

// GetParticipants handles GET /participants
func (h *Handler) GetParticipants(w http.ResponseWriter, r *http.Request) {
	const tag = "GET /participants"
	log.Printf("[%s] Request received from %s", tag, r.RemoteAddr)

	participants, err := h.Directory.List(r.Context())
	if err != nil {
		fail(w, tag, http.StatusInternalServerError, "Database error", err)
		return
	}

	log.Printf("[%s] ✅ Returned %d participants", tag, len(participants))
	writeJSON(w, http.StatusOK, participants)
}

// PostStatus handles POST /status
func (h *Handler) PostStatus(w http.ResponseWriter, r *http.Request) {
	const tag = "POST /status"

	user, ok := requireUser(w, r, tag)
	if !ok {
		return
	}

	err := h.Directory.Heartbeat(r.Context(), user)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrNotFound):
		fail(w, tag, http.StatusNotFound, "participant not found", err)
		return
	default:
		fail(w, tag, http.StatusInternalServerError, "Failed to update status", err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
