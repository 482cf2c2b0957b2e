package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"batepapo/internal/model"
)

// CreateMessage handles POST /messages
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	const tag = "POST /messages"
	log.Printf("[%s] Request received from %s", tag, r.RemoteAddr)

	user, ok := requireUser(w, r, tag)
	if !ok {
		return
	}

	var req messageRequest
	if err := decodeBody(w, r, &req); err != nil {
		fail(w, tag, http.StatusUnprocessableEntity, "invalid message", err)
		return
	}

	msg, err := h.Messages.Post(r.Context(), user, req.To, req.Text, req.Type)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrNotFound):
		fail(w, tag, http.StatusUnprocessableEntity, "participant not found", err)
		return
	case model.IsValidation(err):
		fail(w, tag, http.StatusUnprocessableEntity, "invalid message", err)
		return
	default:
		fail(w, tag, http.StatusInternalServerError, "Failed to create message", err)
		return
	}

	log.Printf("[%s] ✅ Created message: ID=%s, From=%q, To=%q", tag, msg.ID, msg.From, msg.To)
	writeJSON(w, http.StatusCreated, msg)
}

// parseLimit reads the optional limit query parameter. 0 means no limit.
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, model.NewValidationError(fmt.Sprintf("limit must be a positive integer, got %q", raw))
	}
	return limit, nil
}

// GetMessages handles GET /messages
// 閲覧者に見えるメッセージを新しい順に返す
func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	const tag = "GET /messages"
	log.Printf("[%s] Request received from %s", tag, r.RemoteAddr)

	user, ok := requireUser(w, r, tag)
	if !ok {
		return
	}

	limit, err := parseLimit(r)
	if err != nil {
		fail(w, tag, http.StatusUnprocessableEntity, "invalid limit", err)
		return
	}

	msgList, err := h.Messages.ListFor(r.Context(), user, limit)
	if err != nil {
		fail(w, tag, http.StatusInternalServerError, "Database error", err)
		return
	}

	log.Printf("[%s] ✅ Returned %d messages for %q", tag, len(msgList), user)
	writeJSON(w, http.StatusOK, msgList)
}

// UpdateMessage handles PUT /messages/{id}
func (h *Handler) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	tag := fmt.Sprintf("PUT /messages/%s", id)
	log.Printf("[%s] Request received from %s", tag, r.RemoteAddr)

	user, ok := requireUser(w, r, tag)
	if !ok {
		return
	}

	var req messageRequest
	if err := decodeBody(w, r, &req); err != nil {
		fail(w, tag, http.StatusUnprocessableEntity, "invalid message", err)
		return
	}

	exists, err := h.Directory.Exists(r.Context(), user)
	if err != nil {
		fail(w, tag, http.StatusInternalServerError, "Database error", err)
		return
	}
	if !exists {
		fail(w, tag, http.StatusUnprocessableEntity, "participant not found", nil)
		return
	}

	msg, err := h.Messages.UpdateAuthored(r.Context(), id, user, req.patch())
	if !authoredResult(w, tag, err) {
		return
	}

	log.Printf("[%s] ✅ Updated successfully", tag)
	writeJSON(w, http.StatusOK, msg)
}

// DeleteMessage handles DELETE /messages/{id}
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	tag := fmt.Sprintf("DELETE /messages/%s", id)
	log.Printf("[%s] Request received from %s", tag, r.RemoteAddr)

	user, ok := requireUser(w, r, tag)
	if !ok {
		return
	}

	err := h.Messages.DeleteAuthored(r.Context(), id, user)
	if !authoredResult(w, tag, err) {
		return
	}

	log.Printf("[%s] ✅ Deleted successfully", tag)
	w.WriteHeader(http.StatusOK)
}

// authoredResult maps the errors of author-scoped operations. It reports
// whether the request may continue.
func authoredResult(w http.ResponseWriter, tag string, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, model.ErrNotFound):
		fail(w, tag, http.StatusNotFound, "Message not found", err)
	case errors.Is(err, model.ErrForbidden):
		fail(w, tag, http.StatusUnauthorized, "only the author can change this message", err)
	case model.IsValidation(err):
		fail(w, tag, http.StatusUnprocessableEntity, "invalid message", err)
	default:
		fail(w, tag, http.StatusInternalServerError, "Database error", err)
	}
	return false
}
