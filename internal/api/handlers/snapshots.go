package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/income-strategy/engine/internal/api/response"
	"github.com/income-strategy/engine/internal/apperrors"
	"github.com/income-strategy/engine/internal/service"
)

// SnapshotHandler handles HTTP requests for the snapshot endpoints.
type SnapshotHandler struct {
	snapshotService *service.SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler with the provided service dependency.
func NewSnapshotHandler(snapshotService *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
	}
}

// Create handles POST requests to compute and store a metrics snapshot.
//
// Endpoint: POST /api/snapshots
// Response: 201 Created with the stored Snapshot
// Error: 409 Conflict if the portfolio configuration is invalid
// Error: 500 Internal Server Error if the save fails
func (h *SnapshotHandler) Create(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshotService.TakeSnapshot(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioInvalid) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrPortfolioInvalid.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveSnapshot.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, snapshot)
}

// List handles GET requests to list stored snapshots, newest first, without
// payloads.
//
// Endpoint: GET /api/snapshots
// Response: 200 OK with array of Snapshot
func (h *SnapshotHandler) List(w http.ResponseWriter, _ *http.Request) {
	snapshots, err := h.snapshotService.ListSnapshots()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSnapshots.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}

// Get handles GET requests to retrieve one snapshot, including its payload.
//
// Endpoint: GET /api/snapshots/{uuid}
// Response: 200 OK with Snapshot
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if no snapshot with that ID exists
func (h *SnapshotHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	snapshot, err := h.snapshotService.GetSnapshot(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrSnapshotNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSnapshotNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSnapshots.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}

// Delete handles DELETE requests to remove a snapshot.
//
// Endpoint: DELETE /api/snapshots/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if no snapshot with that ID exists
func (h *SnapshotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.snapshotService.DeleteSnapshot(id); err != nil {
		if errors.Is(err, apperrors.ErrSnapshotNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSnapshotNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSnapshots.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
