package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mossfield/hearth/internal/model"
	"github.com/mossfield/hearth/internal/store"
	"github.com/mossfield/hearth/internal/websocket"
)

type PhotoHandler struct {
	photoStore *store.PhotoStore
	choreStore *store.ChoreStore
	hub        *websocket.Hub
	logger     *slog.Logger
}

func NewPhotoHandler(ps *store.PhotoStore, cs *store.ChoreStore, hub *websocket.Hub, logger *slog.Logger) *PhotoHandler {
	return &PhotoHandler{photoStore: ps, choreStore: cs, hub: hub, logger: logger}
}

func (h *PhotoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChoreID     string   `json:"chore_id"`
		ImageURLs   []string `json:"image_urls"`
		Comment     string   `json:"comment"`
		TakenBy     string   `json:"taken_by"`
		TakenByName string   `json:"taken_by_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if len(req.ImageURLs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "at least one image is required"})
		return
	}
	if len(req.ImageURLs) > store.MaxPhotoImages {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("at most %d images per photo", store.MaxPhotoImages),
		})
		return
	}

	if req.ChoreID != "" {
		chore, err := h.choreStore.GetByID(req.ChoreID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check chore"})
			return
		}
		if chore == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "chore not found"})
			return
		}
	}

	photo, err := h.photoStore.Create(req.ChoreID, req.ImageURLs, req.Comment, req.TakenBy, req.TakenByName)
	if err != nil {
		h.logger.Error("create photo", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save photo"})
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage("photo", "created", photo.ID, nil))
	}

	writeJSON(w, http.StatusCreated, photo)
}

func (h *PhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	photos, err := h.photoStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list photos"})
		return
	}
	if photos == nil {
		photos = []model.ChorePhoto{}
	}
	writeJSON(w, http.StatusOK, photos)
}

func (h *PhotoHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	photo, err := h.photoStore.UpdateComment(id, req.Comment)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update photo"})
		return
	}
	if photo == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "photo not found"})
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage("photo", "updated", id, nil))
	}

	writeJSON(w, http.StatusOK, photo)
}

func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.photoStore.Delete(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete photo"})
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage("photo", "deleted", id, nil))
	}

	w.WriteHeader(http.StatusNoContent)
}
