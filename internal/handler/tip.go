package handler

import (
	"log/slog"
	"net/http"

	"github.com/mossfield/hearth/internal/model"
	"github.com/mossfield/hearth/internal/store"
	"github.com/mossfield/hearth/internal/websocket"
)

type TipHandler struct {
	tipStore *store.TipStore
	hub      *websocket.Hub
	logger   *slog.Logger
}

func NewTipHandler(ts *store.TipStore, hub *websocket.Hub, logger *slog.Logger) *TipHandler {
	return &TipHandler{tipStore: ts, hub: hub, logger: logger}
}

func (h *TipHandler) List(w http.ResponseWriter, r *http.Request) {
	tips, err := h.tipStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list tips"})
		return
	}
	if tips == nil {
		tips = []model.Tip{}
	}
	writeJSON(w, http.StatusOK, tips)
}

func (h *TipHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	tip, err := h.tipStore.ToggleLike(id)
	if err != nil {
		h.logger.Error("toggle tip like", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update tip"})
		return
	}
	if tip == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "tip not found"})
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage("tip", "updated", id, nil))
	}

	writeJSON(w, http.StatusOK, tip)
}
