package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mossfield/hearth/internal/model"
	"github.com/mossfield/hearth/internal/store"
	"github.com/mossfield/hearth/internal/websocket"
)

type MessageHandler struct {
	messageStore *store.MessageStore
	hub          *websocket.Hub
	logger       *slog.Logger
}

func NewMessageHandler(ms *store.MessageStore, hub *websocket.Hub, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{messageStore: ms, hub: hub, logger: logger}
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"user_id"`
		UserName string `json:"user_name"`
		Text     string `json:"text"`
		ImageURL string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" && req.ImageURL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is empty"})
		return
	}

	msg, err := h.messageStore.Create(req.UserID, req.UserName, req.Text, req.ImageURL)
	if err != nil {
		h.logger.Error("create message", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create message"})
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage("message", "created", msg.ID, nil))
	}

	writeJSON(w, http.StatusCreated, msg)
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messageStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list messages"})
		return
	}
	if messages == nil {
		messages = []model.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}
