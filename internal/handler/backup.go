package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mossfield/hearth/internal/store"
	"github.com/mossfield/hearth/internal/websocket"
)

// BackupHandler exports and imports the entire key-value dataset as a
// single JSON document.
type BackupHandler struct {
	kv     *store.KV
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewBackupHandler(kv *store.KV, hub *websocket.Hub, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{kv: kv, hub: hub, logger: logger}
}

type backupDocument struct {
	Version    int                        `json:"version"`
	ExportedAt time.Time                  `json:"exported_at"`
	Data       map[string]json.RawMessage `json:"data"`
}

func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.kv.Export()
	if err != nil {
		h.logger.Error("export backup", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to export data"})
		return
	}

	now := time.Now()
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=hearth-backup-%s.json", now.Format("2006-01-02")))
	writeJSON(w, http.StatusOK, backupDocument{
		Version:    1,
		ExportedAt: now,
		Data:       data,
	})
}

// Import replaces the current dataset with the uploaded backup.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	var doc backupDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid backup file"})
		return
	}
	if doc.Data == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "backup contains no data"})
		return
	}

	if err := h.kv.Import(doc.Data); err != nil {
		h.logger.Error("import backup", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to import data"})
		return
	}

	h.logger.Info("backup imported", "keys", len(doc.Data))
	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage("backup", "imported", "", nil))
	}

	writeJSON(w, http.StatusOK, map[string]int{"imported": len(doc.Data)})
}
