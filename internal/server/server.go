package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mossfield/hearth/internal/handler"
	"github.com/mossfield/hearth/internal/middleware"
	"github.com/mossfield/hearth/internal/model"
	"github.com/mossfield/hearth/internal/notify"
	"github.com/mossfield/hearth/internal/push"
	"github.com/mossfield/hearth/internal/store"
	ws "github.com/mossfield/hearth/internal/websocket"
)

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	choreH      *handler.ChoreHandler
	memberH     *handler.FamilyMemberHandler
	messageH    *handler.MessageHandler
	photoH      *handler.PhotoHandler
	tipH        *handler.TipHandler
	settingsH   *handler.SettingsHandler
	pushH       *handler.PushHandler
	backupH     *handler.BackupHandler
	detector    *notify.Detector
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, pushCfg push.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	kv := store.NewKV(db)
	choreStore := store.NewChoreStore(kv)
	memberStore := store.NewFamilyMemberStore(kv)
	messageStore := store.NewMessageStore(kv)
	photoStore := store.NewPhotoStore(kv)
	tipStore := store.NewTipStore(kv)
	settingsStore := store.NewSettingsStore(kv)
	pushStore := store.NewPushStore(kv)

	pushLogger := logger.With("component", "push")
	pushSvc := push.NewService(pushCfg.VAPIDPublicKey, pushCfg.VAPIDPrivateKey)

	// The detector polls the chore list and fires once per chore per
	// threshold; each firing goes out as a push notification and as a
	// websocket broadcast to connected displays.
	notifier := push.NewNotifier(pushSvc, pushStore, pushLogger)
	fire := func(c model.Chore, kind notify.Kind) {
		notifier.Notify(c, kind)
		hub.Broadcast(ws.NewMessage("notification", "fired", c.ID, map[string]any{
			"kind":  string(kind),
			"chore": c.Name,
		}))
	}
	detector := notify.NewDetector(func() []model.Chore {
		chores, err := choreStore.List()
		if err != nil {
			logger.Error("load chores for notification check", "error", err)
			return nil
		}
		return chores
	}, fire, logger.With("component", "notify"))

	return &Server{
		db:          db,
		hub:         hub,
		choreH:      handler.NewChoreHandler(choreStore, memberStore, detector, hub, logger.With("component", "chore")),
		memberH:     handler.NewFamilyMemberHandler(memberStore, hub, logger.With("component", "family_member")),
		messageH:    handler.NewMessageHandler(messageStore, hub, logger.With("component", "message")),
		photoH:      handler.NewPhotoHandler(photoStore, choreStore, hub, logger.With("component", "photo")),
		tipH:        handler.NewTipHandler(tipStore, hub, logger.With("component", "tip")),
		settingsH:   handler.NewSettingsHandler(settingsStore, hub, logger.With("component", "settings")),
		pushH:       handler.NewPushHandler(pushSvc, pushStore, logger.With("component", "push_handler")),
		backupH:     handler.NewBackupHandler(kv, hub, logger.With("component", "backup")),
		detector:    detector,
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// Detector returns the notification detector so main can manage its
// lifecycle.
func (s *Server) Detector() *notify.Detector {
	return s.detector
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Chore API routes
	mux.HandleFunc("POST /api/chores", s.choreH.Create)
	mux.HandleFunc("GET /api/chores", s.choreH.List)
	mux.HandleFunc("PUT /api/chores/{id}", s.choreH.Update)
	mux.HandleFunc("DELETE /api/chores/{id}", s.choreH.Delete)
	mux.HandleFunc("POST /api/chores/{id}/complete", s.choreH.Complete)
	mux.HandleFunc("POST /api/chores/{id}/uncomplete", s.choreH.Uncomplete)
	mux.HandleFunc("POST /api/chores/reset-day", s.choreH.ResetDay)
	mux.HandleFunc("POST /api/chores/adjust-positions", s.choreH.AdjustPositions)
	mux.HandleFunc("GET /api/dashboard", s.choreH.Dashboard)
	mux.HandleFunc("GET /api/stats/me", s.choreH.UserStats)
	mux.HandleFunc("GET /api/stats/family", s.choreH.FamilyStats)

	// Family member API routes
	mux.HandleFunc("GET /api/family-members", s.memberH.List)
	mux.HandleFunc("POST /api/family-members", s.memberH.Create)
	mux.HandleFunc("PUT /api/family-members/{id}", s.memberH.Update)
	mux.HandleFunc("DELETE /api/family-members/{id}", s.memberH.Delete)
	mux.HandleFunc("POST /api/family-members/{id}/pin", s.memberH.SetPIN)
	mux.HandleFunc("DELETE /api/family-members/{id}/pin", s.memberH.ClearPIN)
	mux.HandleFunc("POST /api/family-members/{id}/pin/verify", s.rateLimitedHandler(s.memberH.VerifyPIN))

	// Message board
	mux.HandleFunc("GET /api/messages", s.messageH.List)
	mux.HandleFunc("POST /api/messages", s.messageH.Create)

	// Chore photos
	mux.HandleFunc("GET /api/photos", s.photoH.List)
	mux.HandleFunc("POST /api/photos", s.rateLimitedHandler(s.photoH.Create))
	mux.HandleFunc("PUT /api/photos/{id}/comment", s.photoH.UpdateComment)
	mux.HandleFunc("DELETE /api/photos/{id}", s.photoH.Delete)

	// Cleaning tips
	mux.HandleFunc("GET /api/tips", s.tipH.List)
	mux.HandleFunc("POST /api/tips/{id}/like", s.tipH.ToggleLike)

	// Settings
	mux.HandleFunc("GET /api/settings", s.settingsH.Get)
	mux.HandleFunc("PUT /api/settings", s.settingsH.Update)

	// Push notification API routes
	mux.HandleFunc("GET /api/push/vapid-key", s.pushH.VAPIDPublicKey)
	mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
	mux.HandleFunc("POST /api/push/unsubscribe", s.pushH.Unsubscribe)
	mux.HandleFunc("GET /api/push/subscriptions", s.pushH.List)
	mux.HandleFunc("POST /api/push/test", s.pushH.SendTest)

	// Backup export/import
	mux.HandleFunc("GET /api/backup/export", s.backupH.Export)
	mux.HandleFunc("POST /api/backup/import", s.backupH.Import)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
