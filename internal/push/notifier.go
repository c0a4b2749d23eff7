package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mossfield/hearth/internal/model"
	"github.com/mossfield/hearth/internal/notify"
	"github.com/mossfield/hearth/internal/store"
)

// Notifier turns detector threshold events into web push notifications
// fanned out to every subscription. It is the presentation collaborator
// the detector fires into; expired subscriptions are pruned as a side
// effect of delivery.
type Notifier struct {
	service *Service
	subs    *store.PushStore
	logger  *slog.Logger
}

func NewNotifier(service *Service, subs *store.PushStore, logger *slog.Logger) *Notifier {
	return &Notifier{service: service, subs: subs, logger: logger}
}

// Notify implements the detector callback.
func (n *Notifier) Notify(chore model.Chore, kind notify.Kind) {
	payload, ok := payloadFor(chore, kind)
	if !ok {
		return
	}

	subs, err := n.subs.List()
	if err != nil {
		n.logger.Error("list push subscriptions", "error", err)
		return
	}

	ctx := context.Background()
	for _, sub := range subs {
		if err := n.service.Send(ctx, &sub, payload); err != nil {
			if errors.Is(err, ErrExpired) {
				if err := n.subs.DeleteByEndpoint(sub.Endpoint); err != nil {
					n.logger.Error("prune expired subscription", "error", err)
				}
				continue
			}
			n.logger.Error("send push", "chore_id", chore.ID, "kind", string(kind), "error", err)
		}
	}
}

func payloadFor(chore model.Chore, kind notify.Kind) (Payload, bool) {
	icon := chore.Icon
	if chore.CustomIconURL != "" {
		icon = "📋"
	}

	switch kind {
	case notify.KindOnTime:
		return Payload{
			Title: fmt.Sprintf("%s Time for %s", icon, chore.Name),
			Body:  "Check it off once it's done",
			URL:   "/",
			Tag:   "chore-ontime-" + chore.ID,
		}, true
	case notify.KindDueSoon:
		return Payload{
			Title: fmt.Sprintf("⏰ %s %s is due soon", icon, chore.Name),
			Body:  "The deadline is coming up",
			URL:   "/",
			Tag:   "chore-duesoon-" + chore.ID,
		}, true
	case notify.KindPastDue:
		return Payload{
			Title: fmt.Sprintf("🚨 %s %s is past due", icon, chore.Name),
			Body:  "The deadline has passed",
			URL:   "/",
			Tag:   "chore-pastdue-" + chore.ID,
		}, true
	case notify.KindDelayed:
		return Payload{
			Title: fmt.Sprintf("⚠️ %s %s is still not done", icon, chore.Name),
			Body:  fmt.Sprintf("30 minutes past its %s schedule", chore.NotificationTime),
			URL:   "/",
			Tag:   "chore-delayed-" + chore.ID,
		}, true
	}
	return Payload{}, false
}
