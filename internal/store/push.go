package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mossfield/hearth/internal/model"
)

const pushPrefix = "push:"

type PushStore struct {
	kv *KV
}

func NewPushStore(kv *KV) *PushStore {
	return &PushStore{kv: kv}
}

func pushKey(id string) string { return pushPrefix + id }

func (s *PushStore) Create(userID, endpoint, p256dh, auth, deviceName string) (*model.PushSubscription, error) {
	sub := model.PushSubscription{
		ID:         uuid.NewString(),
		UserID:     userID,
		Endpoint:   endpoint,
		P256dhKey:  p256dh,
		AuthKey:    auth,
		DeviceName: deviceName,
		CreatedAt:  time.Now(),
	}
	if err := s.kv.Set(pushKey(sub.ID), sub); err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	return &sub, nil
}

func (s *PushStore) List() ([]model.PushSubscription, error) {
	raws, err := s.kv.GetByPrefix(pushPrefix)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	subs := make([]model.PushSubscription, 0, len(raws))
	for _, raw := range raws {
		var sub model.PushSubscription
		if err := json.Unmarshal(raw, &sub); err != nil {
			return nil, fmt.Errorf("decode subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func (s *PushStore) Delete(id string) error {
	if err := s.kv.Delete(pushKey(id)); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

// DeleteByEndpoint prunes a subscription the push service reported gone.
func (s *PushStore) DeleteByEndpoint(endpoint string) error {
	subs, err := s.List()
	if err != nil {
		return err
	}
	for _, sub := range subs {
		if sub.Endpoint == endpoint {
			return s.Delete(sub.ID)
		}
	}
	return nil
}
