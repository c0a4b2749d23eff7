package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mossfield/hearth/internal/model"
)

const messagePrefix = "message:"

type MessageStore struct {
	kv *KV
}

func NewMessageStore(kv *KV) *MessageStore {
	return &MessageStore{kv: kv}
}

func (s *MessageStore) Create(userID, userName, text, imageURL string) (*model.Message, error) {
	m := model.Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserName:  userName,
		Text:      text,
		ImageURL:  imageURL,
		Timestamp: time.Now(),
	}
	if err := s.kv.Set(messagePrefix+m.ID, m); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return &m, nil
}

// List returns all messages, oldest first.
func (s *MessageStore) List() ([]model.Message, error) {
	raws, err := s.kv.GetByPrefix(messagePrefix)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	messages := make([]model.Message, 0, len(raws))
	for _, raw := range raws {
		var m model.Message
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		messages = append(messages, m)
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages, nil
}
