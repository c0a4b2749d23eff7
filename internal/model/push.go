package model

import "time"

type PushSubscription struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	Endpoint   string    `json:"endpoint"`
	P256dhKey  string    `json:"p256dh_key"`
	AuthKey    string    `json:"auth_key"`
	DeviceName string    `json:"device_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
