package store

import "testing"

func TestPushStoreCreateList(t *testing.T) {
	s := NewPushStore(newTestKV(t))

	sub, err := s.Create("u1", "https://push.example/ep1", "p256dh-key", "auth-key", "kitchen tablet")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sub.ID == "" {
		t.Error("Create did not assign an ID")
	}

	subs, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("List returned %d subscriptions, want 1", len(subs))
	}
	if subs[0].Endpoint != "https://push.example/ep1" || subs[0].DeviceName != "kitchen tablet" {
		t.Errorf("List = %+v", subs[0])
	}
}

func TestPushStoreDeleteByEndpoint(t *testing.T) {
	s := NewPushStore(newTestKV(t))

	if _, err := s.Create("u1", "https://push.example/ep1", "k", "a", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create("u2", "https://push.example/ep2", "k", "a", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.DeleteByEndpoint("https://push.example/ep1"); err != nil {
		t.Fatalf("DeleteByEndpoint: %v", err)
	}

	subs, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(subs) != 1 || subs[0].Endpoint != "https://push.example/ep2" {
		t.Errorf("remaining subscriptions = %+v", subs)
	}

	// Unknown endpoints are a no-op.
	if err := s.DeleteByEndpoint("https://push.example/gone"); err != nil {
		t.Errorf("DeleteByEndpoint unknown: %v", err)
	}
}
