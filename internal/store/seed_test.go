package store

import "testing"

func TestSeedIfEmpty(t *testing.T) {
	kv := newTestKV(t)

	if err := SeedIfEmpty(kv); err != nil {
		t.Fatalf("SeedIfEmpty: %v", err)
	}

	members, err := NewFamilyMemberStore(kv).List()
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 3 {
		t.Errorf("seeded %d members, want 3", len(members))
	}

	chores, err := NewChoreStore(kv).List()
	if err != nil {
		t.Fatalf("list chores: %v", err)
	}
	if len(chores) != 9 {
		t.Errorf("seeded %d chores, want 9", len(chores))
	}
	positioned := 0
	for _, c := range chores {
		if c.Position != nil {
			positioned++
		}
	}
	if positioned != 7 {
		t.Errorf("%d chores placed on windows, want 7", positioned)
	}

	tips, err := NewTipStore(kv).List()
	if err != nil {
		t.Fatalf("list tips: %v", err)
	}
	if len(tips) != 3 {
		t.Errorf("seeded %d tips, want 3", len(tips))
	}
}

func TestSeedIfEmptyRunsOnce(t *testing.T) {
	kv := newTestKV(t)

	if err := SeedIfEmpty(kv); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := SeedIfEmpty(kv); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	chores, err := NewChoreStore(kv).List()
	if err != nil {
		t.Fatalf("list chores: %v", err)
	}
	if len(chores) != 9 {
		t.Errorf("second seed duplicated data: %d chores", len(chores))
	}
}
