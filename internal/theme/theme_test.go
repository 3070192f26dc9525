package theme

import "testing"

func TestStageFor(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, "Tiny Sprout"},
		{3, "Tiny Sprout"},
		{4, "Young Sapling"},
		{54, "Magnificent Bonsai"},
		{55, "Masterpiece Bonsai"},
		{400, "Masterpiece Bonsai"},
	}
	for _, tt := range tests {
		s := Garden.StageFor(tt.days)
		if s == nil || s.Name != tt.want {
			t.Errorf("StageFor(%d) = %v, want %s", tt.days, s, tt.want)
		}
	}
}

func TestStageFor_NotReached(t *testing.T) {
	if s := Ocean.StageFor(0); s != nil {
		t.Errorf("ocean at 0 days should have no stage, got %v", s)
	}
}

func TestNext(t *testing.T) {
	next := Mountain.Next(7)
	if next == nil || next.Name != "Camp One" {
		t.Errorf("Next(7) = %v, want Camp One", next)
	}
	if Mountain.Next(90) != nil {
		t.Error("no next stage above the summit")
	}
}

func TestByID(t *testing.T) {
	if _, ok := ByID("garden"); !ok {
		t.Error("garden theme missing")
	}
	if _, ok := ByID("desert"); ok {
		t.Error("unexpected theme")
	}
}
