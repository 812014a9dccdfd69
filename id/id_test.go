package id

import "testing"

func TestNextWindowUniqueAndNonZero(t *testing.T) {
	var g Generator
	seen := make(map[WindowId]bool)
	for i := 0; i < 100; i++ {
		w := g.NextWindow()
		if w == 0 {
			t.Fatalf("WindowId must never be zero")
		}
		if seen[w] {
			t.Fatalf("duplicate WindowId %d", w)
		}
		seen[w] = true
	}
}

func TestNextContainerStartsAtOne(t *testing.T) {
	var g Generator
	if got := g.NextContainer(); got != 1 {
		t.Errorf("first ContainerId = %d, want 1", got)
	}
}

func TestIndependentCounters(t *testing.T) {
	var g Generator
	g.NextWindow()
	g.NextWindow()
	if got := g.NextContainer(); got != 1 {
		t.Errorf("ContainerId counter affected by WindowId calls: got %d, want 1", got)
	}
}

func TestWorkspaceDisplayName(t *testing.T) {
	cases := []struct {
		id   WorkspaceId
		want string
	}{
		{0, "1"},
		{8, "9"},
		{9, "10"},
	}
	for _, c := range cases {
		if got := c.id.DisplayName(); got != c.want {
			t.Errorf("WorkspaceId(%d).DisplayName() = %q, want %q", c.id, got, c.want)
		}
	}
}
