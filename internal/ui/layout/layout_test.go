package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{64, 20, false},
		{63, 20, true},
		{64, 19, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeaderShowsTrailAndUser(t *testing.T) {
	h := RenderHeader(Header{Trail: []string{"Home", "Courses"}, User: "ada@example.com"}, 100)
	if !strings.Contains(h, "ada@example.com") {
		t.Errorf("header missing user: %q", h)
	}
	if !strings.Contains(h, "Home › Courses") {
		t.Errorf("header missing breadcrumb: %q", h)
	}
	if lipgloss.Height(h) != 1 {
		t.Errorf("header should be one line, got %d", lipgloss.Height(h))
	}

	h = RenderHeader(Header{Trail: []string{"Home"}}, 100)
	if !strings.Contains(h, "signed out") {
		t.Errorf("header missing signed-out marker: %q", h)
	}
}

func TestFitTrailDropsOuterEntries(t *testing.T) {
	trail := []string{"Home", "Courses", "Introduction to Artificial Intelligence"}

	if got := fitTrail(trail, 200); got != "Home › Courses › Introduction to Artificial Intelligence" {
		t.Errorf("wide: got %q", got)
	}
	if got := fitTrail(trail, 45); got != "… › Introduction to Artificial Intelligence" {
		t.Errorf("narrow: got %q", got)
	}
	if got := fitTrail(trail, 5); got != "" {
		t.Errorf("too narrow: got %q", got)
	}
}

func TestRenderFooterHints(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}, {Key: "Enter", Description: "Open"}}, 80)
	if !strings.Contains(f, "Esc") || !strings.Contains(f, "Back") || !strings.Contains(f, "Open") {
		t.Errorf("footer missing hint: %q", f)
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	out := RenderFrame("head", "body", "foot", 40, 12)
	if got := lipgloss.Height(out); got != 12 {
		t.Errorf("frame height = %d, want 12", got)
	}
}
