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
		{79, 30, true},
		{120, 23, true},
		{80, 24, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderMinSizeMessage(t *testing.T) {
	out := RenderMinSizeMessage(60, 20)
	if !strings.Contains(out, "80 × 24") || !strings.Contains(out, "60 × 20") {
		t.Errorf("message lacks sizes:\n%s", out)
	}
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Home", Status{Indicator: "🚀", Percent: 50, Completed: 4}, 100)
	for _, want := range []string{"Rolwijzer", "Home", "50%", "✓ 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
	if h := lipgloss.Height(out); h != 3 {
		t.Errorf("header height = %d, want 3", h)
	}
}

func TestRenderFooter(t *testing.T) {
	out := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}, {Key: "Tab", Description: "Section"}}, 80)
	for _, want := range []string{"Esc", "Back", "Tab", "Section"} {
		if !strings.Contains(out, want) {
			t.Errorf("footer missing %q:\n%s", want, out)
		}
	}
}

func TestRenderFrame_FillsHeight(t *testing.T) {
	header := RenderHeader("Home", Status{}, 80)
	footer := RenderFooter(nil, 80)
	out := RenderFrame(header, "inhoud", footer, 80, 30)
	if h := lipgloss.Height(out); h != 30 {
		t.Errorf("frame height = %d, want 30", h)
	}
	if !strings.Contains(out, "inhoud") {
		t.Error("content missing from frame")
	}
}
