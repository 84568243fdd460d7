package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/studytrack/internal/model"
)

func TestApplyForcesBackground(t *testing.T) {
	Apply(model.ThemeLight)
	if lipgloss.HasDarkBackground() {
		t.Fatal("light theme left a dark background")
	}
	Apply(model.ThemeDark)
	if !lipgloss.HasDarkBackground() {
		t.Fatal("dark theme left a light background")
	}
}

func TestHeatCellStyleClamps(t *testing.T) {
	top := HeatCellStyle(HeatLevels - 1).GetBackground()
	if got := HeatCellStyle(HeatLevels + 3).GetBackground(); got != top {
		t.Fatalf("over-range level background=%v, want %v", got, top)
	}
	bottom := HeatCellStyle(0).GetBackground()
	if got := HeatCellStyle(-2).GetBackground(); got != bottom {
		t.Fatalf("negative level background=%v, want %v", got, bottom)
	}
}
