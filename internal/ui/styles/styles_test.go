// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/jeranaias/missionchat/internal/classify"
)

func TestLabelColor(t *testing.T) {
	tests := []struct {
		label classify.Label
		want  string
	}{
		{classify.Neutral, Cyan.Dark},
		{classify.Positive, Emerald.Dark},
		{classify.Negative, Rose.Dark},
		{classify.Label("Mixed"), TextSecondary.Dark},
	}
	for _, tt := range tests {
		if got := LabelColor(tt.label).Dark; got != tt.want {
			t.Errorf("LabelColor(%q).Dark = %s, want %s", tt.label, got, tt.want)
		}
	}
}

func TestLabelIndicator(t *testing.T) {
	seen := map[string]bool{}
	for _, l := range classify.Labels {
		ind := LabelIndicator(l)
		if ind == "" {
			t.Errorf("LabelIndicator(%s) is empty", l)
		}
		if seen[ind] {
			t.Errorf("LabelIndicator(%s) = %q duplicates another label", l, ind)
		}
		seen[ind] = true
	}
}

func TestRenderHelpers(t *testing.T) {
	if got := RenderWarning("disk full"); !strings.Contains(got, "[!] disk full") {
		t.Errorf("RenderWarning = %q", got)
	}
	if got := RenderSuccess("saved"); !strings.Contains(got, "[OK] saved") {
		t.Errorf("RenderSuccess = %q", got)
	}
}

func TestNewTheme(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantDark bool
	}{
		{"dark", "dark", true},
		{"LIGHT", "light", false},
	}
	for _, tt := range tests {
		theme := NewTheme(tt.name)
		if theme.Name != tt.wantName {
			t.Errorf("NewTheme(%q).Name = %q, want %q", tt.name, theme.Name, tt.wantName)
		}
		if theme.IsDark != tt.wantDark {
			t.Errorf("NewTheme(%q).IsDark = %v, want %v", tt.name, theme.IsDark, tt.wantDark)
		}
	}

	if got := NewTheme("neon").Name; got != "auto" {
		t.Errorf("unknown theme name = %q, want auto", got)
	}
}

func TestLayoutMode(t *testing.T) {
	theme := NewTheme("dark")
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutStacked},
		{99, LayoutStacked},
		{100, LayoutSplit},
		{200, LayoutSplit},
	}
	for _, tt := range tests {
		theme.SetSize(tt.width, 40)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("width %d: layout = %v, want %v", tt.width, got, tt.want)
		}
	}
}
