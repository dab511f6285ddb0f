package adapter_bubbletea

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoadConfig_KeepsDefaults verifies keys missing from the file keep their defaults
func TestLoadConfig_KeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
relative_numbers: true
language: go
colors:
  normal: "21"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.RelativeNumbers)
	assert.Equal(t, "go", cfg.Language)
	assert.Equal(t, "21", cfg.Colors.Normal)

	assert.True(t, cfg.LineNumbers)
	assert.True(t, cfg.StatusLine)
	assert.Equal(t, uint32(1000), cfg.MaxHistory)
	assert.Equal(t, "catppuccin-mocha", cfg.HighlightTheme)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeConfig(t, "line_numbers: [oops"))
	require.Error(t, err)
}

func TestThemeColors_Theme(t *testing.T) {
	theme := ThemeColors{Normal: "21", Error: "196", Selection: "238"}.Theme()

	assert.Equal(t, lipgloss.Color("21"), theme.NormalModeStyle.GetBackground())
	assert.Equal(t, lipgloss.Color("196"), theme.ErrorStyle.GetForeground())
	assert.Equal(t, lipgloss.Color("238"), theme.SelectionStyle.GetBackground())
	assert.Equal(t, DefaultTheme.InsertModeStyle.GetBackground(), theme.InsertModeStyle.GetBackground())
}

// TestApplyConfig verifies every option reaches the model and the engine
func TestApplyConfig(t *testing.T) {
	m := newTestModel(t, 40, 10, "package main")

	cfg := DefaultConfig()
	cfg.LineNumbers = false
	cfg.RelativeNumbers = true
	cfg.StatusLine = false
	cfg.TildeIndicator = true
	cfg.Messages = false
	cfg.ReadOnly = true
	cfg.CursorBlink = true
	cfg.Language = "go"
	cfg.Colors.Normal = "21"

	m.ApplyConfig(cfg)

	assert.False(t, m.showLineNumbers)
	assert.True(t, m.GetEditor().GetState().RelativeNumbers)
	assert.False(t, m.showStatusLine)
	assert.True(t, m.showTildeIndicator)
	assert.False(t, m.showMessages)
	assert.True(t, m.IsReadOnly())
	assert.Equal(t, CursorBlink, m.cursorMode)
	require.NotNil(t, m.highlighter)
	assert.Equal(t, "Go", m.highlighter.Language())
	assert.Equal(t, lipgloss.Color("21"), m.theme.NormalModeStyle.GetBackground())
	assert.NotContains(t, m.View(), "NORMAL")
}
