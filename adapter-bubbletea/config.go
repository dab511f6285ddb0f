package adapter_bubbletea

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Config holds the host options that can be read from a YAML file.
type Config struct {
	LineNumbers     bool        `yaml:"line_numbers"`
	RelativeNumbers bool        `yaml:"relative_numbers"`
	StatusLine      bool        `yaml:"status_line"`
	TildeIndicator  bool        `yaml:"tilde_indicator"`
	Messages        bool        `yaml:"messages"`
	CursorBlink     bool        `yaml:"cursor_blink"`
	ReadOnly        bool        `yaml:"read_only"`
	MaxHistory      uint32      `yaml:"max_history"`
	Language        string      `yaml:"language"`
	HighlightTheme  string      `yaml:"highlight_theme"`
	Colors          ThemeColors `yaml:"colors"`
}

// ThemeColors overrides DefaultTheme. Empty values keep the default colour.
type ThemeColors struct {
	Normal            string `yaml:"normal"`
	Insert            string `yaml:"insert"`
	Replace           string `yaml:"replace"`
	Visual            string `yaml:"visual"`
	Command           string `yaml:"command"`
	StatusLine        string `yaml:"status_line"`
	CommandLine       string `yaml:"command_line"`
	Message           string `yaml:"message"`
	Error             string `yaml:"error"`
	LineNumber        string `yaml:"line_number"`
	CurrentLineNumber string `yaml:"current_line_number"`
	Selection         string `yaml:"selection"`
}

func DefaultConfig() Config {
	return Config{
		LineNumbers:    true,
		StatusLine:     true,
		Messages:       true,
		MaxHistory:     1000,
		HighlightTheme: "catppuccin-mocha",
	}
}

// LoadConfig reads a YAML config. Keys missing from the file keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Theme returns DefaultTheme with the configured colours applied. Mode colours
// are backgrounds; the rest are foregrounds except Selection.
func (c ThemeColors) Theme() Theme {
	theme := DefaultTheme

	background := func(style lipgloss.Style, color string) lipgloss.Style {
		if color == "" {
			return style
		}
		return style.Background(lipgloss.Color(color))
	}
	foreground := func(style lipgloss.Style, color string) lipgloss.Style {
		if color == "" {
			return style
		}
		return style.Foreground(lipgloss.Color(color))
	}

	theme.NormalModeStyle = background(theme.NormalModeStyle, c.Normal)
	theme.InsertModeStyle = background(theme.InsertModeStyle, c.Insert)
	theme.ReplaceModeStyle = background(theme.ReplaceModeStyle, c.Replace)
	theme.VisualModeStyle = background(theme.VisualModeStyle, c.Visual)
	theme.CommandModeStyle = background(theme.CommandModeStyle, c.Command)
	theme.StatusLineStyle = background(theme.StatusLineStyle, c.StatusLine)
	theme.CommandLineStyle = background(theme.CommandLineStyle, c.CommandLine)
	theme.SelectionStyle = background(theme.SelectionStyle, c.Selection)
	theme.MessageStyle = foreground(theme.MessageStyle, c.Message)
	theme.ErrorStyle = foreground(theme.ErrorStyle, c.Error)
	theme.LineNumberStyle = foreground(theme.LineNumberStyle, c.LineNumber)
	theme.CurrentLineNumberStyle = foreground(theme.CurrentLineNumberStyle, c.CurrentLineNumber)

	return theme
}

// ApplyConfig sets the model options from cfg.
func (m *Model) ApplyConfig(cfg Config) {
	m.HideLineNumbers(!cfg.LineNumbers)
	m.ShowRelativeLineNumbers(cfg.RelativeNumbers)
	m.HideStatusLine(!cfg.StatusLine)
	m.ShowTildeIndicator(cfg.TildeIndicator)
	m.ShowMessages(cfg.Messages)
	m.SetMaxHistory(cfg.MaxHistory)
	m.SetReadOnly(cfg.ReadOnly)
	m.WithTheme(cfg.Colors.Theme())
	m.SetLanguage(cfg.Language, cfg.HighlightTheme)

	if cfg.CursorBlink {
		m.SetCursorMode(CursorBlink)
	} else {
		m.SetCursorMode(CursorSteady)
	}
}
