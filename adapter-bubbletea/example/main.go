package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	editor "github.com/ionut-t/modal/adapter-bubbletea"
	"github.com/ionut-t/modal/core"
	"github.com/spf13/cobra"
)

const messageDuration = 3 * time.Second

type Model struct {
	editor editor.Model
	file   string
	logger *slog.Logger
}

func (m Model) Init() tea.Cmd {
	return m.editor.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor.SetSize(msg.Width-4, msg.Height-2)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}

	case editor.ErrorMsg:
		return m, m.editor.DispatchError(msg.Error, messageDuration)

	case editor.YankMsg:
		m.logger.Debug("yanked", "bytes", len(msg.Content), "line_wise", msg.LineWise)

	case editor.DeleteMsg:
		m.logger.Debug("deleted", "bytes", len(msg.Content))

	case editor.SaveMsg:
		filePath, err := expandHome(m.file)
		if err != nil {
			return m, m.editor.DispatchError(err, messageDuration)
		}

		if err := os.WriteFile(filePath, []byte(msg.Content), 0644); err != nil {
			m.logger.Error("save failed", "file", filePath, "error", err)
			return m, m.editor.DispatchError(err, messageDuration)
		}

		m.logger.Info("file saved", "file", filePath, "bytes", len(msg.Content))
		return m, m.editor.DispatchMessage(fmt.Sprintf("file saved to %s", m.file), messageDuration)

	case editor.QuitMsg:
		return m, tea.Quit
	}

	editorModel, cmd := m.editor.Update(msg)
	m.editor = editorModel.(editor.Model)

	return m, cmd
}

func (m Model) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.editor.View())
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, path[2:]), nil
}

type options struct {
	config          string
	language        string
	theme           string
	readOnly        bool
	relativeNumbers bool
	logFile         string
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "modal [file]",
		Short: "Edit a file with a modal, vim-style editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := "untitled.txt"
			if len(args) == 1 {
				file = args[0]
			}
			return run(cmd, file, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "YAML config file")
	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "Language for syntax highlighting (default: from file extension)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "Chroma style for syntax highlighting")
	cmd.Flags().BoolVar(&opts.readOnly, "read-only", false, "Open the file read-only")
	cmd.Flags().BoolVar(&opts.relativeNumbers, "relative-numbers", false, "Show relative line numbers")
	cmd.Flags().StringVar(&opts.logFile, "log", "", "Write debug logs to this file")

	return cmd
}

func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}

func run(cmd *cobra.Command, file string, opts options) error {
	logger, closeLog, err := newLogger(opts.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := editor.DefaultConfig()
	if opts.config != "" {
		if cfg, err = editor.LoadConfig(opts.config); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("language") {
		cfg.Language = opts.language
	} else if cfg.Language == "" {
		cfg.Language = strings.TrimPrefix(filepath.Ext(file), ".")
	}
	if flags.Changed("theme") {
		cfg.HighlightTheme = opts.theme
	}
	if flags.Changed("read-only") {
		cfg.ReadOnly = opts.readOnly
	}
	if flags.Changed("relative-numbers") {
		cfg.RelativeNumbers = opts.relativeNumbers
	}

	textEditor := editor.New(80, 20, core.WithLogger(logger))
	textEditor.Focus()

	path, err := expandHome(file)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}
	textEditor.SetBytes(content)
	textEditor.ApplyConfig(cfg)

	logger.Info("editing", "file", path, "language", cfg.Language, "read_only", cfg.ReadOnly)

	m := Model{
		editor: textEditor,
		file:   file,
		logger: logger,
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running bubbletea program: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
