package adapter_bubbletea

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/modal/adapter-bubbletea/highlighter"
	"github.com/ionut-t/modal/core"
	"github.com/rivo/uniseg"
)

type Theme struct {
	NormalModeStyle        lipgloss.Style
	InsertModeStyle        lipgloss.Style
	ReplaceModeStyle       lipgloss.Style
	VisualModeStyle        lipgloss.Style
	CommandModeStyle       lipgloss.Style
	StatusLineStyle        lipgloss.Style
	CommandLineStyle       lipgloss.Style
	MessageStyle           lipgloss.Style
	LineNumberStyle        lipgloss.Style
	CurrentLineNumberStyle lipgloss.Style
	SelectionStyle         lipgloss.Style
	ErrorStyle             lipgloss.Style
	HighlightYankStyle     lipgloss.Style
	PlaceholderStyle       lipgloss.Style
}

var DefaultTheme = Theme{
	NormalModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
	InsertModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("26")).Foreground(lipgloss.Color("255")),
	ReplaceModeStyle:       lipgloss.NewStyle().Background(lipgloss.Color("160")).Foreground(lipgloss.Color("255")),
	VisualModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("127")).Foreground(lipgloss.Color("255")),
	CommandModeStyle:       lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("255")),
	CommandLineStyle:       lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")),
	StatusLineStyle:        lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	MessageStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	LineNumberStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(4).Align(lipgloss.Right),
	CurrentLineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(4).Align(lipgloss.Right),
	SelectionStyle:         lipgloss.NewStyle().Background(lipgloss.Color("237")),
	HighlightYankStyle:     lipgloss.NewStyle().Background(lipgloss.Color("220")).Foreground(lipgloss.Color("0")).Bold(true),
	PlaceholderStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

type cursorBlinkMsg struct{}
type cursorBlinkCanceledMsg struct{}
type resumeBlinkCycleMsg struct{}

type CursorMode int

const (
	CursorSteady CursorMode = iota
	CursorBlink
)

const cursorBlinkInterval = 500 * time.Millisecond
const cursorActivityResetDelay = 250 * time.Millisecond
const messageDuration = 3 * time.Second

type cursorBlinkContext struct {
	ctx    context.Context
	cancel context.CancelFunc
}

type Model struct {
	editor             core.Editor
	viewport           viewport.Model
	width              int
	height             int
	leftCol            int // First buffer column shown
	showLineNumbers    bool
	showTildeIndicator bool
	showStatusLine     bool
	showMessages       bool
	theme              Theme
	StatusLineFunc     func() string
	err                error
	message            string
	yanked             bool
	yankStart          int // Offset of the flashed yank
	yankLength         int
	disableVimMode     bool
	highlightedWords   map[string]lipgloss.Style
	isFocused          bool
	placeholder        string
	cursorMode         CursorMode
	cursorVisible      bool
	cursorBlinkContext *cursorBlinkContext
	clearMsgCancel     context.CancelFunc
	highlighter        *highlighter.Highlighter
	language           string
	highlighterTheme   string
}

// ErrorMsg reports a rejected key or a failed host action.
type ErrorMsg struct {
	ID    core.ErrorId
	Error error
}

type SaveMsg struct {
	Content string
}

type QuitMsg struct{}

type MessageMsg struct {
	ID      string
	Message string
}

type YankMsg struct {
	Content  string
	LineWise bool
}

type PasteMsg struct {
	Content string
}

type DeleteMsg struct {
	Content string
}

type clearMsg struct{}

type commandMsg struct{}

// yankedMsg flashes the yanked text and forwards YankMsg to the consumer.
type yankedMsg struct {
	Content  string
	LineWise bool
}

type clearYankMsg struct{}

// editorSignalMsg carries one message translated from the editor signal
// channel. Receiving it re-arms the listener.
type editorSignalMsg struct {
	msg tea.Msg
}

func (m *Model) dispatchClearMsg(duration time.Duration) tea.Cmd {
	if m.clearMsgCancel != nil {
		m.clearMsgCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	m.clearMsgCancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return clearMsg{}
		}
		return nil
	}
}

func (m *Model) dispatchClearYankMsg() tea.Cmd {
	return tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
		return clearYankMsg{}
	})
}

type clipboardImpl struct{}

func (c *clipboardImpl) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (c *clipboardImpl) Read() (string, error) {
	return clipboard.ReadAll()
}

// New creates an editor model of the given size using the system clipboard.
// opts configure the underlying engine.
func New(width, height int, opts ...core.Option) Model {
	editor := core.New(&clipboardImpl{}, opts...)
	vp := viewport.New(width, height-2)

	m := Model{
		editor:           editor,
		viewport:         vp,
		showLineNumbers:  true,
		showStatusLine:   true,
		showMessages:     true,
		theme:            DefaultTheme,
		highlightedWords: make(map[string]lipgloss.Style),
		cursorMode:       CursorSteady,
		cursorVisible:    true,
		cursorBlinkContext: &cursorBlinkContext{
			ctx: context.Background(),
		},
	}

	m.SetSize(width, height)

	return m
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(1, height-2)

	m.syncViewportState()
	m.render()
}

// SetBytes sets the content of the editor.
func (m *Model) SetBytes(content []byte) {
	m.editor.SetContent(content)
	m.leftCol = 0
	m.syncViewportState()
	m.render()
}

// SetContent sets the content of the editor from a string.
func (m *Model) SetContent(content string) {
	m.SetBytes([]byte(content))
}

// WithTheme allows setting a custom theme for the editor.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
}

// SetLanguage sets the programming language for syntax highlighting.
//
// If the language is empty, syntax highlighting will be disabled.
//
// The theme parameter allows specifying a Chroma theme for the syntax highlighter.
// For a full list of available themes, see: https://github.com/alecthomas/chroma/blob/master/styles
func (m *Model) SetLanguage(language string, theme string) {
	if m.language == language && m.highlighterTheme == theme {
		return
	}

	m.language = language
	m.highlighterTheme = theme
	if language == "" {
		m.highlighter = nil
		return
	}

	m.highlighter = highlighter.New(language, theme)
}

// WithSyntaxHighlighter allows setting a custom syntax highlighter.
func (m *Model) WithSyntaxHighlighter(highlighter *highlighter.Highlighter) {
	m.highlighter = highlighter
}

// DispatchMessage allows setting a message to be displayed in the command line for a specified duration.
func (m *Model) DispatchMessage(message string, duration time.Duration) tea.Cmd {
	m.message = message
	m.err = nil

	return m.dispatchClearMsg(duration)
}

// DispatchError allows setting an error to be displayed in the command line for a specified duration.
func (m *Model) DispatchError(err error, duration time.Duration) tea.Cmd {
	m.err = err
	m.message = ""

	return m.dispatchClearMsg(duration)
}

// HideLineNumbers controls whether to show line numbers in the viewport.
func (m *Model) HideLineNumbers(hide bool) {
	m.showLineNumbers = !hide
	m.syncViewportState()
}

// ShowRelativeLineNumbers controls whether line numbers are relative to the cursor.
// If Vim mode is disabled, this will not have any effect.
func (m *Model) ShowRelativeLineNumbers(show bool) {
	if m.disableVimMode {
		return
	}

	m.editor.ShowRelativeLineNumbers(show)
}

// ShowTildeIndicator controls whether rows past the end of the buffer show a tilde.
// If line numbers are hidden, this will not have any effect.
func (m *Model) ShowTildeIndicator(show bool) {
	m.showTildeIndicator = show
}

// HideStatusLine controls whether to show the status line at the bottom of the viewport.
func (m *Model) HideStatusLine(hide bool) {
	m.showStatusLine = !hide
}

// ShowMessages controls whether engine messages such as "changes saved"
// are shown in the command line.
func (m *Model) ShowMessages(show bool) {
	m.showMessages = show
}

// SetReadOnly makes every edit fail with core.ErrBufferReadOnly.
func (m *Model) SetReadOnly(readOnly bool) {
	m.editor.GetBuffer().SetReadOnly(readOnly)
}

func (m *Model) IsReadOnly() bool {
	return m.editor.GetBuffer().IsReadOnly()
}

// GetSavedContent returns the content as of the last save.
func (m *Model) GetSavedContent() string {
	return m.editor.GetBuffer().GetSavedContent()
}

// GetCurrentContent returns the current content of the editor buffer.
func (m *Model) GetCurrentContent() string {
	return m.editor.GetBuffer().GetCurrentContent()
}

// HasChanges checks if the editor has unsaved changes
func (m *Model) HasChanges() bool {
	return m.editor.GetBuffer().IsModified()
}

// GetEditor returns the underlying editor instance
func (m *Model) GetEditor() core.Editor {
	return m.editor
}

// DisableVimMode turns the editor into a plain text area that is always in
// insert mode.
func (m *Model) DisableVimMode(disable bool) {
	m.disableVimMode = disable
	m.editor.DisableVimMode(disable)
}

func (m *Model) DisableCommandMode(disable bool) {
	m.editor.DisableCommandMode(disable)
}

func (m *Model) DisableInsertMode(disable bool) {
	m.editor.DisableInsertMode(disable)
}

func (m *Model) DisableReplaceMode(disable bool) {
	m.editor.DisableReplaceMode(disable)
}

func (m *Model) DisableVisualMode(disable bool) {
	m.editor.DisableVisualMode(disable)
}

func (m *Model) DisableVisualLineMode(disable bool) {
	m.editor.DisableVisualLineMode(disable)
}

// SetHighlightedWords styles every occurrence of the given words.
func (m *Model) SetHighlightedWords(words map[string]lipgloss.Style) {
	m.highlightedWords = words
}

// Focus sets the editor to focused state.
func (m *Model) Focus() {
	m.isFocused = true
	m.cursorVisible = true
}

// Blur sets the editor to unfocused state.
func (m *Model) Blur() {
	m.isFocused = false
	m.cursorVisible = false
}

func (m *Model) IsFocused() bool {
	return m.isFocused
}

func (m *Model) Mode() core.Mode {
	return m.editor.Mode()
}

func (m *Model) SetNormalMode() {
	m.editor.SetNormalMode()
}

func (m *Model) SetInsertMode() {
	m.editor.SetInsertMode()
}

// SetPlaceholder sets the text shown while the buffer is empty.
func (m *Model) SetPlaceholder(placeholder string) {
	m.placeholder = placeholder
}

func (m *Model) IsEmpty() bool {
	return m.editor.GetBuffer().IsEmpty()
}

// SetCursorMode sets the cursor mode for the editor.
// It can be either CursorSteady or CursorBlink.
func (m *Model) SetCursorMode(mode CursorMode) {
	m.cursorMode = mode
	m.cursorVisible = m.isFocused
}

// SetCursorPosition moves the cursor. The position is clamped to the buffer.
func (m *Model) SetCursorPosition(row, col int) error {
	if row < 0 || col < 0 {
		return fmt.Errorf("invalid cursor position: (%d, %d)", row, col)
	}

	m.editor.SetCursor(core.Cursor{Position: core.Position{Row: row, Col: col}, Preferred: col})
	m.editor.ScrollViewport()
	m.render()

	return nil
}

// SetCursorPositionEnd moves the cursor past the last character of the buffer.
func (m *Model) SetCursorPositionEnd() {
	buffer := m.editor.GetBuffer()
	lastLine := buffer.LineCount() - 1
	col := buffer.LineRuneCount(lastLine)

	m.editor.SetCursor(core.Cursor{Position: core.Position{Row: lastLine, Col: col}, Preferred: col})
	m.editor.ScrollViewport()
	m.render()
}

// SetMaxHistory sets the maximum number of undo entries. The default is 1000.
func (m *Model) SetMaxHistory(max uint32) {
	m.editor.SetMaxHistory(max)
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listenForEditorUpdate(), m.CursorBlink())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.IsFocused() {
			break
		}

		if m.editor.GetState().Quit {
			return m, tea.Quit
		}

		if err := m.editor.Process(convertBubbleKey(msg)...); err != nil {
			cmds = append(cmds, func() tea.Msg {
				return errorMsg(err)
			})
		}

		m.cursorVisible = true
		if m.cursorBlinkContext != nil && m.cursorBlinkContext.cancel != nil {
			m.cursorBlinkContext.cancel()
		}

		if m.cursorMode == CursorBlink {
			cmds = append(cmds, m.restartBlinkCycleCmd())
		}

		m.editor.ScrollViewport()

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			break
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollBy(-3)
		case tea.MouseButtonWheelDown:
			m.scrollBy(3)
		}

	case editorSignalMsg:
		cmds = append(cmds, m.listenForEditorUpdate())
		if msg.msg != nil {
			inner := msg.msg
			cmds = append(cmds, func() tea.Msg { return inner })
		}

	case MessageMsg:
		if m.showMessages && msg.Message != "" {
			cmds = append(cmds, m.DispatchMessage(msg.Message, messageDuration))
		}

	case commandMsg:
		m.message = ""
		m.err = nil
		if m.clearMsgCancel != nil {
			m.clearMsgCancel()
		}

	case clearMsg:
		m.message = ""
		m.err = nil
		m.clearMsgCancel = nil

	case yankedMsg:
		m.yanked = true
		m.yankStart = m.editor.CaretOffset()
		m.yankLength = len([]rune(msg.Content))

		if m.showMessages {
			cmds = append(cmds, m.DispatchMessage(yankMessage(msg.Content, msg.LineWise), messageDuration))
		}

		cmds = append(cmds,
			func() tea.Msg {
				return YankMsg(msg)
			},
			m.dispatchClearYankMsg(),
		)

	case clearYankMsg:
		m.yanked = false

	case cursorBlinkMsg:
		if m.isFocused && m.cursorMode == CursorBlink {
			m.cursorVisible = !m.cursorVisible
			cmds = append(cmds, m.CursorBlink())
		} else {
			m.cursorVisible = m.isFocused
		}

	case resumeBlinkCycleMsg:
		if m.isFocused && m.cursorMode == CursorBlink {
			m.cursorVisible = true
			cmds = append(cmds, m.CursorBlink())
		}
	}

	m.render()

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	state := m.editor.GetState()

	content := m.viewport.View()

	if m.disableVimMode {
		return content
	}

	commandLine := m.theme.CommandLineStyle.Render(state.CommandLine)

	if m.message != "" {
		commandLine = m.theme.MessageStyle.
			Background(m.theme.CommandLineStyle.GetBackground()).
			Render(m.message)
	}

	if m.err != nil {
		commandLine = m.theme.ErrorStyle.
			Background(m.theme.CommandLineStyle.GetBackground()).
			Render(m.err.Error())
	}

	statusLine := m.getStatusLine()

	paddingWidth := m.width - lipgloss.Width(statusLine)
	if paddingWidth > 0 && m.showStatusLine {
		statusLine += m.theme.StatusLineStyle.Render(strings.Repeat(" ", paddingWidth))
	}

	paddingWidth = m.width - lipgloss.Width(commandLine)
	if paddingWidth > 0 {
		commandLine += m.theme.CommandLineStyle.Render(strings.Repeat(" ", paddingWidth))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		statusLine,
		commandLine,
	)
}

func (m *Model) getStatusLine() string {
	if !m.showStatusLine {
		return ""
	}

	if m.StatusLineFunc != nil {
		return m.StatusLineFunc()
	}

	state := m.editor.GetState()

	var statusLine string
	switch state.Mode {
	case core.NormalMode:
		statusLine = m.theme.NormalModeStyle.Render(" NORMAL ")
	case core.InsertMode:
		statusLine = m.theme.InsertModeStyle.Render(withCount(" INSERT ", state.InsertCount))
	case core.ReplaceMode:
		statusLine = m.theme.ReplaceModeStyle.Render(withCount(" REPLACE ", state.InsertCount))
	case core.VisualMode:
		statusLine = m.theme.VisualModeStyle.Render(" VISUAL ")
	case core.VisualLineMode:
		statusLine = m.theme.VisualModeStyle.Render(" VISUAL LINE ")
	case core.CommandMode:
		statusLine = m.theme.CommandModeStyle.Render(" COMMAND ")
	}

	if m.IsReadOnly() {
		statusLine += m.theme.StatusLineStyle.Render(" [RO]")
	}

	cursor := m.editor.GetCursor()

	cursorInfo := fmt.Sprintf("%d/%d ", cursor.Position.Row+1, m.displayColumn(cursor.Position)+1)

	width := m.width - (lipgloss.Width(cursorInfo) + lipgloss.Width(statusLine))
	gap := strings.Repeat(" ", max(0, width))

	statusLine += m.theme.StatusLineStyle.Render(
		gap + cursorInfo,
	)

	return statusLine
}

// displayColumn is the terminal column of pos, counting wide characters twice.
func (m *Model) displayColumn(pos core.Position) int {
	line := m.editor.GetBuffer().GetLineRunes(pos.Row)
	col := min(pos.Col, len(line))
	return uniseg.StringWidth(string(line[:col])) + pos.Col - col
}

func withCount(label string, count int) string {
	if count > 1 {
		return fmt.Sprintf("%s%dx ", label, count)
	}
	return label
}

func yankMessage(content string, lineWise bool) string {
	if !lineWise {
		return "selection yanked"
	}

	lines := strings.Count(content, "\n")
	if lines == 1 {
		return "1 line yanked"
	}
	return fmt.Sprintf("%d lines yanked", lines)
}

func errorMsg(err error) ErrorMsg {
	return ErrorMsg{ID: core.ErrorIdOf(err), Error: err}
}

func (m *Model) listenForEditorUpdate() tea.Cmd {
	signals := m.editor.GetUpdateSignalChan()

	return func() tea.Msg {
		signal := <-signals

		switch signal := signal.(type) {
		case core.MessageSignal:
			id, message := signal.Value()
			return editorSignalMsg{MessageMsg{ID: id, Message: message}}

		case core.ErrorSignal:
			id, err := signal.Value()
			return editorSignalMsg{ErrorMsg{ID: id, Error: err}}

		case core.YankSignal:
			content, lineWise := signal.Value()
			return editorSignalMsg{yankedMsg{Content: content, LineWise: lineWise}}

		case core.PasteSignal:
			return editorSignalMsg{PasteMsg{Content: signal.Value()}}

		case core.DeleteSignal:
			return editorSignalMsg{DeleteMsg{Content: signal.Value()}}

		case core.SaveSignal:
			return editorSignalMsg{SaveMsg{Content: signal.Value()}}

		case core.EnterCommandModeSignal:
			return editorSignalMsg{commandMsg{}}

		case core.QuitSignal:
			return editorSignalMsg{QuitMsg{}}
		}

		return editorSignalMsg{}
	}
}

// convertBubbleKey translates a bubbletea key into engine key events. Pasted
// text arrives as one message and becomes one event per rune.
func convertBubbleKey(msg tea.KeyMsg) []core.KeyEvent {
	var modifiers core.KeyModifiers
	if msg.Alt {
		modifiers |= core.ModAlt
	}

	key := core.KeyEvent{Modifiers: modifiers}

	switch msg.Type {
	case tea.KeyRunes:
		keys := make([]core.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			k := core.RuneKey(r)
			k.Modifiers |= modifiers
			keys = append(keys, k)
		}
		return keys
	case tea.KeyEnter:
		key.Key = core.KeyEnter
	case tea.KeySpace:
		key.Key = core.KeySpace
		key.Rune = ' '
	case tea.KeyEsc:
		key.Key = core.KeyEscape
	case tea.KeyBackspace, tea.KeyCtrlH:
		key.Key = core.KeyBackspace
	case tea.KeyTab:
		key.Key = core.KeyTab
		key.Rune = '\t'
	case tea.KeyUp:
		key.Key = core.KeyUp
	case tea.KeyDown:
		key.Key = core.KeyDown
	case tea.KeyLeft:
		key.Key = core.KeyLeft
	case tea.KeyRight:
		key.Key = core.KeyRight
	case tea.KeyHome:
		key.Key = core.KeyHome
	case tea.KeyEnd:
		key.Key = core.KeyEnd
	case tea.KeyDelete:
		key.Key = core.KeyDelete
	case tea.KeyInsert:
		key.Key = core.KeyInsert
	case tea.KeyPgUp:
		key.Key = core.KeyPageUp
	case tea.KeyPgDown:
		key.Key = core.KeyPageDown
	default:
		if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
			key = core.CtrlKey(rune('a' + msg.Type - tea.KeyCtrlA))
			key.Modifiers |= modifiers
			break
		}
		return nil
	}

	return []core.KeyEvent{key}
}

// CursorBlink is the main command for the blinking cursor effect (toggling visibility)
func (m *Model) CursorBlink() tea.Cmd {
	if m.cursorMode != CursorBlink || !m.isFocused {
		m.cursorVisible = m.isFocused
		return nil
	}

	if m.cursorBlinkContext != nil && m.cursorBlinkContext.cancel != nil {
		m.cursorBlinkContext.cancel()
	}

	ctx, cancel := context.WithTimeout(m.cursorBlinkContext.ctx, cursorBlinkInterval)
	m.cursorBlinkContext.cancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return cursorBlinkMsg{}
		}
		return cursorBlinkCanceledMsg{}
	}
}

// restartBlinkCycleCmd is used after user activity to delay the resumption of blinking.
func (m *Model) restartBlinkCycleCmd() tea.Cmd {
	if m.cursorMode != CursorBlink || !m.isFocused {
		m.cursorVisible = m.isFocused
		return nil
	}

	return tea.Tick(cursorActivityResetDelay, func(t time.Time) tea.Msg {
		return resumeBlinkCycleMsg{}
	})
}
