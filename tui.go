package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pushmic/hotkey"
)

// TUI message types
type BindingMsg struct{ Name string }
type MuteMsg struct{ Muted bool }
type CaptureMsg struct{ Capturing bool }
type ErrorMsg struct{ Text string }
type tickMsg time.Time

const maxActivity = 50

type activity struct {
	at   time.Time
	text string
	err  bool
}

type tuiModel struct {
	binding    string
	muted      bool
	capturing  bool
	lastErr    string
	dropped    uint64
	captureKey bool
	activity   []activity

	width, height int

	onCapture func()
	onCancel  func()
	stats     func() uint64
	now       func() time.Time
}

var (
	styleLive    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleCapture = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleHelp    = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	styleHelpKey = lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Bold(true)
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

func newTUIModel(a *app) tuiModel {
	return tuiModel{
		muted:      true,
		captureKey: a.opts.captureKey,
		onCapture:  a.capture,
		onCancel:   a.cancelCapture,
		stats:      a.dropped,
		now:        time.Now,
	}
}

func newTUIProgram(a *app) *tea.Program {
	return tea.NewProgram(newTUIModel(a), tea.WithAltScreen())
}

func tuiTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) Init() tea.Cmd {
	return tuiTick()
}

func (m tuiModel) record(text string, isErr bool) tuiModel {
	m.activity = append(m.activity, activity{at: m.now(), text: text, err: isErr})
	if len(m.activity) > maxActivity {
		m.activity = m.activity[len(m.activity)-maxActivity:]
	}
	return m
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "c":
			if !m.capturing && m.onCapture != nil {
				m.onCapture()
			}
		case "esc":
			if m.capturing && m.onCancel != nil {
				m.onCancel()
			}
		}

	case tickMsg:
		if m.stats != nil {
			m.dropped = m.stats()
		}
		return m, tuiTick()

	case BindingMsg:
		if m.binding != "" && msg.Name != m.binding {
			m = m.record("trigger set to "+msg.Name, false)
		}
		m.binding = msg.Name
		m.lastErr = ""

	case MuteMsg:
		if msg.Muted != m.muted {
			if msg.Muted {
				m = m.record("muted", false)
			} else {
				m = m.record("live", false)
			}
		}
		m.muted = msg.Muted

	case CaptureMsg:
		m.capturing = msg.Capturing

	case ErrorMsg:
		m.lastErr = msg.Text
		m = m.record(msg.Text, true)
	}
	return m, nil
}

func (m tuiModel) statusLine() string {
	switch {
	case m.capturing:
		return styleCapture.Render("◌ press a key or mouse button… (esc to cancel)")
	case m.muted:
		return styleMuted.Render("● MUTED")
	default:
		return styleLive.Render("● LIVE")
	}
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	const statusWidth = 44

	var info []string
	info = append(info, m.statusLine(), "")
	binding := m.binding
	if binding == "" {
		binding = "none"
	}
	info = append(info, styleLabel.Render("trigger: ")+binding)
	if m.dropped > 0 {
		info = append(info, styleErr.Render(fmt.Sprintf("dropped events: %d", m.dropped)))
	}
	if m.lastErr != "" {
		for _, line := range wrapText("error: "+m.lastErr, statusWidth-2) {
			info = append(info, styleErr.Render(line))
		}
	}
	info = append(info, "")
	help := styleHelpKey.Render("c") + styleHelp.Render(" capture  ") +
		styleHelpKey.Render("q") + styleHelp.Render(" quit")
	info = append(info, help)
	if m.captureKey {
		info = append(info, styleHelpKey.Render(hotkey.Shortcut)+styleHelp.Render(" capture"))
	}
	info = append(info, styleHelp.Render("pushmic "+version))

	logWidth := m.width - statusWidth - 1
	if logWidth < 20 {
		logWidth = 20
	}

	var log strings.Builder
	log.WriteString(styleLabel.Render("Activity") + "\n\n")
	if len(m.activity) == 0 {
		log.WriteString(styleDim.Render("Hold " + binding + " to talk"))
	}
	// Newest first, as many as fit.
	rows := m.height - 2
	for i := len(m.activity) - 1; i >= 0 && rows > 0; i-- {
		a := m.activity[i]
		style := styleDim
		switch {
		case a.err:
			style = styleErr
		case a.text == "live":
			style = styleLive
		}
		log.WriteString(styleDim.Render(a.at.Format("15:04:05")) + " " + style.Render(a.text) + "\n")
		rows--
	}

	statusPanel := lipgloss.NewStyle().
		Width(statusWidth - 1).
		Height(m.height).
		PaddingLeft(1).
		Render(strings.Join(info, "\n"))
	logPanel := lipgloss.NewStyle().
		Width(logWidth).
		Height(m.height).
		PaddingLeft(1).
		Render(log.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, statusPanel, logPanel)
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) > width {
				lines = append(lines, line)
				line = w
			} else {
				line += " " + w
			}
		}
		lines = append(lines, line)
	}
	return lines
}
