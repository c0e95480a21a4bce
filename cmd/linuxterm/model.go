package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vtembed/linuxterm/internal/ptyio"
	"github.com/vtembed/linuxterm/internal/session"
	"github.com/vtembed/linuxterm/internal/term/emulator"
)

// statusTickInterval drives the status line clock and the check for the
// session (C8) having reached DONE; content refreshes themselves arrive
// as termHost's own refreshMsg the moment C9 flushes a dirty tick.
const statusTickInterval = 150 * time.Millisecond

type statusTickMsg time.Time

func statusTickCmd() tea.Cmd {
	return tea.Tick(statusTickInterval, func(t time.Time) tea.Msg { return statusTickMsg(t) })
}

// Model is the Bubbletea model for the linuxterm demo host: one PTY
// Endpoint (C6), one Emulator Facade (C5), one View Adapter (C9) backed
// by termHost, driven by a Session Loop (C8) running on its own
// goroutine. Grounded on the teacher's internal/app.Model shape
// (Update/View/handleKey split), stripped of every tab/pane/dialog
// concept the multiplexer needed and this single-view emulator doesn't.
type Model struct {
	host  *termHost
	pty   *ptyio.Endpoint
	emu   *emulator.Facade
	sess  *session.Session
	title string

	width, height int
	quitting      bool
	palette       map[string]string
	theme         Theme
}

func newModel(host *termHost, pty *ptyio.Endpoint, emu *emulator.Facade, sess *session.Session, title string, palette map[string]string, theme Theme) Model {
	return Model{
		host:    host,
		pty:     pty,
		emu:     emu,
		sess:    sess,
		title:   title,
		palette: palette,
		theme:   theme,
	}
}

func (m Model) Init() tea.Cmd {
	return statusTickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		rows := msg.Height - 1 // reserve one row for the status line
		if rows < 1 {
			rows = 1
		}
		m.host.setSize(rows, msg.Width)
		return m, nil

	case refreshMsg:
		return m, nil

	case statusTickMsg:
		if m.sess.State() == session.StateDone {
			m.quitting = true
			return m, tea.Quit
		}
		return m, statusTickCmd()

	case tea.KeyMsg:
		if msg.Type == quitKey {
			m.quitting = true
			m.host.quit()
			return m, tea.Quit
		}
		if b, ok := encodeKey(msg, m.emu.ApplicationModeEnabled()); ok {
			m.pty.SendBytes(b)
		}
		return m, nil

	case tea.MouseMsg:
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return "linuxterm: session closed\r\n"
	}
	if m.width == 0 || m.height == 0 {
		return "linuxterm: starting..."
	}

	snap := m.host.snapshot()

	var b strings.Builder
	for row := 0; row < snap.rows; row++ {
		b.WriteString(m.renderRow(row, snap))
		b.WriteByte('\n')
	}
	b.WriteString(m.renderStatus(snap))
	return b.String()
}

func (m Model) renderRow(row int, snap snapshot) string {
	content := snap.lines[row]
	if len(content) < snap.cols {
		content += strings.Repeat(" ", snap.cols-len(content))
	}
	runes := []rune(content)
	if len(runes) > snap.cols {
		runes = runes[:snap.cols]
	}

	regions := snap.regionsByRow[row]
	var b strings.Builder
	pos := 0
	for _, r := range regions {
		if r.col > pos {
			b.WriteString(string(runes[pos:min(r.col, len(runes))]))
		}
		end := min(r.col+r.length, len(runes))
		if end > r.col && r.col < len(runes) {
			style := m.styleForScope(r.scope)
			b.WriteString(style.Render(string(runes[r.col:end])))
		}
		pos = end
		if pos < r.col {
			pos = r.col
		}
	}
	if pos < len(runes) {
		b.WriteString(string(runes[pos:]))
	}

	line := b.String()
	if !snap.cursorHidden && row == snap.cursorRow && snap.cursorCol < len(runes) {
		line = overlayCursor(runes, snap.cursorCol)
	}
	return line
}

// overlayCursor re-renders the row with the cursor cell reverse-videoed,
// used instead of the region-composited string above so the cursor is
// always visible regardless of what style regions cover that cell.
func overlayCursor(runes []rune, col int) string {
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	var b strings.Builder
	b.WriteString(string(runes[:col]))
	b.WriteString(cursorStyle.Render(string(runes[col])))
	if col+1 < len(runes) {
		b.WriteString(string(runes[col+1:]))
	}
	return b.String()
}

// styleForScope reverses viewadapter's "terminalview.<bg>_<fg>" naming
// back into a lipgloss style. "_" never appears inside a color name
// (named colors use a hyphen for the bright- prefix, truecolor is a bare
// hex string), so splitting on it is unambiguous.
func (m Model) styleForScope(scope string) lipgloss.Style {
	scope = strings.TrimPrefix(scope, "terminalview.")
	parts := strings.SplitN(scope, "_", 2)
	if len(parts) != 2 {
		return lipgloss.NewStyle()
	}
	bg, fg := parts[0], parts[1]
	return lipgloss.NewStyle().
		Background(resolveColor(bg, m.palette)).
		Foreground(resolveColor(fg, m.palette))
}

func (m Model) renderStatus(snap snapshot) string {
	style := lipgloss.NewStyle().
		Background(m.theme.StatusBarBG).
		Foreground(m.theme.StatusBarFG).
		Width(snap.cols)

	running := "running"
	if m.sess.State() != session.StateRunning {
		running = strings.ToLower(m.sess.State().String())
	}
	label := fmt.Sprintf(" %s — %s  [%dx%d]  (Ctrl+Q to quit)", m.title, running, snap.rows, snap.cols)
	if len(label) > snap.cols {
		label = label[:snap.cols]
	}
	return style.Render(label)
}
