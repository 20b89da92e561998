// Package tui renders a live panel debate in the terminal.
//
// The viewer is a passive observer: it subscribes to the event bus and
// folds published debate events into a scrolling transcript. It never
// talks to the network itself, so it can be attached to any debate the
// client package is driving.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mootlabs/moot/internal/event"
	"github.com/mootlabs/moot/internal/stream"
)

// debateMsg wraps a bus event for delivery into the bubbletea loop.
type debateMsg struct {
	ev event.Event
}

// streamDoneMsg signals that the underlying stream has ended.
type streamDoneMsg struct {
	err error
}

// Model is the bubbletea model for the debate viewer.
type Model struct {
	question string
	styles   styles
	maxLines int

	spinner  spinner.Model
	viewport viewport.Model
	ready    bool
	width    int
	height   int

	status   string
	lines    []string
	stances  map[string]stream.StanceSnapshot
	speakers []string // panelists in order of first appearance
	rounds   int
	paused   bool
	finished bool
	failure  string
}

// NewModel creates a viewer for one debate question.
func NewModel(question, theme string, maxTranscriptLines int) Model {
	st := newStyles(PaletteFor(theme))
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.spinner

	if maxTranscriptLines <= 0 {
		maxTranscriptLines = 2000
	}

	return Model{
		question: question,
		styles:   st,
		maxLines: maxTranscriptLines,
		spinner:  sp,
		stances:  make(map[string]stream.StanceSnapshot),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - m.chromeHeight()
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case debateMsg:
		m.applyEvent(msg.ev)
		m.refreshViewport()
		return m, nil

	case streamDoneMsg:
		m.finished = true
		if msg.err != nil && m.failure == "" {
			m.failure = msg.err.Error()
		}
		m.refreshViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// applyEvent folds one bus event into the transcript.
func (m *Model) applyEvent(ev event.Event) {
	switch e := ev.(type) {
	case event.StatusChangedEvent:
		m.status = e.Message

	case event.SourceFoundEvent:
		m.appendLine(m.styles.muted.Render(fmt.Sprintf("source: %s (%s)", e.Title, e.URL)))

	case event.PanelistSpokeEvent:
		m.noteSpeaker(e.Panelist)
		m.appendLine(m.styles.speaker.Render(e.Panelist+":") + " " + e.Response)

	case event.RoundRecordedEvent:
		m.rounds++
		m.paused = false
		m.appendLine(m.styles.title.Render(fmt.Sprintf("── round %d ──", e.Round.RoundNumber+1)))
		for _, name := range sortedKeys(e.Round.PanelResponses) {
			m.noteSpeaker(name)
			m.appendLine(m.styles.speaker.Render(name+":") + " " + e.Round.PanelResponses[name])
		}
		if e.Round.ConsensusReached {
			m.appendLine(m.styles.status.Render("consensus reached"))
		}

	case event.StanceChangedEvent:
		m.noteSpeaker(e.Panelist)
		m.stances[e.Panelist] = e.Stance

	case event.RolesAssignedEvent:
		for _, name := range sortedKeys(e.Roles) {
			m.appendLine(m.styles.muted.Render(fmt.Sprintf("%s takes the %s role", name, e.Roles[name])))
		}

	case event.DebatePausedEvent:
		m.paused = true
		m.appendLine(m.styles.pauseBox.Render("debate paused, awaiting your input"))

	case event.DebateCompletedEvent:
		m.finished = true
		m.paused = false
		if e.Result.Summary != "" {
			m.appendLine(m.styles.title.Render("── verdict ──"))
			m.appendLine(e.Result.Summary)
		}

	case event.DebateFailedEvent:
		m.finished = true
		m.failure = e.Message
		m.appendLine(m.styles.errText.Render("debate failed: " + e.Message))
	}
}

// appendLine adds a transcript line, trimming the oldest lines when the
// transcript exceeds its cap.
func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > m.maxLines {
		m.lines = m.lines[len(m.lines)-m.maxLines:]
	}
}

// noteSpeaker records a panelist the first time they appear.
func (m *Model) noteSpeaker(name string) {
	for _, s := range m.speakers {
		if s == name {
			return
		}
	}
	m.speakers = append(m.speakers, name)
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// chromeHeight is the number of rows used outside the viewport.
func (m Model) chromeHeight() int {
	// header + help bar + one stance row per panelist
	return 2 + len(m.speakers)
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n")
	if m.ready {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}
	b.WriteString(m.stanceView())
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) headerView() string {
	title := m.styles.title.Render("moot") + " " + m.styles.muted.Render(m.question)
	switch {
	case m.failure != "":
		return title + "  " + m.styles.errText.Render("failed")
	case m.finished:
		return title + "  " + m.styles.status.Render("completed")
	case m.paused:
		return title + "  " + m.styles.pauseBox.Render("paused")
	default:
		status := m.status
		if status == "" {
			status = "debating"
		}
		return title + "  " + m.spinner.View() + m.styles.status.Render(status)
	}
}

// stanceView renders one line per panelist with their current stance and
// confidence.
func (m Model) stanceView() string {
	var b strings.Builder
	for _, name := range m.speakers {
		snap, ok := m.stances[name]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s\n",
			m.styles.speaker.Render(name),
			m.styles.stanceBadge(snap.Stance),
			confidenceBar(snap.Confidence),
			m.styles.muted.Render(snap.CoreClaim)))
	}
	return b.String()
}

func (m Model) helpView() string {
	return m.styles.helpBar.Render(
		m.styles.helpKey.Render("q") + " quit  " +
			m.styles.helpKey.Render("↑/↓") + " scroll")
}

// Finished reports whether the viewer considers the debate over.
func (m Model) Finished() bool {
	return m.finished
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
