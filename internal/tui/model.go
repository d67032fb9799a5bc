// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/verte-zerg/verbroulette/internal/achievement"
	"github.com/verte-zerg/verbroulette/internal/challenge"
	"github.com/verte-zerg/verbroulette/internal/model"
	"github.com/verte-zerg/verbroulette/internal/roulette"
	"github.com/verte-zerg/verbroulette/internal/session"
	"github.com/verte-zerg/verbroulette/internal/speech"
	"github.com/verte-zerg/verbroulette/internal/stats"
)

const speakTimeout = 10 * time.Second

type spinDoneMsg struct {
	ticket roulette.Ticket
}

type tickMsg struct {
	seq uint64
}

type speechDoneMsg struct {
	err error
}

// Options wires the UI to its collaborators.
type Options struct {
	Session session.Options
	// Speaker may be nil; SpeechNotice then explains why Listen is unavailable.
	Speaker      speech.Speaker
	SpeechNotice string
	// Bell receives the terminal bell on unlocks. Nil disables it.
	Bell io.Writer
}

// Model implements the Bubble Tea practice UI.
type Model struct {
	ctrl *session.Controller
	view session.View

	keys         keyMap
	help         help.Model
	spinner      spinner.Model
	catalogBar   progress.Model
	challengeBar progress.Model
	upper        cases.Caser
	title        cases.Caser

	speaker      speech.Speaker
	speechNotice string
	bell         io.Writer

	width     int
	height    int
	modeIndex int
	share     string
	flash     string
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	verbStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	stemStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	changeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	goodStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	badStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6E6E6E")).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel builds the controller from opts and wraps it in a UI model. The
// UI owns the controller; its hooks are replaced.
func NewModel(opts Options) (*Model, error) {
	m := &Model{
		keys:         newKeyMap(),
		help:         help.New(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(changeStyle)),
		catalogBar:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(30)),
		challengeBar: progress.New(progress.WithSolidFill("#C89A3A"), progress.WithoutPercentage(), progress.WithWidth(30)),
		upper:        cases.Upper(language.English),
		title:        cases.Title(language.English),
		speaker:      opts.Speaker,
		speechNotice: opts.SpeechNotice,
		bell:         opts.Bell,
	}
	sessOpts := opts.Session
	sessOpts.Hooks = session.Hooks{
		OnView:                func(v session.View) { m.view = v },
		OnAchievementUnlocked: m.onUnlock,
		OnFeedbackGiven:       m.onFeedback,
		OnChallengeFinished:   m.onChallengeFinished,
		OnError: func(err error) {
			logErrf("%v\n", err)
		},
	}
	ctrl, err := session.New(sessOpts)
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	m.view = ctrl.View()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		barWidth := min(max(msg.Width/3, 10), 50)
		m.catalogBar.Width = barWidth
		m.challengeBar.Width = barWidth
		return m, nil
	case spinner.TickMsg:
		if !m.view.Spinning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case spinDoneMsg:
		m.ctrl.CompleteSpin(msg.ticket)
		return m, nil
	case tickMsg:
		if m.ctrl.Tick(msg.seq) {
			return m, tickCmd(msg.seq)
		}
		return m, nil
	case speechDoneMsg:
		if msg.err != nil {
			m.ctrl.Notify(msg.err.Error())
		}
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Close()
		return tea.Quit
	case key.Matches(msg, m.keys.Spin):
		ticket, ok := m.ctrl.Spin()
		if !ok {
			return nil
		}
		m.share = ""
		m.flash = ""
		return tea.Batch(spinCmd(ticket), m.spinner.Tick)
	case key.Matches(msg, m.keys.Dismiss):
		if m.share != "" {
			m.share = ""
			return nil
		}
		m.ctrl.DismissVerb()
	case key.Matches(msg, m.keys.Good):
		m.ctrl.GiveFeedback(model.FeedbackPositive)
	case key.Matches(msg, m.keys.Bad):
		m.ctrl.GiveFeedback(model.FeedbackNegative)
	case key.Matches(msg, m.keys.Listen):
		return m.listen()
	case key.Matches(msg, m.keys.Share):
		m.share = stats.ShareText(m.view.Statistics, m.view.Current)
	case key.Matches(msg, m.keys.Reset):
		m.flash = ""
		m.ctrl.ResetStatistics()
	case key.Matches(msg, m.keys.Difficulty):
		if id, ok := nextUnlockedTier(m.view); ok {
			m.ctrl.SetDifficulty(id)
		}
	case key.Matches(msg, m.keys.NextMode):
		if m.view.Challenge.State == challenge.Idle && len(m.view.Modes) > 0 {
			m.modeIndex = (m.modeIndex + 1) % len(m.view.Modes)
		}
	case key.Matches(msg, m.keys.Challenge):
		if m.modeIndex >= len(m.view.Modes) {
			return nil
		}
		if m.ctrl.StartChallenge(m.view.Modes[m.modeIndex].ID) {
			m.flash = ""
			return tickCmd(m.view.Challenge.Session.Seq)
		}
	case key.Matches(msg, m.keys.Stop):
		m.ctrl.CompleteChallenge()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) listen() tea.Cmd {
	verb, ok := m.ctrl.Current()
	if !ok {
		return nil
	}
	if m.speaker == nil {
		notice := m.speechNotice
		if notice == "" {
			notice = speech.ErrUnavailable.Error()
		}
		m.ctrl.Notify(notice)
		return nil
	}
	speaker := m.speaker
	phrase := speech.Phrase(verb.Verb, verb.Past, verb.PastParticiple)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), speakTimeout)
		defer cancel()
		return speechDoneMsg{err: speaker.Speak(ctx, phrase)}
	}
}

func (m *Model) onUnlock(a achievement.Achievement) {
	m.flash = fmt.Sprintf("Achievement unlocked: %s (%s)", a.Title, a.Rarity)
	m.ring()
}

func (m *Model) ring() {
	if m.bell == nil {
		return
	}
	if err := speech.Bell(m.bell); err != nil {
		// Best-effort bell.
		_ = err
	}
}

func (m *Model) onFeedback(v model.VerbRecord, f model.Feedback) {
	if f == model.FeedbackPositive {
		m.flash = goodStyle.Render(fmt.Sprintf("Nice! %s, %s, %s", v.Verb, v.Past, v.PastParticiple))
		return
	}
	m.flash = badStyle.Render(fmt.Sprintf("Keep practicing %s, %s, %s", v.Verb, v.Past, v.PastParticiple))
}

func (m *Model) onChallengeFinished(res challenge.Result) {
	if res.NewRecord {
		m.flash = goodStyle.Render("New record!")
		m.ring()
	}
}

func spinCmd(t roulette.Ticket) tea.Cmd {
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return spinDoneMsg{ticket: t}
	})
}

func tickCmd(seq uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

func nextUnlockedTier(v session.View) (string, bool) {
	start := 0
	for i, t := range v.Tiers {
		if t.ID == v.Difficulty {
			start = i
			break
		}
	}
	for step := 1; step <= len(v.Tiers); step++ {
		t := v.Tiers[(start+step)%len(v.Tiers)]
		if t.Unlocked {
			return t.ID, t.ID != v.Difficulty
		}
	}
	return "", false
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{
		m.renderHeader(),
		renderStats(m.view),
		m.renderCard(),
	}
	if m.share != "" {
		sections = append(sections, panelStyle.Render(m.share))
	}
	sections = append(sections,
		m.renderChallenge(),
		lipgloss.JoinHorizontal(lipgloss.Top, renderAchievements(m.view), " ", renderTiers(m.view)),
	)
	if line := m.statusLine(); line != "" {
		sections = append(sections, line)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	footer := footerStyle.Render(m.help.View(m.keys))
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	footerHeight := lipgloss.Height(footer)
	if m.height <= footerHeight+2 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-footerHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, footerHeight, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderHeader() string {
	v := m.view
	name := v.Difficulty
	if tier, ok := v.SelectedTier(); ok {
		name = tier.Name
	}
	title := titleStyle.Render("VERB ROULETTE") + mutedStyle.Render("  "+name)
	bar := fmt.Sprintf("%s %d/%d verbs", m.catalogBar.ViewAs(v.Progress), v.Statistics.Total, v.CatalogSize)
	return lipgloss.JoinVertical(lipgloss.Left, title, bar)
}

func renderStats(v session.View) string {
	s := v.Statistics
	segments := []string{
		fmt.Sprintf("Regular %d", s.Regular),
		fmt.Sprintf("Irregular %d", s.Irregular),
		fmt.Sprintf("Streak %d (best %d)", s.CurrentStreak, s.BestStreak),
		fmt.Sprintf("Avg %.1fs", s.AverageElapsedMs/1000),
	}
	return mutedStyle.Render(strings.Join(segments, " · "))
}

func (m *Model) renderCard() string {
	v := m.view
	width := 40
	if m.width > 0 {
		width = max(m.width*7/10, 20)
	}
	var lines []string
	switch {
	case v.Spinning:
		lines = append(lines, m.spinner.View()+" spinning...")
	case v.Current != nil:
		verb := *v.Current
		lines = append(lines,
			verbStyle.Render(m.upper.String(verb.Verb))+mutedStyle.Render("  "+verb.Kind.Label()),
			wrapStyledRunes(buildFormsLine(verb.Verb, verb.Verb, verb.Past, verb.PastParticiple), width),
		)
		switch v.Feedback {
		case model.FeedbackPositive:
			lines = append(lines, goodStyle.Render("marked good"))
		case model.FeedbackNegative:
			lines = append(lines, badStyle.Render("marked for review"))
		}
	default:
		lines = append(lines, mutedStyle.Render("press space to spin"))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderChallenge() string {
	v := m.view
	c := v.Challenge
	switch c.State {
	case challenge.Running:
		s := c.Session
		ratio := 0.0
		if s.Mode.TargetVerbs > 0 {
			ratio = min(float64(s.VerbsCompleted)/float64(s.Mode.TargetVerbs), 1)
		}
		return fmt.Sprintf("%s %s  %s %d/%d",
			titleStyle.Render(s.Mode.Name),
			challenge.FormatClock(s.RemainingSeconds),
			m.challengeBar.ViewAs(ratio),
			s.VerbsCompleted, s.Mode.TargetVerbs,
		)
	case challenge.Completed:
		return challengeSummary(c.Result) + mutedStyle.Render("  (x to close)")
	}
	if len(v.Modes) == 0 {
		return ""
	}
	idx := min(m.modeIndex, len(v.Modes)-1)
	mode := v.Modes[idx]
	best := "none"
	if score, ok := v.BestScores[mode.ID]; ok {
		best = fmt.Sprintf("%d", score)
	}
	label := mode.Difficulty
	if label != "" {
		label = m.title.String(label)
	}
	return fmt.Sprintf("Challenge %s  %s  %s  best %s",
		titleStyle.Render(mode.Name),
		mutedStyle.Render(mode.Description),
		label,
		best,
	)
}

func challengeSummary(res challenge.Result) string {
	verdict := badStyle.Render("target missed")
	if res.Success {
		verdict = goodStyle.Render("target reached")
	}
	line := fmt.Sprintf("%s finished: %d/%d verbs, %s", res.Mode.Name, res.Completed, res.Mode.TargetVerbs, verdict)
	if res.NewRecord {
		line += fmt.Sprintf(", new record (was %d)", res.PreviousBest)
	}
	return line
}

func renderAchievements(v session.View) string {
	lines := []string{fmt.Sprintf("Achievements (%d/%d)", v.Summary.Unlocked, v.Summary.Total)}
	total := map[achievement.Category]int{}
	for _, a := range v.Achievements {
		total[a.Category]++
	}
	for _, cat := range achievement.Categories() {
		if total[cat] == 0 {
			continue
		}
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("  %s %d/%d", cat, v.Summary.ByCategory[cat], total[cat])))
	}
	for _, a := range v.NewlyUnlocked {
		lines = append(lines, changeStyle.Render("★ "+a.Title))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func renderTiers(v session.View) string {
	lines := []string{"Difficulty"}
	for _, t := range v.Tiers {
		marker := "  "
		if t.ID == v.Difficulty {
			marker = "> "
		}
		if t.Unlocked {
			lines = append(lines, marker+goodStyle.Render("✓ "+t.Name))
			continue
		}
		lines = append(lines, marker+mutedStyle.Render(fmt.Sprintf("· %s %d%%", t.Name, int(t.Progress*100))))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) statusLine() string {
	parts := make([]string, 0, 2)
	if m.flash != "" {
		parts = append(parts, m.flash)
	}
	if m.view.Notice != "" {
		parts = append(parts, mutedStyle.Render(m.view.Notice))
	}
	return strings.Join(parts, "  ")
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
