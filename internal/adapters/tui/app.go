package tui

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"provcheck/internal/adapters/report"
	"provcheck/internal/adapters/tui/styles"
	"provcheck/internal/application/commands"
	"provcheck/internal/domain"
)

// Phase represents where the check currently is
type Phase int

const (
	PhaseResolving Phase = iota
	PhaseScanning
	PhaseDone
	PhaseFailed
)

const recentLimit = 5

// ViewState contains the terminal width and the status message
type ViewState struct {
	Width      int
	Message    string
	MessageErr bool
}

// SetWidth updates the view width
func (s *ViewState) SetWidth(width int) {
	s.Width = width
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// App is the interactive check model
type App struct {
	ViewState

	events <-chan tea.Msg
	cancel context.CancelFunc
	copy   func(string) error
	theme  styles.Theme
	text   *report.TextWriter

	identifier string
	suffix     string

	phase    Phase
	mode     domain.Mode
	source   string
	done     int
	total    int
	matched  int
	missed   int
	recent   []domain.ScanResult
	spinner  spinner.Model
	progress progress.Model

	report *domain.Report
	err    error
}

// NewApp creates the model. Events are read from the channel until the check completes.
func NewApp(out io.Writer, identifier, suffix string, events <-chan tea.Msg, cancel context.CancelFunc) *App {
	theme := styles.NewTheme(lipgloss.NewRenderer(out))

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Spinner

	return &App{
		events:     events,
		cancel:     cancel,
		copy:       clipboard.WriteAll,
		theme:      theme,
		text:       report.NewTextWriter(out, suffix),
		identifier: identifier,
		suffix:     suffix,
		phase:      PhaseResolving,
		spinner:    s,
		progress: progress.New(
			progress.WithGradient(styles.GradientStart, styles.GradientEnd),
			progress.WithWidth(40),
		),
	}
}

// Init starts the spinner and the event listener
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, waitForEvent(a.events))
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetWidth(msg.Width)
		a.progress.Width = max(10, min(60, msg.Width-20))
		return a, nil

	case spinner.TickMsg:
		if a.phase == PhaseDone || a.phase == PhaseFailed {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case detectedMsg:
		a.mode = msg.Mode
		a.source = msg.Path
		return a, waitForEvent(a.events)

	case resolvedMsg:
		a.phase = PhaseScanning
		a.total = msg.Resolution.Total()
		return a, waitForEvent(a.events)

	case scannedMsg:
		a.done = msg.Done
		a.total = msg.Total
		if msg.Result.Outcome.IsMatch() {
			a.matched++
		} else {
			a.missed++
		}
		a.recent = append(a.recent, msg.Result)
		if len(a.recent) > recentLimit {
			a.recent = a.recent[len(a.recent)-recentLimit:]
		}
		return a, waitForEvent(a.events)

	case checkDoneMsg:
		if msg.Err != nil {
			a.phase = PhaseFailed
			a.err = msg.Err
			return a, tea.Quit
		}
		a.phase = PhaseDone
		a.report = msg.Report
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		if a.cancel != nil {
			a.cancel()
		}
		return a, tea.Quit

	case key.Matches(msg, Keys.CopyMissing):
		if a.report != nil {
			a.copyPaths("missing", a.report.MissingPaths())
		}

	case key.Matches(msg, Keys.CopyMatching):
		if a.report != nil {
			a.copyPaths("matching", a.report.MatchingPaths())
		}
	}
	return a, nil
}

func (a *App) copyPaths(label string, paths []string) {
	if len(paths) == 0 {
		a.SetMessage(fmt.Sprintf("No %s files to copy", label), false)
		return
	}
	if err := a.copy(strings.Join(paths, "\n")); err != nil {
		a.SetMessage(fmt.Sprintf("Clipboard unavailable: %v", err), true)
		return
	}
	a.SetMessage(fmt.Sprintf("Copied %d %s path(s)", len(paths), label), false)
}

// View renders the current phase
func (a *App) View() string {
	var sb strings.Builder

	sb.WriteString(a.theme.Title.Render(fmt.Sprintf("Checking %s files for %s", a.suffix, a.identifier)))
	sb.WriteString("\n")
	if a.source != "" {
		sb.WriteString(a.theme.Subtitle.Render(fmt.Sprintf("%s (%s)", a.source, a.mode)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	switch a.phase {
	case PhaseResolving:
		fmt.Fprintf(&sb, "%s Resolving input...\n", a.spinner.View())

	case PhaseScanning:
		sb.WriteString(a.scanningView())

	case PhaseDone:
		sb.WriteString(a.text.Render(a.report))
		sb.WriteString("\n")
		sb.WriteString(a.helpView())

	case PhaseFailed:
		sb.WriteString(a.theme.ErrorMsg.Render(fmt.Sprintf("❌ %v", a.err)))
		sb.WriteString("\n")
	}

	if a.Message != "" {
		style := a.theme.StatusBar
		if a.MessageErr {
			style = a.theme.ErrorMsg
		}
		sb.WriteString("\n")
		sb.WriteString(style.Render(a.Message))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (a *App) scanningView() string {
	var sb strings.Builder

	percent := 0.0
	if a.total > 0 {
		percent = float64(a.done) / float64(a.total)
	}
	fmt.Fprintf(&sb, "%s %s %d/%d\n", a.spinner.View(), a.progress.ViewAs(percent), a.done, a.total)
	fmt.Fprintf(&sb, "%s  %s\n\n",
		a.theme.Success.Render(fmt.Sprintf("✅ %d", a.matched)),
		a.theme.ErrorMsg.Render(fmt.Sprintf("❌ %d", a.missed)),
	)

	for _, r := range a.recent {
		mark := a.theme.ErrorMsg.Render("✗")
		if r.Outcome.IsMatch() {
			mark = a.theme.Success.Render("✓")
		}
		fmt.Fprintf(&sb, "  %s %s\n", mark, a.theme.MutedText.Render(filepath.Base(r.Candidate.Display)))
	}

	return sb.String()
}

func (a *App) helpView() string {
	bindings := []key.Binding{Keys.CopyMissing, Keys.CopyMatching, Keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, a.theme.HelpKey.Render(h.Key)+" "+a.theme.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, a.theme.HelpDesc.Render(" • "))
}

// Phase returns the current phase
func (a *App) Phase() Phase {
	return a.phase
}

// Run executes check while showing its progress. The returned report is nil
// when the user quits before the check completes.
func Run(ctx context.Context, out io.Writer, check *commands.CheckCommand, suffix string) (*domain.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tea.Msg, 64)
	app := NewApp(out, check.Identifier, suffix, events, cancel)

	finished := make(chan struct{})
	var (
		rep    *domain.Report
		runErr error
	)
	go func() {
		defer close(finished)
		obs := &channelObserver{ctx: ctx, events: events}
		rep, runErr = check.WithObserver(obs).Execute(ctx)
		obs.send(checkDoneMsg{Report: rep, Err: runErr})
	}()

	p := tea.NewProgram(app, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	cancel()
	<-finished

	if runErr != nil {
		return nil, runErr
	}
	if err != nil && rep == nil {
		return nil, err
	}
	return rep, nil
}
