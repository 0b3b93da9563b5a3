package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/fluidguard/fluidguard/internal/app"
	"github.com/fluidguard/fluidguard/internal/cli/formatter"
	"github.com/fluidguard/fluidguard/internal/domain"
)

type sessionState int

const (
	stateForm sessionState = iota
	stateEvaluating
	stateResult
)

type sessionKeyMap struct {
	Next key.Binding
	Back key.Binding
	Edit key.Binding
	Quit key.Binding
	Exit key.Binding
}

var sessionKeys = sessionKeyMap{
	Next: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
	Back: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "back")),
	Edit: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit parameters")),
	Quit: key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	Exit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "exit")),
}

// evaluationMsg carries the outcome of one submitted form.
type evaluationMsg struct {
	resp *app.EvaluateResponse
	err  error
}

// sessionModel is the interactive form-then-result loop. Each completed form
// produces exactly one evaluate call; editing re-opens the form pre-filled
// with the last submitted values.
type sessionModel struct {
	ctx    context.Context
	app    *App
	state  sessionState
	values *formValues
	form   *huh.Form
	width  int

	resp *app.EvaluateResponse
	err  error

	evaluations int
	cancelled   bool
}

func newSessionModel(ctx context.Context, a *App, params domain.PipelineParameters) *sessionModel {
	if ctx == nil {
		ctx = context.Background()
	}
	values := valuesFromParameters(params)
	return &sessionModel{
		ctx:    ctx,
		app:    a,
		state:  stateForm,
		values: values,
		form:   parameterForm(values),
	}
}

func (m *sessionModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case evaluationMsg:
		m.resp, m.err = msg.resp, msg.err
		m.evaluations++
		m.state = stateResult
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, sessionKeys.Exit) {
			return m, tea.Quit
		}
		switch m.state {
		case stateResult:
			switch {
			case key.Matches(msg, sessionKeys.Edit):
				return m, m.openForm()
			case key.Matches(msg, sessionKeys.Quit):
				return m, tea.Quit
			}
			return m, nil
		case stateEvaluating:
			return m, nil
		}
		// Escape on the form leaves without evaluating.
		if msg.Type == tea.KeyEsc {
			m.cancelled = true
			return m, tea.Quit
		}
	}

	if m.state != stateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	// A completed form stays completed, so leave stateForm before evaluating
	// or the next message would submit it again.
	if m.form.State == huh.StateCompleted {
		m.state = stateEvaluating
		return m, m.evaluate()
	}

	return m, cmd
}

// openForm rebuilds the form from the last submitted values.
func (m *sessionModel) openForm() tea.Cmd {
	m.form = parameterForm(m.values)
	m.state = stateForm
	return m.form.Init()
}

// evaluate returns a Cmd that runs the evaluate use case on the form values.
func (m *sessionModel) evaluate() tea.Cmd {
	params, convErr := m.values.parameters()
	if convErr != nil {
		return func() tea.Msg { return evaluationMsg{err: convErr} }
	}

	req := app.NewEvaluateRequest(params)
	req.Policy = m.app.Config.InputPolicy
	ctx, svc := m.ctx, m.app.Evaluate
	return func() tea.Msg {
		resp, err := svc.Evaluate(ctx, req)
		return evaluationMsg{resp: resp, err: err}
	}
}

func (m *sessionModel) View() string {
	var b strings.Builder

	switch m.state {
	case stateResult:
		if m.err != nil {
			b.WriteString(formatter.FormatEvaluateError(m.err))
		} else if m.resp != nil {
			b.WriteString(formatter.FormatPrediction(m.resp))
		}
	case stateEvaluating:
		b.WriteString(formatter.Dim("Evaluating pipeline parameters..."))
	default:
		b.WriteString(formatter.Header("Fluid Guard · pipeline parameters"))
		b.WriteString("\n\n")
		b.WriteString(m.form.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m *sessionModel) ShortHelp() []key.Binding {
	switch m.state {
	case stateResult:
		return []key.Binding{sessionKeys.Edit, sessionKeys.Quit}
	case stateEvaluating:
		return []key.Binding{sessionKeys.Exit}
	}
	return []key.Binding{sessionKeys.Next, sessionKeys.Back, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit"))}
}

func (m *sessionModel) renderStatusBar() string {
	var hints []string
	for _, b := range m.ShortHelp() {
		hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
	}
	sep := lipgloss.NewStyle().Foreground(formatter.ColorDim).Render(strings.Repeat("─", max(m.width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}
