package tui

import (
	"log/slog"

	"github.com/Veraticus/churn/internal/model"
	"github.com/Veraticus/churn/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents where the form is in its submit cycle.
type State int

const (
	// StateIdle accepts edits; no result is shown.
	StateIdle State = iota
	// StateCollecting builds the customer record from the fields.
	StateCollecting
	// StatePredicting waits for both models.
	StatePredicting
	// StateDisplaying shows the last assessment until the next key press.
	StateDisplaying
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCollecting:
		return "collecting"
	case StatePredicting:
		return "predicting"
	case StateDisplaying:
		return "displaying"
	default:
		return "unknown"
	}
}

// Assessor produces an assessment for one customer.
type Assessor interface {
	Assess(c model.CustomerData) (model.Assessment, error)
}

// Model holds the form state.
type Model struct {
	theme      themes.Theme
	assessor   Assessor
	lastError  error
	assessment *model.Assessment
	keymap     KeyMap
	help       help.Model
	config     Config
	fields     []field
	focus      int
	width      int
	height     int
	state      State
	quitting   bool
}

// New creates a form model backed by assessor.
func New(assessor Assessor, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	m := Model{
		theme:    cfg.Theme,
		assessor: assessor,
		keymap:   DefaultKeyMap(),
		help:     h,
		config:   cfg,
		fields:   newFields(cfg.Initial),
		width:    cfg.Width,
		height:   cfg.Height,
		state:    StateIdle,
	}
	m.fields[0].focus()
	return m
}

// State returns the current state.
func (m Model) State() State {
	return m.state
}

// Assessment returns the displayed assessment, if any.
func (m Model) Assessment() *model.Assessment {
	return m.assessment
}

// Err returns the error from the last submit, if any.
func (m Model) Err() error {
	return m.lastError
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case predictionMsg:
		return m.handlePrediction(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if f := m.focusedField(); f != nil && f.kind == kindNumber {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateCollecting, StatePredicting:
		// Input is ignored until the models answer.
		return m, nil
	case StateDisplaying:
		m.state = StateIdle
		m.assessment = nil
	}

	switch {
	case key.Matches(msg, m.keymap.Submit):
		return m.submit()
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keymap.Reset):
		return m.reset()
	case key.Matches(msg, m.keymap.Next):
		cmd := m.moveFocus(1)
		return m, cmd
	case key.Matches(msg, m.keymap.Prev):
		cmd := m.moveFocus(-1)
		return m, cmd
	}

	f := m.focusedField()
	if f == nil {
		return m, nil
	}

	switch f.kind {
	case kindChoice, kindToggle:
		switch {
		case key.Matches(msg, m.keymap.Left):
			f.cycle(-1)
		case key.Matches(msg, m.keymap.Right), key.Matches(msg, m.keymap.Toggle):
			f.cycle(1)
		}
		return m, nil
	default:
		if (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) && !accepts(msg.Runes) {
			return m, nil
		}
		m.lastError = nil
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return m, cmd
	}
}

// submit runs Collecting synchronously and hands the prediction off as a
// command so the Predicting state can render.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.state = StateCollecting
	m.lastError = nil
	m.assessment = nil

	customer, err := collect(m.fields, m.config.CreditScoreMax)
	if err != nil {
		m.lastError = err
		m.state = StateIdle
		return m, nil
	}

	m.state = StatePredicting
	assessor := m.assessor
	return m, func() tea.Msg {
		a, err := assessor.Assess(customer)
		return predictionMsg{assessment: a, err: err}
	}
}

func (m Model) handlePrediction(msg predictionMsg) Model {
	if m.state != StatePredicting {
		return m
	}
	if msg.err != nil {
		slog.Debug("Prediction failed", "error", msg.err)
		m.lastError = msg.err
		m.state = StateIdle
		return m
	}
	a := msg.assessment
	m.assessment = &a
	m.state = StateDisplaying
	return m
}

func (m Model) reset() (tea.Model, tea.Cmd) {
	m.fields = newFields(m.config.Initial)
	m.focus = 0
	m.lastError = nil
	m.assessment = nil
	m.state = StateIdle
	return m, m.fields[0].focus()
}

// moveFocus cycles through the fields and the submit button, which sits at
// index len(fields).
func (m *Model) moveFocus(delta int) tea.Cmd {
	if f := m.focusedField(); f != nil {
		f.blur()
	}
	n := len(m.fields) + 1
	m.focus = ((m.focus+delta)%n + n) % n
	if f := m.focusedField(); f != nil {
		return f.focus()
	}
	return nil
}

func (m *Model) focusedField() *field {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return nil
	}
	return &m.fields[m.focus]
}
