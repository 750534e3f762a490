// Package tui renders the contact form in a terminal.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/portfolio/internal/contactform"
)

const (
	focusName = iota
	focusEmail
	focusMessage
	focusCount
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// StateChangedMsg tells the model the controller moved on its own, e.g. a
// submit finished or the reset timer fired.
type StateChangedMsg struct{}

// SubmitDoneMsg carries the result of a submit.
type SubmitDoneMsg struct {
	Err error
}

// Model is the Bubble Tea model for the contact form.
type Model struct {
	ctrl    *contactform.Controller
	changed chan struct{}

	name    textinput.Model
	email   textinput.Model
	message textarea.Model
	spinner spinner.Model
	focus   int

	snap     contactform.Snapshot
	lastErr  error
	quitting bool
}

// New builds a model driving ctrl. It registers itself as the controller's
// observer.
func New(ctrl *contactform.Controller) Model {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 200
	name.Width = 40
	name.Focus()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 320
	email.Width = 40

	message := textarea.New()
	message.Placeholder = "Your message"
	message.ShowLineNumbers = false
	message.SetWidth(60)
	message.SetHeight(6)

	s := spinner.New()
	s.Spinner = spinner.Dot

	// Capacity 1: a pending signal already covers any later change since the
	// model re-reads the snapshot on delivery.
	changed := make(chan struct{}, 1)
	ctrl.Observe(func(contactform.Snapshot) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	return Model{
		ctrl:    ctrl,
		changed: changed,
		name:    name,
		email:   email,
		message: message,
		spinner: s,
		snap:    ctrl.Snapshot(),
	}
}

// Init starts the cursor blink, the spinner and the change listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForChange(m.changed))
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return StateChangedMsg{}
	}
}

func submit(ctrl *contactform.Controller) tea.Cmd {
	return func() tea.Msg {
		return SubmitDoneMsg{Err: ctrl.Submit(context.Background())}
	}
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case StateChangedMsg:
		m.syncFromController()
		return m, waitForChange(m.changed)

	case SubmitDoneMsg:
		m.lastErr = msg.Err
		m.syncFromController()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		m.ctrl.Close()
		return m, tea.Quit

	case "tab":
		return m, m.setFocus((m.focus + 1) % focusCount)

	case "shift+tab":
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)

	case "ctrl+s":
		if m.snap.State == contactform.StateSubmitting {
			return m, nil
		}
		m.snap.State = contactform.StateSubmitting
		m.snap.Status = ""
		return m, submit(m.ctrl)

	case "enter":
		if m.focus != focusMessage {
			return m, m.setFocus(m.focus + 1)
		}
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused input and copies its value into
// the controller.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
		m.ctrl.UpdateField(contactform.FieldName, m.name.Value())
	case focusEmail:
		m.email, cmd = m.email.Update(msg)
		m.ctrl.UpdateField(contactform.FieldEmail, m.email.Value())
	case focusMessage:
		m.message, cmd = m.message.Update(msg)
		m.ctrl.UpdateField(contactform.FieldMessage, m.message.Value())
	}
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	m.name.Blur()
	m.email.Blur()
	m.message.Blur()
	switch i {
	case focusName:
		return m.name.Focus()
	case focusEmail:
		return m.email.Focus()
	default:
		return m.message.Focus()
	}
}

// syncFromController pulls the controller state. Fields only change under
// the user's hands except on success, when the controller clears them.
func (m *Model) syncFromController() {
	snap := m.ctrl.Snapshot()
	if snap.State == contactform.StateSuccess && m.snap.State != contactform.StateSuccess {
		m.name.SetValue(snap.Fields.Name)
		m.email.SetValue(snap.Fields.Email)
		m.message.SetValue(snap.Fields.Message)
	}
	m.snap = snap
}

// View renders the form.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Get in touch"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Name") + "\n" + m.name.View() + "\n\n")
	b.WriteString(labelStyle.Render("Email") + "\n" + m.email.View() + "\n\n")
	b.WriteString(labelStyle.Render("Message") + "\n" + m.message.View() + "\n\n")

	switch m.snap.State {
	case contactform.StateSubmitting:
		b.WriteString(m.spinner.View() + " Sending...")
	case contactform.StateSuccess:
		b.WriteString(successStyle.Render(m.snap.Status))
	case contactform.StateError:
		b.WriteString(errorStyle.Render(m.snap.Status))
	default:
		b.WriteString("[ Send Message ]")
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab: next field • ctrl+s: send • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

// Snapshot exposes the state the view was last rendered from.
func (m Model) Snapshot() contactform.Snapshot {
	return m.snap
}
