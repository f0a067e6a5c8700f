package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
)

const (
	loginEmail = iota
	loginPassword
)

// loginModel is the operator login gate. Authentication is local: the
// password unlocks the session store, and the email only labels the
// session. The backend itself has no user accounts.
type loginModel struct {
	email    textinput.Model
	password textinput.Model
	focus    int

	firstRun   bool
	confirming bool
	firstPass  string
	errMsg     string
}

// loginSubmitMsg is sent when the operator submits credentials.
type loginSubmitMsg struct {
	email    string
	password string
}

// loginErrMsg is sent when the session store rejects the password.
type loginErrMsg struct {
	err error
}

func newLoginModel(firstRun bool) loginModel {
	email := textinput.New()
	email.CharLimit = 128
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.CharLimit = 128
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return loginModel{
		email:    email,
		password: password,
		firstRun: firstRun,
	}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyTab) || msg.Type == tea.KeyDown {
			return m.setFocus((m.focus + 1) % 2), textinput.Blink
		}
		if msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp {
			return m.setFocus((m.focus + 1) % 2), textinput.Blink
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m.handleSubmit()
		}

	case loginErrMsg:
		m.errMsg = msg.err.Error()
		m.password.SetValue("")
		m.confirming = false
		m.firstPass = ""
		return m.setFocus(loginPassword), nil
	}

	return m.updateInput(msg)
}

func (m loginModel) setFocus(focus int) loginModel {
	m.focus = focus
	if focus == loginEmail {
		m.email.Focus()
		m.password.Blur()
	} else {
		m.email.Blur()
		m.password.Focus()
	}
	return m
}

func (m loginModel) updateInput(msg tea.Msg) (loginModel, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == loginEmail {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m loginModel) handleSubmit() (loginModel, tea.Cmd) {
	if m.focus == loginEmail {
		return m.setFocus(loginPassword), textinput.Blink
	}

	email := strings.TrimSpace(m.email.Value())
	pass := m.password.Value()

	if email == "" || !strings.Contains(email, "@") {
		m.errMsg = "enter a valid email"
		return m.setFocus(loginEmail), nil
	}
	if pass == "" {
		m.errMsg = "password is required"
		return m, nil
	}

	// first run: confirm the new password before creating the store
	if m.firstRun && !m.confirming {
		m.firstPass = pass
		m.confirming = true
		m.password.SetValue("")
		m.errMsg = ""
		return m, nil
	}

	if m.firstRun && m.confirming && pass != m.firstPass {
		m.errMsg = "passwords do not match"
		m.confirming = false
		m.firstPass = ""
		m.password.SetValue("")
		return m, nil
	}

	m.errMsg = ""
	return m, func() tea.Msg {
		return loginSubmitMsg{email: email, password: pass}
	}
}

func (m loginModel) View() string {
	title := lipgloss.NewStyle().Foreground(accent).Bold(true).Render("backoffice")
	sub := zstyle.MutedText.Render("finance back office")

	var passPrompt string
	switch {
	case m.firstRun && m.confirming:
		passPrompt = "confirm password:"
	case m.firstRun:
		passPrompt = "create password:"
	default:
		passPrompt = "password:"
	}

	s := fmt.Sprintf("\n  %s\n  %s\n\n", title, sub)
	s += "  " + zstyle.MutedText.Render("email:") + "\n"
	s += "  " + m.email.View() + "\n\n"
	s += "  " + zstyle.MutedText.Render(passPrompt) + "\n"
	s += "  " + m.password.View() + "\n"

	if m.errMsg != "" {
		s += "\n  " + zstyle.StatusErr.Render(m.errMsg)
	}

	s += "\n\n  " + zstyle.MutedText.Render("tab next  enter submit  ctrl+c quit") + "\n"
	return s
}
