package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/balaji-finance/backoffice/internal/api"
	"github.com/balaji-finance/backoffice/internal/config"
	"github.com/balaji-finance/backoffice/internal/session"
)

type settingsField int

const (
	settingsAPIBase settingsField = iota
	settingsPageSize
	settingsFieldCount
)

var settingsLabels = [settingsFieldCount]string{
	"api base url",
	"page size",
}

// settingsModel edits the operator's stored overrides: backend URL and list
// page size. Empty values fall back to the config file and built-in defaults.
type settingsModel struct {
	inputs [settingsFieldCount]textinput.Model
	focus  int
	flash  string
}

func newSettingsModel(s session.Settings, cfg config.Config) settingsModel {
	var inputs [settingsFieldCount]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 50
		inputs[i] = ti
	}

	placeholder := cfg.APIBase
	if placeholder == "" {
		placeholder = api.DefaultBaseURL
	}
	inputs[settingsAPIBase].Placeholder = placeholder
	inputs[settingsAPIBase].SetValue(s.APIBase)

	inputs[settingsPageSize].Placeholder = strconv.Itoa(cfg.PageSize)
	if s.PageSize > 0 {
		inputs[settingsPageSize].SetValue(strconv.Itoa(s.PageSize))
	}

	inputs[0].Focus()

	return settingsModel{inputs: inputs}
}

func (m settingsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m settingsModel) Update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if msg.Type == tea.KeyEsc {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}

		if key.Matches(msg, zstyle.KeyTab) || msg.Type == tea.KeyDown {
			return m.nextField(), textinput.Blink
		}

		if msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp {
			return m.prevField(), textinput.Blink
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			if m.focus == int(settingsFieldCount)-1 {
				return m.save()
			}
			return m.nextField(), textinput.Blink
		}

		if msg.String() == "ctrl+s" {
			return m.save()
		}

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m settingsModel) nextField() settingsModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % int(settingsFieldCount)
	m.inputs[m.focus].Focus()
	return m
}

func (m settingsModel) prevField() settingsModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + int(settingsFieldCount)) % int(settingsFieldCount)
	m.inputs[m.focus].Focus()
	return m
}

func (m settingsModel) save() (settingsModel, tea.Cmd) {
	base := strings.TrimSpace(m.inputs[settingsAPIBase].Value())

	size := 0
	if v := strings.TrimSpace(m.inputs[settingsPageSize].Value()); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			m.flash = "page size must be a positive number"
			return m, clearFlashAfter()
		}
		size = n
	}

	s := session.Settings{APIBase: base, PageSize: size}
	return m, func() tea.Msg { return saveSettingsMsg{settings: s} }
}

func (m settingsModel) View() string {
	s := "\n"

	for i := range int(settingsFieldCount) {
		cursor := "  "
		if i == m.focus {
			cursor = "> "
		}
		label := zstyle.MutedText.Render(fmt.Sprintf("%-14s", settingsLabels[i]))
		s += fmt.Sprintf("  %s%s %s\n", cursor, label, m.inputs[i].View())
	}

	s += "\n  " + zstyle.MutedText.Render("blank values fall back to the config file defaults") + "\n"
	s += "\n"

	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}
