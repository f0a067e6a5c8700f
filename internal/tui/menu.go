package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/balaji-finance/backoffice/internal/person"
)

type menuChoice int

const (
	menuCustomers menuChoice = iota
	menuEmployees
	menuPartners
	menuVendors
	menuSettings
	menuQuit
)

var menuItems = []string{
	"Customers",
	"Employees",
	"Partners",
	"Vendors",
	"Settings",
	"Quit",
}

// menuCategories maps the four record entries to their category.
var menuCategories = map[menuChoice]person.Category{
	menuCustomers: person.Customer,
	menuEmployees: person.Employee,
	menuPartners:  person.Partner,
	menuVendors:   person.Vendor,
}

// menuModel is the main menu view.
type menuModel struct {
	cursor   int
	version  string
	operator string
}

func newMenuModel(version, operator string) menuModel {
	return menuModel{version: version, operator: operator}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (menuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyUp) {
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyDown) {
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m, m.selectItem()
		}
	}

	return m, nil
}

func (m menuModel) selectItem() tea.Cmd {
	choice := menuChoice(m.cursor)

	if cat, ok := menuCategories[choice]; ok {
		return func() tea.Msg { return selectCategoryMsg{category: cat} }
	}

	switch choice {
	case menuSettings:
		return func() tea.Msg { return navigateMsg{view: viewSettings} }
	case menuQuit:
		return tea.Quit
	}
	return nil
}

func (m menuModel) View() string {
	title := zstyle.Title.Render("backoffice")
	ver := zstyle.MutedText.Render(m.version)

	s := fmt.Sprintf("\n  %s %s\n", title, ver)
	if m.operator != "" {
		s += "  " + zstyle.MutedText.Render(m.operator) + "\n"
	}
	s += "\n"

	for i, item := range menuItems {
		if m.cursor == i {
			s += zstyle.Highlight.Render(fmt.Sprintf("    > %s", item)) + "\n"
		} else {
			s += fmt.Sprintf("      %s\n", item)
		}
	}

	s += "\n  " + zstyle.MutedText.Render("j/k navigate  enter select  q quit") + "\n\n"
	return s
}
