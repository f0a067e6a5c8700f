package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/balaji-finance/backoffice/internal/person"
	"github.com/balaji-finance/backoffice/internal/rowid"
)

// row pairs a record with its resolved stable identity.
type row struct {
	id  person.ID
	rec person.Record
}

// listModel displays one category's records: searchable, paginated, with
// row actions wired to the form and the delete confirmation.
type listModel struct {
	category person.Category

	// records is the full in-memory set; rows is the filtered projection
	// currently shown. Filtering never mutates records.
	records  []person.Record
	rows     []row
	resolver *rowid.Resolver

	searching   bool
	searchInput textinput.Model
	query       string

	cursor   int
	page     int
	pageSize int

	loading bool
	flash   string
	confirm bool
}

func newListModel(cat person.Category, records []person.Record, pageSize int) listModel {
	si := textinput.New()
	si.CharLimit = 64
	si.Width = 32
	si.Prompt = "/"

	m := listModel{
		category:    cat,
		records:     records,
		resolver:    rowid.New(),
		searchInput: si,
		pageSize:    pageSize,
	}
	m.applyFilter()
	return m
}

// applyFilter rebuilds the visible rows from the full set and the current
// query, assigning stable row ids, and clamps cursor and page.
func (m *listModel) applyFilter() {
	filtered := person.Filter(m.records, m.query)

	m.rows = m.rows[:0]
	for _, rec := range filtered {
		m.rows = append(m.rows, row{id: m.resolver.Resolve(rec), rec: rec})
	}

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.page = 0
	if m.pageSize > 0 {
		m.page = m.cursor / m.pageSize
	}
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m listModel) handleKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	if m.loading {
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}
		if key.Matches(msg, zstyle.KeyBack) {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}
		return m, nil
	}

	if m.confirm {
		return m.handleConfirm(msg)
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		if m.query != "" {
			m.query = ""
			m.searchInput.SetValue("")
			m.applyFilter()
			return m, nil
		}
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	if key.Matches(msg, zstyle.KeyUp) {
		return m.moveCursor(-1), nil
	}
	if key.Matches(msg, zstyle.KeyDown) {
		return m.moveCursor(1), nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		if len(m.rows) == 0 {
			return m, nil
		}
		r := m.rows[m.cursor]
		return m, func() tea.Msg { return viewRecordMsg{record: r.rec, id: r.id} }
	}

	switch msg.String() {
	case "tab":
		return m, m.cycleCategory(1)

	case "shift+tab":
		return m, m.cycleCategory(-1)

	case "/":
		m.searching = true
		m.searchInput.SetValue(m.query)
		m.searchInput.Focus()
		return m, textinput.Blink

	case "h", "left":
		return m.gotoPage(m.page - 1), nil

	case "l", "right":
		return m.gotoPage(m.page + 1), nil

	case "r":
		cat := m.category
		return m, func() tea.Msg { return selectCategoryMsg{category: cat} }

	case "a":
		cat := m.category
		return m, func() tea.Msg { return openAddFormMsg{category: cat} }

	case "e":
		if len(m.rows) == 0 {
			return m, nil
		}
		r := m.rows[m.cursor]
		return m, func() tea.Msg { return editRecordMsg{record: r.rec, id: r.id} }

	case "d":
		if len(m.rows) == 0 {
			return m, nil
		}
		m.confirm = true
		return m, nil
	}

	return m, nil
}

func (m listModel) handleConfirm(msg tea.KeyMsg) (listModel, tea.Cmd) {
	switch msg.String() {
	case "y":
		id := m.rows[m.cursor].id
		m.confirm = false
		return m, func() tea.Msg { return deleteRecordMsg{id: id} }
	default:
		m.confirm = false
		return m, nil
	}
}

func (m listModel) handleSearchKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEnter:
		// keep the query, leave search mode
		m.searching = false
		m.searchInput.Blur()
		return m, nil

	case tea.KeyEsc:
		// drop the query entirely
		m.searching = false
		m.query = ""
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// filter live as the operator types
	if q := m.searchInput.Value(); q != m.query {
		m.query = q
		m.cursor = 0
		m.applyFilter()
	}
	return m, cmd
}

func (m listModel) moveCursor(delta int) listModel {
	next := m.cursor + delta
	if next < 0 || next >= len(m.rows) {
		return m
	}
	m.cursor = next
	if m.pageSize > 0 {
		m.page = m.cursor / m.pageSize
	}
	return m
}

func (m listModel) gotoPage(page int) listModel {
	if page < 0 || page > m.lastPage() {
		return m
	}
	m.page = page
	m.cursor = page * m.pageSize
	return m
}

func (m listModel) lastPage() int {
	if m.pageSize <= 0 || len(m.rows) == 0 {
		return 0
	}
	return (len(m.rows) - 1) / m.pageSize
}

// cycleCategory switches tabs. The in-flight fetch for the old category, if
// any, is superseded by the new one.
func (m listModel) cycleCategory(delta int) tea.Cmd {
	cats := person.Categories()
	idx := 0
	for i, c := range cats {
		if c == m.category {
			idx = i
			break
		}
	}
	next := cats[(idx+delta+len(cats))%len(cats)]
	return func() tea.Msg { return selectCategoryMsg{category: next} }
}

func (m listModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	total := fmt.Sprintf("%s: %d", m.category.Label()+"s", len(m.rows))
	s := "\n  " + zstyle.Title.Render(total)
	if m.query != "" && !m.searching {
		s += "  " + zstyle.MutedText.Render(fmt.Sprintf("filter: %q", m.query))
	}
	s += "\n"

	if m.searching {
		s += "  " + m.searchInput.View() + "\n"
	} else {
		s += "\n"
	}
	s += "\n"

	if m.loading {
		s += "  " + zstyle.MutedText.Render("loading…") + "\n"
		return s
	}

	if len(m.rows) == 0 {
		if m.query != "" {
			s += "  " + zstyle.MutedText.Render("no matches") + "\n"
		} else {
			s += "  " + zstyle.MutedText.Render("no records") + "\n"
		}
		s += "\n"
		s += m.statusLine()
		return s
	}

	start := m.page * m.pageSize
	end := start + m.pageSize
	if end > len(m.rows) {
		end = len(m.rows)
	}

	header := fmt.Sprintf("%-14s %-22s %-12s %-6s %s", "id", "name", "mobile", "age", "address")
	s += "    " + zstyle.MutedText.Render(header) + "\n"

	for i := start; i < end; i++ {
		r := m.rows[i]
		line := fmt.Sprintf("%-14s %-22s %-12s %-6d %s",
			truncate(string(r.id), 13),
			truncate(r.rec.DisplayName(), 21),
			r.rec.Mobile,
			int(r.rec.Age),
			truncate(r.rec.Address, 32),
		)

		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + line + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	if m.lastPage() > 0 {
		s += "\n  " + zstyle.MutedText.Render(fmt.Sprintf("page %d/%d", m.page+1, m.lastPage()+1)) + "\n"
	} else {
		s += "\n\n"
	}

	s += m.statusLine()
	return s
}

// statusLine reserves one line for the confirmation prompt or flash so the
// layout never shifts.
func (m listModel) statusLine() string {
	if m.confirm && len(m.rows) > 0 {
		name := m.rows[m.cursor].rec.DisplayName()
		return "  " + zstyle.StatusWarn.Render(fmt.Sprintf("delete %q? this cannot be undone. (y/n)", name)) + "\n"
	}
	if m.flash != "" {
		return "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	}
	return "\n"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
