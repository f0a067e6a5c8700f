package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/balaji-finance/backoffice/internal/person"
)

// recordField is one label/value pair shown in the detail view.
type recordField struct {
	label string
	value string
}

// detailModel displays all fields of one record read-only.
type detailModel struct {
	record  person.Record
	id      person.ID
	fields  []recordField
	cursor  int
	flash   string
	confirm bool
}

func newDetailModel(rec person.Record, id person.ID) detailModel {
	return detailModel{
		record: rec,
		id:     id,
		fields: recordFields(rec, id),
	}
}

// recordFields flattens a record for display. The resolved row id leads so
// the operator can copy it even when the server id is absent.
func recordFields(rec person.Record, id person.ID) []recordField {
	return []recordField{
		{"id", string(id)},
		{"first name", rec.FirstName},
		{"last name", rec.LastName},
		{"gender", string(rec.Gender)},
		{"father", rec.FatherName},
		{"spouse", rec.Spouse},
		{"age", strconv.Itoa(int(rec.Age))},
		{"occupation", rec.Occupation},
		{"mobile", rec.Mobile},
		{"alt mobile", rec.Mobile2},
		{"phone", rec.Phone},
		{"alt phone", rec.Phone2},
		{"address", rec.Address},
		{"address 2", rec.Address2},
		{"category", rec.Category.Label()},
		{"reference", rec.Reference},
		{"id proof", rec.IDProof},
		{"id proof no", rec.IDProofNumber},
		{"introducer", rec.Introducer},
		{"old id", rec.OldID},
		{"shares", strconv.FormatFloat(float64(rec.Shares), 'f', -1, 64)},
		{"loan limit", strconv.FormatFloat(float64(rec.LoanLimit), 'f', -1, 64)},
		{"status", statusLabel(rec.Disabled)},
	}
}

func statusLabel(disabled bool) string {
	if disabled {
		return "Disabled"
	}
	return "Active"
}

func (m detailModel) Init() tea.Cmd {
	return nil
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m detailModel) handleKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	if m.confirm {
		return m.handleConfirm(msg)
	}

	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewList} }
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		val := m.fields[m.cursor].value
		if err := copyToClipboard(val); err != nil {
			m.flash = "copy: " + err.Error()
			return m, clearFlashAfter()
		}
		m.flash = "copied!"
		return m, clearFlashAfter()
	}

	switch msg.String() {
	case "c":
		if err := copyToClipboard(m.allFieldsText()); err != nil {
			m.flash = "copy: " + err.Error()
			return m, clearFlashAfter()
		}
		m.flash = "copied all!"
		return m, clearFlashAfter()

	case "e":
		rec, id := m.record, m.id
		return m, func() tea.Msg { return editRecordMsg{record: rec, id: id} }

	case "d":
		m.confirm = true
		return m, nil
	}

	return m, nil
}

func (m detailModel) handleConfirm(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	switch msg.String() {
	case "y":
		id := m.id
		m.confirm = false
		return m, func() tea.Msg { return deleteRecordMsg{id: id} }
	default:
		m.confirm = false
		return m, nil
	}
}

func (m detailModel) allFieldsText() string {
	var b strings.Builder
	for _, f := range m.fields {
		fmt.Fprintf(&b, "%s: %s\n", f.label, f.value)
	}
	return b.String()
}

func (m detailModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	name := zstyle.Subtitle.Render(m.record.DisplayName())
	s := "\n  " + name + "\n\n"

	for i, f := range m.fields {
		label := zstyle.MutedText.Render(fmt.Sprintf("%-14s", f.label))
		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + label + " " + f.value + "\n"
		} else {
			s += "    " + label + " " + f.value + "\n"
		}
	}

	s += "\n"

	if m.confirm {
		s += "  " + zstyle.StatusWarn.Render(fmt.Sprintf("delete %q? this cannot be undone. (y/n)", m.record.DisplayName())) + "\n"
	} else if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}
