package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/balaji-finance/backoffice/internal/person"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindDigits
	kindCount
	kindAmount
	kindToggle
	kindGender
	kindReadonly
)

// fieldSpec describes one form field: which record field it binds to, its
// label, and how input is handled.
type fieldSpec struct {
	key   string
	label string
	kind  fieldKind
}

// baseFields are shared by all four categories.
var baseFields = []fieldSpec{
	{"id", "id", kindReadonly},
	{person.FieldFirstName, "first name", kindText},
	{"lastname", "last name", kindText},
	{"gender", "gender", kindGender},
	{"fathername", "father's name", kindText},
	{"spouse", "spouse", kindText},
	{"age", "age", kindCount},
	{"occupation", "occupation", kindText},
	{person.FieldMobile, "mobile", kindDigits},
	{person.FieldMobile2, "alt mobile", kindDigits},
	{person.FieldPhone, "phone", kindDigits},
	{person.FieldPhone2, "alt phone", kindDigits},
	{"address", "address", kindText},
	{"address2", "address 2", kindText},
	{"reference", "reference", kindText},
	{"idproof", "id proof type", kindText},
	{"idproofnumber", "id proof number", kindText},
	{"introname", "introducer", kindText},
	{"oldid", "old id", kindText},
}

// financial fields appear only where they mean something: the full block
// for customers, shares alone for partners.
var customerFields = []fieldSpec{
	{"shares", "shares", kindAmount},
	{"loanlimit", "loan limit", kindAmount},
	{"disable", "disabled", kindToggle},
	{"bussinessexemption", "business exemption", kindToggle},
}

var partnerFields = []fieldSpec{
	{"shares", "shares", kindAmount},
}

// formFields returns the visible field set for a category.
func formFields(cat person.Category) []fieldSpec {
	fields := make([]fieldSpec, len(baseFields))
	copy(fields, baseFields)

	switch cat {
	case person.Customer:
		fields = append(fields, customerFields...)
	case person.Partner:
		fields = append(fields, partnerFields...)
	}
	return fields
}

// formModel is the editable record panel: one record, add or edit mode,
// live per-field validation, submission gated on the full validator.
type formModel struct {
	category person.Category
	fields   []fieldSpec
	inputs   []textinput.Model

	// record carries the id, category, gender and toggle state, plus the
	// unedited base values in edit mode
	record  person.Record
	editing bool
	saving  bool

	focus  int
	errors map[string]string
	flash  string
}

func newFormModel(rec person.Record, editing bool) formModel {
	fields := formFields(rec.Category)
	inputs := make([]textinput.Model, len(fields))

	for i, f := range fields {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 40
		ti.Prompt = ""
		if f.kind == kindDigits {
			ti.CharLimit = 10
		}
		ti.SetValue(fieldValue(rec, f.key))
		inputs[i] = ti
	}

	m := formModel{
		category: rec.Category,
		fields:   fields,
		inputs:   inputs,
		record:   rec,
		editing:  editing,
		errors:   make(map[string]string),
	}

	// id is read-only; start on the first editable field
	m.focus = 1
	m.inputs[m.focus].Focus()
	return m
}

// fieldValue renders a record field as its initial input text. Zero numbers
// show as empty so the operator is not forced to clear a "0".
func fieldValue(rec person.Record, key string) string {
	switch key {
	case person.FieldFirstName:
		return rec.FirstName
	case "lastname":
		return rec.LastName
	case "fathername":
		return rec.FatherName
	case "spouse":
		return rec.Spouse
	case "age":
		if rec.Age == 0 {
			return ""
		}
		return strconv.Itoa(int(rec.Age))
	case "occupation":
		return rec.Occupation
	case person.FieldMobile:
		return rec.Mobile
	case person.FieldMobile2:
		return rec.Mobile2
	case person.FieldPhone:
		return rec.Phone
	case person.FieldPhone2:
		return rec.Phone2
	case "address":
		return rec.Address
	case "address2":
		return rec.Address2
	case "reference":
		return rec.Reference
	case "idproof":
		return rec.IDProof
	case "idproofnumber":
		return rec.IDProofNumber
	case "introname":
		return rec.Introducer
	case "oldid":
		return rec.OldID
	case "shares":
		if rec.Shares == 0 {
			return ""
		}
		return strconv.FormatFloat(float64(rec.Shares), 'f', -1, 64)
	case "loanlimit":
		if rec.LoanLimit == 0 {
			return ""
		}
		return strconv.FormatFloat(float64(rec.LoanLimit), 'f', -1, 64)
	}
	return ""
}

// buildRecord overlays the current input values onto the working record.
// Numeric fields coerce empty input to zero rather than failing.
func (m formModel) buildRecord() person.Record {
	rec := m.record
	rec.Category = m.category

	for i, f := range m.fields {
		v := strings.TrimSpace(m.inputs[i].Value())
		switch f.key {
		case person.FieldFirstName:
			rec.FirstName = v
		case "lastname":
			rec.LastName = v
		case "fathername":
			rec.FatherName = v
		case "spouse":
			rec.Spouse = v
		case "age":
			rec.Age = person.ParseCount(v)
		case "occupation":
			rec.Occupation = v
		case person.FieldMobile:
			rec.Mobile = v
		case person.FieldMobile2:
			rec.Mobile2 = v
		case person.FieldPhone:
			rec.Phone = v
		case person.FieldPhone2:
			rec.Phone2 = v
		case "address":
			rec.Address = v
		case "address2":
			rec.Address2 = v
		case "reference":
			rec.Reference = v
		case "idproof":
			rec.IDProof = v
		case "idproofnumber":
			rec.IDProofNumber = v
		case "introname":
			rec.Introducer = v
		case "oldid":
			rec.OldID = v
		case "shares":
			rec.Shares = person.ParseAmount(v)
		case "loanlimit":
			rec.LoanLimit = person.ParseAmount(v)
		}
	}
	return rec
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m.updateInput(msg)
}

func (m formModel) handleKey(msg tea.KeyMsg) (formModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// one request at a time: ignore input while the save is in flight
	if m.saving {
		return m, nil
	}

	if msg.Type == tea.KeyEsc {
		// cancel discards in-progress edits unconditionally
		return m, func() tea.Msg { return navigateMsg{view: viewList} }
	}

	switch msg.String() {
	case "tab", "down":
		return m.moveFocus(1), textinput.Blink

	case "shift+tab", "up":
		return m.moveFocus(-1), textinput.Blink

	case "ctrl+s":
		return m.submit()

	case " ":
		if f := m.fields[m.focus]; f.kind == kindToggle || f.kind == kindGender {
			return m.cycleField(), nil
		}

	case "enter":
		// enter on the last field saves; otherwise advance
		if m.focus == len(m.fields)-1 {
			return m.submit()
		}
		return m.moveFocus(1), textinput.Blink
	}

	return m.updateInput(msg)
}

func (m formModel) moveFocus(delta int) formModel {
	if cur := m.fields[m.focus]; isTextKind(cur.kind) {
		m.inputs[m.focus].Blur()
	}

	n := len(m.fields)
	m.focus = (m.focus + delta + n) % n
	// the id field is read-only; skip over it
	if m.fields[m.focus].kind == kindReadonly {
		m.focus = (m.focus + delta + n) % n
	}

	if f := m.fields[m.focus]; isTextKind(f.kind) {
		m.inputs[m.focus].Focus()
	}
	return m
}

func isTextKind(k fieldKind) bool {
	switch k {
	case kindText, kindDigits, kindCount, kindAmount:
		return true
	}
	return false
}

// cycleField flips a toggle or advances the gender option.
func (m formModel) cycleField() formModel {
	switch m.fields[m.focus].key {
	case "gender":
		genders := person.Genders()
		for i, g := range genders {
			if g == m.record.Gender {
				m.record.Gender = genders[(i+1)%len(genders)]
				return m
			}
		}
		m.record.Gender = genders[0]
	case "disable":
		m.record.Disabled = !m.record.Disabled
	case "bussinessexemption":
		m.record.BusinessExemption = !m.record.BusinessExemption
	}
	return m
}

func (m formModel) updateInput(msg tea.Msg) (formModel, tea.Cmd) {
	f := m.fields[m.focus]
	if !isTextKind(f.kind) {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	// phone-style fields accept digits only
	if f.kind == kindDigits {
		if v := m.inputs[m.focus].Value(); v != person.DigitsOnly(v) {
			m.inputs[m.focus].SetValue(person.DigitsOnly(v))
			m.inputs[m.focus].CursorEnd()
		}
	}

	// live validation: only the changed field, never the whole record
	if msg, isKey := msg.(tea.KeyMsg); isKey && msg.Type != tea.KeyCtrlC {
		if err := person.ValidateField(m.buildRecord(), f.key); err != "" {
			m.errors[f.key] = err
		} else {
			delete(m.errors, f.key)
		}
	}

	return m, cmd
}

// submit runs the full validator; on failure the panel stays open with every
// error populated, on success the record goes to the backend.
func (m formModel) submit() (formModel, tea.Cmd) {
	rec := m.buildRecord()

	errs := person.Validate(rec)
	if len(errs) > 0 {
		m.errors = errs
		m.flash = "fix the highlighted fields"
		return m, clearFlashAfter()
	}

	m.errors = make(map[string]string)
	m.saving = true
	editing := m.editing
	return m, func() tea.Msg {
		return submitRecordMsg{record: rec, editing: editing}
	}
}

func (m formModel) View() string {
	var s strings.Builder
	s.WriteString("\n")

	for i, f := range m.fields {
		cursor := "  "
		if i == m.focus {
			cursor = "> "
		}

		label := zstyle.MutedText.Render(fmt.Sprintf("%-19s", f.label))

		var value string
		switch f.kind {
		case kindReadonly:
			id := string(m.record.ID)
			if id == "" {
				id = "(unassigned)"
			}
			value = zstyle.MutedText.Render(id)
		case kindGender:
			value = string(m.record.Gender) + " " + zstyle.MutedText.Render("[space to change]")
		case kindToggle:
			mark := "no"
			if m.toggleValue(f.key) {
				mark = "yes"
			}
			value = mark + " " + zstyle.MutedText.Render("[space to change]")
		default:
			value = m.inputs[i].View()
		}

		line := fmt.Sprintf("  %s%s %s", cursor, label, value)
		if err, ok := m.errors[f.key]; ok {
			line += "  " + zstyle.StatusErr.Render(err)
		}
		s.WriteString(line + "\n")
	}

	s.WriteString("\n")

	switch {
	case m.saving:
		s.WriteString("  " + zstyle.MutedText.Render("saving…") + "\n")
	case m.flash != "":
		s.WriteString("  " + zstyle.StatusWarn.Render(m.flash) + "\n")
	default:
		s.WriteString("\n")
	}

	return s.String()
}

func (m formModel) toggleValue(key string) bool {
	switch key {
	case "disable":
		return m.record.Disabled
	case "bussinessexemption":
		return m.record.BusinessExemption
	}
	return false
}
