// Package tui implements the root Bubble Tea model for backoffice.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/balaji-finance/backoffice/internal/api"
	"github.com/balaji-finance/backoffice/internal/config"
	"github.com/balaji-finance/backoffice/internal/person"
	"github.com/balaji-finance/backoffice/internal/session"
)

// accent is the backoffice brand color used for headers and cursors.
var accent = lipgloss.Color("214")

type viewID int

const (
	viewLogin viewID = iota
	viewMenu
	viewList
	viewDetail
	viewForm
	viewSettings
)

// Model is the root TUI model.
type Model struct {
	version  string
	dataDir  string
	cfg      config.Config
	firstRun bool

	session  *session.Store
	settings session.Settings
	client   *api.Client

	// category selected in the menu or by tab-cycling in the list
	category person.Category

	// fetchSeq invalidates list fetches that were superseded by a newer
	// one (the category changed mid-flight); stale responses are dropped
	fetchSeq int

	// pendingFlash is shown on the list once the refetch after a
	// mutation lands
	pendingFlash string

	active       viewID
	login        loginModel
	menu         menuModel
	list         listModel
	detail       detailModel
	form         formModel
	settingsView settingsModel

	// terminal dimensions
	width  int
	height int
}

// New creates the root TUI model.
func New(version, dataDir string, cfg config.Config, firstRun bool) Model {
	return Model{
		version:  version,
		dataDir:  dataDir,
		cfg:      cfg,
		firstRun: firstRun,
		category: person.Customer,
		active:   viewLogin,
		login:    newLoginModel(firstRun),
	}
}

// flashMsg clears a transient status line.
type flashMsg struct{}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

// navigateMsg tells the root model to switch views.
type navigateMsg struct {
	view viewID
}

// selectCategoryMsg switches the active category and loads its records.
type selectCategoryMsg struct {
	category person.Category
}

// recordsLoadedMsg carries one category's records back from the backend.
type recordsLoadedMsg struct {
	seq      int
	category person.Category
	records  []person.Record
	err      error
}

// openAddFormMsg asks the root to reserve a template id and open the form.
type openAddFormMsg struct {
	category person.Category
}

// templateLoadedMsg carries the pre-reserved record for a new entry.
type templateLoadedMsg struct {
	category person.Category
	record   person.Record
	err      error
}

// editRecordMsg opens the form pre-filled from an existing row.
type editRecordMsg struct {
	record person.Record
	id     person.ID
}

// viewRecordMsg opens the read-only detail view for a row.
type viewRecordMsg struct {
	record person.Record
	id     person.ID
}

// submitRecordMsg carries a validated record from the form to the backend.
type submitRecordMsg struct {
	record  person.Record
	editing bool
}

// saveResultMsg reports the outcome of a create or update.
type saveResultMsg struct {
	category person.Category
	editing  bool
	err      error
}

// deleteRecordMsg requests deletion of a record by its resolved row id.
type deleteRecordMsg struct {
	id person.ID
}

// deleteResultMsg reports the outcome of a delete.
type deleteResultMsg struct {
	category person.Category
	err      error
}

// saveSettingsMsg persists operator settings from the settings view.
type saveSettingsMsg struct {
	settings session.Settings
}

func (m Model) Init() tea.Cmd {
	return m.login.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginSubmitMsg:
		return m.openSession(msg.email, msg.password)

	case navigateMsg:
		return m.navigate(msg.view)

	case selectCategoryMsg:
		return m.loadList(msg.category)

	case recordsLoadedMsg:
		return m.handleRecordsLoaded(msg)

	case openAddFormMsg:
		return m, newTemplateCmd(m.client, msg.category)

	case templateLoadedMsg:
		return m.openAddForm(msg)

	case editRecordMsg:
		rec := msg.record
		rec.ID = msg.id
		m.form = newFormModel(rec, true)
		m.active = viewForm
		return m, m.form.Init()

	case viewRecordMsg:
		m.detail = newDetailModel(msg.record, msg.id)
		m.active = viewDetail
		return m, nil

	case submitRecordMsg:
		return m, saveRecordCmd(m.client, msg.record, msg.editing)

	case saveResultMsg:
		return m.handleSaveResult(msg)

	case deleteRecordMsg:
		return m, deleteRecordCmd(m.client, m.category, msg.id)

	case deleteResultMsg:
		return m.handleDeleteResult(msg)

	case saveSettingsMsg:
		return m.handleSaveSettings(msg.settings)
	}

	return m.updateActive(msg)
}

func (m Model) View() string {
	// login and menu carry their own chrome
	switch m.active {
	case viewLogin:
		return m.login.View()
	case viewMenu:
		return m.menu.View()
	}

	var content string
	switch m.active {
	case viewList:
		content = m.list.View()
	case viewDetail:
		content = m.detail.View()
	case viewForm:
		content = m.form.View()
	case viewSettings:
		content = m.settingsView.View()
	}

	header := zstyle.RenderHeader("backoffice", m.viewTitle(), accent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(m.helpFor())

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for the active view.
func (m Model) viewTitle() string {
	switch m.active {
	case viewList:
		return m.category.Label() + "s"
	case viewDetail:
		return m.category.Label() + " Details"
	case viewForm:
		if m.form.editing {
			return "Edit " + m.category.Label()
		}
		return "Add " + m.category.Label()
	case viewSettings:
		return "Settings"
	}
	return ""
}

// helpFor returns keybinding pairs for the active view's footer.
func (m Model) helpFor() []zstyle.HelpPair {
	switch m.active {
	case viewList:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "h/l", Desc: "page"},
			{Key: "tab", Desc: "category"},
			{Key: "/", Desc: "search"},
			{Key: "a", Desc: "add"},
			{Key: "enter", Desc: "view"},
			{Key: "e", Desc: "edit"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewDetail:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "copy field"},
			{Key: "c", Desc: "copy all"},
			{Key: "e", Desc: "edit"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewForm:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "shift+tab", Desc: "prev"},
			{Key: "space", Desc: "toggle"},
			{Key: "ctrl+s", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	case viewSettings:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "ctrl+s", Desc: "save"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewLogin:
		m.login, cmd = m.login.Update(msg)
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewList:
		m.list, cmd = m.list.Update(msg)
	case viewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case viewForm:
		m.form, cmd = m.form.Update(msg)
	case viewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}

	return m, cmd
}

// openSession opens the local session store with the login password and
// wires up the API client from config plus stored overrides.
func (m Model) openSession(email, password string) (tea.Model, tea.Cmd) {
	s, err := session.Open(m.dataDir, password)
	if err != nil {
		m.login, _ = m.login.Update(loginErrMsg{err: err})
		return m, nil
	}

	m.session = s
	m.settings = s.Settings()

	if m.settings.Email != email {
		m.settings.Email = email
		// best effort; login proceeds even if the write fails
		_ = s.SaveSettings(m.settings)
	}

	m.client = m.newClient()
	m.menu = newMenuModel(m.version, m.settings.Email)
	m.active = viewMenu
	return m, nil
}

// newClient builds the API client from config with stored overrides applied.
func (m Model) newClient() *api.Client {
	base := m.cfg.APIBase
	if m.settings.APIBase != "" {
		base = m.settings.APIBase
	}
	return api.NewClient(api.Config{BaseURL: base, Timeout: m.cfg.RequestTimeout()})
}

// pageSize resolves the list page size from stored settings over config.
func (m Model) pageSize() int {
	if m.settings.PageSize > 0 {
		return m.settings.PageSize
	}
	if m.cfg.PageSize > 0 {
		return m.cfg.PageSize
	}
	return config.DefaultPageSize
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	switch view {
	case viewMenu:
		m.menu = newMenuModel(m.version, m.settings.Email)
		m.active = viewMenu
		return m, tea.ClearScreen

	case viewList:
		// always refetch so the list reflects server truth
		m, cmd := m.loadList(m.category)
		return m, tea.Batch(cmd, tea.ClearScreen)

	case viewSettings:
		m.settingsView = newSettingsModel(m.settings, m.cfg)
		m.active = viewSettings
		return m, tea.Batch(m.settingsView.Init(), tea.ClearScreen)
	}

	return m, nil
}

// loadList starts an asynchronous fetch for one category. Any fetch still in
// flight for a previous category is superseded and its response dropped.
func (m Model) loadList(cat person.Category) (tea.Model, tea.Cmd) {
	m.category = cat
	m.fetchSeq++

	m.list = newListModel(cat, nil, m.pageSize())
	m.list.loading = true
	m.active = viewList

	return m, tea.Batch(
		fetchRecordsCmd(m.client, cat, m.fetchSeq),
		tea.ClearScreen,
	)
}

func (m Model) handleRecordsLoaded(msg recordsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.fetchSeq {
		// superseded by a newer fetch; drop
		return m, nil
	}

	if msg.err != nil {
		m.list = newListModel(msg.category, nil, m.pageSize())
		m.list.flash = fmt.Sprintf("failed to load %ss: %v", strings.ToLower(msg.category.Label()), msg.err)
		m.pendingFlash = ""
		return m, clearFlashAfter()
	}

	m.list = newListModel(msg.category, msg.records, m.pageSize())
	if m.pendingFlash != "" {
		m.list.flash = m.pendingFlash
		m.pendingFlash = ""
		return m, clearFlashAfter()
	}
	return m, nil
}

func (m Model) openAddForm(msg templateLoadedMsg) (tea.Model, tea.Cmd) {
	rec := msg.record
	if msg.err != nil {
		// the template id is a convenience; fall back to a blank record
		rec = person.New(msg.category)
	}

	m.form = newFormModel(rec, false)
	if msg.err != nil {
		m.form.flash = "could not reserve an id: " + msg.err.Error()
	}
	m.active = viewForm

	cmds := []tea.Cmd{m.form.Init()}
	if msg.err != nil {
		cmds = append(cmds, clearFlashAfter())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleSaveResult(msg saveResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// keep the form open with the operator's input intact
		m.form.saving = false
		m.form.flash = "save failed: " + msg.err.Error()
		return m, clearFlashAfter()
	}

	verb := "added"
	if msg.editing {
		verb = "updated"
	}
	m.pendingFlash = fmt.Sprintf("%s %s successfully", msg.category.Label(), verb)
	return m.loadList(msg.category)
}

func (m Model) handleDeleteResult(msg deleteResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if m.active == viewDetail {
			m.detail.flash = "delete failed: " + msg.err.Error()
			return m, clearFlashAfter()
		}
		m.list.flash = "delete failed: " + msg.err.Error()
		return m, clearFlashAfter()
	}

	m.pendingFlash = "deleted successfully"
	return m.loadList(msg.category)
}

func (m Model) handleSaveSettings(s session.Settings) (tea.Model, tea.Cmd) {
	s.Email = m.settings.Email

	if err := m.session.SaveSettings(s); err != nil {
		m.settingsView.flash = "save: " + err.Error()
		return m, clearFlashAfter()
	}

	m.settings = s
	m.client = m.newClient()
	m.settingsView.flash = "saved"
	return m, clearFlashAfter()
}

// fetchRecordsCmd loads one category's records off the UI loop.
func fetchRecordsCmd(client *api.Client, cat person.Category, seq int) tea.Cmd {
	return func() tea.Msg {
		records, err := client.FindByCategory(context.Background(), cat)
		return recordsLoadedMsg{seq: seq, category: cat, records: records, err: err}
	}
}

// newTemplateCmd reserves a server id for a new record.
func newTemplateCmd(client *api.Client, cat person.Category) tea.Cmd {
	return func() tea.Msg {
		rec, err := client.NewTemplate(context.Background(), cat)
		return templateLoadedMsg{category: cat, record: rec, err: err}
	}
}

// saveRecordCmd submits the full record, create or update depending on mode.
func saveRecordCmd(client *api.Client, rec person.Record, editing bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if editing {
			_, err = client.Update(context.Background(), rec)
		} else {
			_, err = client.Create(context.Background(), rec)
		}
		return saveResultMsg{category: rec.Category, editing: editing, err: err}
	}
}

// deleteRecordCmd deletes by resolved row id.
func deleteRecordCmd(client *api.Client, cat person.Category, id person.ID) tea.Cmd {
	return func() tea.Msg {
		err := client.Delete(context.Background(), id)
		return deleteResultMsg{category: cat, err: err}
	}
}

// Close cleans up resources. Call after the program exits.
func (m Model) Close() {
	if m.session != nil {
		m.session.Close()
	}
}
