package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balaji-finance/backoffice/internal/person"
)

func testRecords() []person.Record {
	return []person.Record{
		{ID: "1", FirstName: "Asha", LastName: "Patel", Mobile: "9876543210", Address: "12 MG Road", Category: person.Customer},
		{ID: "2", FirstName: "Bhavesh", LastName: "Shah", Mobile: "9000000001", Address: "4 Station Rd", Category: person.Customer},
		{ID: "3", FirstName: "Chitra", LastName: "Iyer", Mobile: "8123456789", Address: "Lake View", Category: person.Customer},
	}
}

func TestListShowsRecords(t *testing.T) {
	m := newListModel(person.Customer, testRecords(), 15)
	view := m.View()

	if !strings.Contains(view, "Customers: 3") {
		t.Error("view should show the category count")
	}
	for _, name := range []string{"Asha Patel", "Bhavesh Shah", "Chitra Iyer"} {
		if !strings.Contains(view, name) {
			t.Errorf("view missing %q", name)
		}
	}
}

func TestListEmpty(t *testing.T) {
	m := newListModel(person.Vendor, nil, 15)
	if !strings.Contains(m.View(), "no records") {
		t.Error("empty list should say so")
	}
}

func TestListLoading(t *testing.T) {
	m := newListModel(person.Customer, nil, 15)
	m.loading = true

	if !strings.Contains(m.View(), "loading") {
		t.Error("loading list should say so")
	}

	// navigation is inert while loading
	m, _ = m.Update(keyMsg('j'))
	if m.cursor != 0 {
		t.Error("cursor should not move while loading")
	}
	m, cmd := m.Update(keyMsg('a'))
	if cmd != nil {
		t.Error("add should be inert while loading")
	}
}

func TestListCursorNavigation(t *testing.T) {
	m := newListModel(person.Customer, testRecords(), 15)

	m, _ = m.Update(keyMsg('j'))
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	m, _ = m.Update(keyMsg('k'))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}

	// stays in bounds
	m, _ = m.Update(keyMsg('k'))
	if m.cursor != 0 {
		t.Error("cursor should not move above the first row")
	}
	for range 10 {
		m, _ = m.Update(keyMsg('j'))
	}
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want last row", m.cursor)
	}
}

func TestListSyntheticRowIDs(t *testing.T) {
	records := testRecords()
	records[1].ID = "" // no server id
	m := newListModel(person.Customer, records, 15)

	if m.rows[0].id != "1" {
		t.Errorf("row 0 id = %q, want server id", m.rows[0].id)
	}
	if !strings.HasPrefix(string(m.rows[1].id), "temp-") {
		t.Errorf("row 1 id = %q, want synthetic", m.rows[1].id)
	}

	// the same record keeps its synthetic id across re-filters
	before := m.rows[1].id
	m.query = "b"
	m.applyFilter()
	if len(m.rows) != 1 || m.rows[0].id != before {
		t.Error("synthetic id should be stable across filtering")
	}
}

func TestListSearchFiltersLive(t *testing.T) {
	m := newListModel(person.Customer, testRecords(), 15)

	m, _ = m.Update(keyMsg('/'))
	if !m.searching {
		t.Fatal("slash should enter search mode")
	}

	for _, r := range "chi" {
		m, _ = m.Update(keyMsg(r))
	}
	if len(m.rows) != 1 || m.rows[0].rec.FirstName != "Chitra" {
		t.Fatalf("rows = %d, want just Chitra", len(m.rows))
	}

	// enter keeps the query and leaves search mode
	m, _ = m.Update(enterKey())
	if m.searching {
		t.Error("enter should leave search mode")
	}
	if m.query != "chi" {
		t.Errorf("query = %q, want kept", m.query)
	}
	if !strings.Contains(m.View(), "filter:") {
		t.Error("view should show the active filter")
	}
}

func TestListSearchEscDropsQuery(t *testing.T) {
	m := newListModel(person.Customer, testRecords(), 15)

	m, _ = m.Update(keyMsg('/'))
	for _, r := range "asha" {
		m, _ = m.Update(keyMsg(r))
	}
	if len(m.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(m.rows))
	}

	m, _ = m.Update(escKey())
	if m.searching || m.query != "" {
		t.Error("esc should drop the query")
	}
	if len(m.rows) != 3 {
		t.Errorf("rows = %d, want full set restored", len(m.rows))
	}
}

func TestListEscClearsFilterBeforeLeaving(t *testing.T) {
	m := newListModel(person.Customer, testRecords(), 15)
	m.query = "asha"
	m.applyFilter()

	// first esc clears the filter
	m, cmd := m.Update(escKey())
	if cmd != nil {
		t.Error("first esc should only clear the filter")
	}
	if m.query != "" || len(m.rows) != 3 {
		t.Error("filter should be cleared")
	}

	// second esc leaves to the menu
	_, cmd = m.Update(escKey())
	if cmd == nil {
		t.Fatal("second esc should navigate")
	}
	if msg, ok := cmd().(navigateMsg); !ok || msg.view != viewMenu {
		t.Error("expected navigate to menu")
	}
}

func TestListNoMatches(t *testing.T) {
	m := newListModel(person.Customer, testRecords(), 15)
	m.query = "zzz"
	m.applyFilter()

	if !strings.Contains(m.View(), "no matches") {
		t.Error("should show no matches")
	}
}

func TestListPagination(t *testing.T) {
	var records []person.Record
	for _, name := range []string{"Asha", "Bhavesh", "Chitra", "Deepak", "Esha"} {
		records = append(records, person.Record{FirstName: name, Mobile: "9876543210", Category: person.Customer})
	}
	m := newListModel(person.Customer, records, 2)

	view := m.View()
	if !strings.Contains(view, "page 1/3") {
		t.Error("should show page indicator")
	}
	if !strings.Contains(view, "Asha") || strings.Contains(view, "Chitra") {
		t.Error("page 1 should show only the first two rows")
	}

	m, _ = m.Update(keyMsg('l'))
	if m.page != 1 || m.cursor != 2 {
		t.Errorf("page = %d cursor = %d, want 1/2", m.page, m.cursor)
	}
	if !strings.Contains(m.View(), "Chitra") {
		t.Error("page 2 should show Chitra")
	}

	m, _ = m.Update(keyMsg('h'))
	if m.page != 0 {
		t.Errorf("page = %d, want 0", m.page)
	}

	// cursor movement follows pages
	m.cursor = 1
	m, _ = m.Update(keyMsg('j'))
	if m.page != 1 {
		t.Errorf("page = %d, want cursor move to advance the page", m.page)
	}
}

func TestListEnterOpensDetail(t *testing.T) {
	m := newListModel(person.Customer, testRecords(), 15)
	m.cursor = 1

	_, cmd := m.Update(enterKey())
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(viewRecordMsg)
	if !ok {
		t.Fatalf("got %T, want viewRecordMsg", cmd())
	}
	if msg.record.FirstName != "Bhavesh" || msg.id != "2" {
		t.Errorf("got %q / %q", msg.record.FirstName, msg.id)
	}
}

func TestListEditEmitsRecord(t *testing.T) {
	m := newListModel(person.Customer, testRecords(), 15)

	_, cmd := m.Update(keyMsg('e'))
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(editRecordMsg)
	if !ok {
		t.Fatalf("got %T, want editRecordMsg", cmd())
	}
	if msg.record.FirstName != "Asha" || msg.id != "1" {
		t.Errorf("got %q / %q", msg.record.FirstName, msg.id)
	}
}

func TestListAddEmitsCategory(t *testing.T) {
	m := newListModel(person.Partner, nil, 15)

	_, cmd := m.Update(keyMsg('a'))
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(openAddFormMsg)
	if !ok || msg.category != person.Partner {
		t.Errorf("got %v, want add for PARTNER", cmd())
	}
}

func TestListDeleteRequiresConfirmation(t *testing.T) {
	m := newListModel(person.Customer, testRecords(), 15)

	m, cmd := m.Update(keyMsg('d'))
	if cmd != nil {
		t.Error("d alone should not delete")
	}
	if !m.confirm {
		t.Fatal("d should ask for confirmation")
	}
	if !strings.Contains(m.View(), "delete \"Asha Patel\"?") {
		t.Error("confirmation should name the record")
	}

	// anything but y cancels
	m, cmd = m.Update(keyMsg('n'))
	if cmd != nil || m.confirm {
		t.Error("n should cancel the confirmation")
	}
}

func TestListDeleteConfirmed(t *testing.T) {
	m := newListModel(person.Customer, testRecords(), 15)
	m.cursor = 2

	m, _ = m.Update(keyMsg('d'))
	m, cmd := m.Update(keyMsg('y'))
	if cmd == nil {
		t.Fatal("expected delete command")
	}
	msg, ok := cmd().(deleteRecordMsg)
	if !ok {
		t.Fatalf("got %T, want deleteRecordMsg", cmd())
	}
	if msg.id != "3" {
		t.Errorf("id = %q, want 3", msg.id)
	}
	if m.confirm {
		t.Error("confirmation should be dismissed")
	}
}

func TestListDeleteOnEmptyListIsInert(t *testing.T) {
	m := newListModel(person.Customer, nil, 15)

	m, _ = m.Update(keyMsg('d'))
	if m.confirm {
		t.Error("d on an empty list should do nothing")
	}
}

func TestListTabCyclesCategory(t *testing.T) {
	m := newListModel(person.Customer, nil, 15)

	_, cmd := m.Update(specialKey(tea.KeyTab))
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(selectCategoryMsg)
	if !ok || msg.category != person.Employee {
		t.Errorf("got %v, want EMPLOYEE next", cmd())
	}

	// shift+tab wraps backwards
	_, cmd = m.Update(specialKey(tea.KeyShiftTab))
	msg, ok = cmd().(selectCategoryMsg)
	if !ok || msg.category != person.Vendor {
		t.Errorf("got %v, want VENDOR previous", cmd())
	}
}

func TestListRefreshRequestsSameCategory(t *testing.T) {
	m := newListModel(person.Employee, nil, 15)

	_, cmd := m.Update(keyMsg('r'))
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(selectCategoryMsg)
	if !ok || msg.category != person.Employee {
		t.Errorf("got %v, want refresh of EMPLOYEE", cmd())
	}
}

func TestListFlashClears(t *testing.T) {
	m := newListModel(person.Customer, testRecords(), 15)
	m.flash = "Customer added successfully"

	if !strings.Contains(m.View(), "added successfully") {
		t.Error("flash should render")
	}

	m, _ = m.Update(flashMsg{})
	if m.flash != "" {
		t.Error("flash should clear")
	}
}
