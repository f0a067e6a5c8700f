package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/balaji-finance/backoffice/internal/person"
)

func newBackend(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// captureStdout runs fn with os.Stdout redirected to a pipe.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("BACKOFFICE_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("BACKOFFICE_API_BASE", "")
}

func TestCmdListPrintsTable(t *testing.T) {
	isolateConfig(t)
	srv := newBackend(t, `[
		{"id": 2, "firstname": "Bhavesh", "lastname": "Shah", "mobile": "9000000001", "category": "CUSTOMER"},
		{"id": 1, "firstname": "Asha", "lastname": "Patel", "mobile": "9876543210", "category": "CUSTOMER"}
	]`)

	out := captureStdout(t, func() {
		CmdList(context.Background(), []string{"--api", srv.URL})
	})

	if !strings.Contains(out, "Asha Patel") || !strings.Contains(out, "Bhavesh Shah") {
		t.Errorf("output missing records:\n%s", out)
	}
	// sorted by first name
	if strings.Index(out, "Asha") > strings.Index(out, "Bhavesh") {
		t.Error("records should sort by first name")
	}
}

func TestCmdListJSON(t *testing.T) {
	isolateConfig(t)
	srv := newBackend(t, `[{"id": 1, "firstname": "Asha", "mobile": "9876543210", "category": "EMPLOYEE"}]`)

	out := captureStdout(t, func() {
		CmdList(context.Background(), []string{"--api", srv.URL, "--json"})
	})

	var records []person.Record
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(records) != 1 || records[0].FirstName != "Asha" {
		t.Errorf("records = %+v", records)
	}
}

func TestCmdListCategoryFilter(t *testing.T) {
	isolateConfig(t)
	srv := newBackend(t, `[
		{"id": 1, "firstname": "Asha", "category": "CUSTOMER"},
		{"id": 2, "firstname": "Raj", "category": "EMPLOYEE"}
	]`)

	out := captureStdout(t, func() {
		CmdList(context.Background(), []string{"--api", srv.URL, "--category", "employee"})
	})

	if strings.Contains(out, "Asha") {
		t.Error("customer should be filtered out")
	}
	if !strings.Contains(out, "Raj") {
		t.Errorf("employee missing:\n%s", out)
	}
}

func TestCmdListEmpty(t *testing.T) {
	isolateConfig(t)
	srv := newBackend(t, `[]`)

	out := captureStdout(t, func() {
		CmdList(context.Background(), []string{"--api", srv.URL})
	})

	if !strings.Contains(out, "no records") {
		t.Errorf("output = %q", out)
	}
}

func TestCmdTemplatePrintsReservedID(t *testing.T) {
	isolateConfig(t)
	srv := newBackend(t, `{"id": 101}`)

	out := captureStdout(t, func() {
		CmdTemplate(context.Background(), []string{"--api", srv.URL, "customer"})
	})

	if strings.TrimSpace(out) != "101" {
		t.Errorf("output = %q, want the reserved id", out)
	}
}

func TestCmdDeletePrintsConfirmation(t *testing.T) {
	isolateConfig(t)
	srv := newBackend(t, ``)

	out := captureStdout(t, func() {
		CmdDelete(context.Background(), []string{"--api", srv.URL, "42"})
	})

	if !strings.Contains(out, "deleted 42") {
		t.Errorf("output = %q", out)
	}
}
