package tui

import (
	"strings"
	"testing"

	"github.com/balaji-finance/backoffice/internal/api"
	"github.com/balaji-finance/backoffice/internal/config"
	"github.com/balaji-finance/backoffice/internal/session"
)

func TestSettingsShowsConfigAsPlaceholder(t *testing.T) {
	m := newSettingsModel(session.Settings{}, config.Config{PageSize: 15})

	if got := m.inputs[settingsAPIBase].Placeholder; got != api.DefaultBaseURL {
		t.Errorf("placeholder = %q, want client default", got)
	}
	if got := m.inputs[settingsPageSize].Placeholder; got != "15" {
		t.Errorf("page size placeholder = %q", got)
	}

	m = newSettingsModel(session.Settings{}, config.Config{APIBase: "http://cfg:8881/api", PageSize: 20})
	if got := m.inputs[settingsAPIBase].Placeholder; got != "http://cfg:8881/api" {
		t.Errorf("placeholder = %q, want config value", got)
	}
}

func TestSettingsPrefillsStoredOverrides(t *testing.T) {
	s := session.Settings{APIBase: "http://stored:9000/api", PageSize: 25}
	m := newSettingsModel(s, config.Config{PageSize: 15})

	if got := m.inputs[settingsAPIBase].Value(); got != "http://stored:9000/api" {
		t.Errorf("api base = %q", got)
	}
	if got := m.inputs[settingsPageSize].Value(); got != "25" {
		t.Errorf("page size = %q", got)
	}
}

func TestSettingsSaveEmitsOverrides(t *testing.T) {
	m := newSettingsModel(session.Settings{}, config.Config{PageSize: 15})
	m.inputs[settingsAPIBase].SetValue("http://new:9000/api")
	m.inputs[settingsPageSize].SetValue("30")

	_, cmd := m.Update(ctrlS())
	if cmd == nil {
		t.Fatal("expected save command")
	}
	msg, ok := cmd().(saveSettingsMsg)
	if !ok {
		t.Fatalf("got %T, want saveSettingsMsg", cmd())
	}
	if msg.settings.APIBase != "http://new:9000/api" {
		t.Errorf("api base = %q", msg.settings.APIBase)
	}
	if msg.settings.PageSize != 30 {
		t.Errorf("page size = %d", msg.settings.PageSize)
	}
}

func TestSettingsEmptyValuesMeanFallback(t *testing.T) {
	m := newSettingsModel(session.Settings{}, config.Config{PageSize: 15})

	_, cmd := m.Update(ctrlS())
	if cmd == nil {
		t.Fatal("expected save command")
	}
	msg := cmd().(saveSettingsMsg)
	if msg.settings.APIBase != "" || msg.settings.PageSize != 0 {
		t.Errorf("blank inputs should save zero overrides, got %+v", msg.settings)
	}
}

func TestSettingsRejectsBadPageSize(t *testing.T) {
	for _, bad := range []string{"abc", "-5", "0"} {
		m := newSettingsModel(session.Settings{}, config.Config{PageSize: 15})
		m.inputs[settingsPageSize].SetValue(bad)

		m, _ = m.Update(ctrlS())
		if !strings.Contains(m.View(), "page size must be a positive number") {
			t.Errorf("page size %q should be rejected", bad)
		}
	}
}

func TestSettingsEscReturnsToMenu(t *testing.T) {
	m := newSettingsModel(session.Settings{}, config.Config{})

	_, cmd := m.Update(escKey())
	if cmd == nil {
		t.Fatal("expected command")
	}
	if msg, ok := cmd().(navigateMsg); !ok || msg.view != viewMenu {
		t.Error("esc should return to the menu")
	}
}
