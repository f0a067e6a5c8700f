package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"

	"github.com/balaji-finance/backoffice/internal/cli"
	"github.com/balaji-finance/backoffice/internal/config"
	"github.com/balaji-finance/backoffice/internal/session"
	"github.com/balaji-finance/backoffice/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("backoffice"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	if len(os.Args) > 1 {
		runCLI(ctx, os.Args[1])
		_ = app.Close()
		return
	}

	if err := runTUI(); err != nil {
		slog.Error("tui", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func runCLI(ctx context.Context, cmd string) {
	switch cmd {
	case "version":
		fmt.Printf("backoffice %s\n", version)
	case "list":
		cli.CmdList(ctx, os.Args[2:])
	case "template":
		cli.CmdTemplate(ctx, os.Args[2:])
	case "delete":
		cli.CmdDelete(ctx, os.Args[2:])
	case "settings":
		cli.CmdSettings()
	default:
		fmt.Fprintf(os.Stderr, "backoffice: unknown command %q\n", cmd)
		os.Exit(1)
	}
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dataDir := session.DataDir()
	firstRun := session.IsFirstRun(dataDir)

	m := tui.New(version, dataDir, cfg, firstRun)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := finalModel.(tui.Model); ok {
		fm.Close()
	}

	return nil
}
