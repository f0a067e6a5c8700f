// Package cli implements backoffice's non-interactive subcommands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/balaji-finance/backoffice/internal/api"
	"github.com/balaji-finance/backoffice/internal/config"
	"github.com/balaji-finance/backoffice/internal/person"
	"github.com/balaji-finance/backoffice/internal/session"
)

// ReadPassword prompts for a password on stderr and reads it without echo.
func ReadPassword(prompt string, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// newClient builds an API client from the config file and an optional
// --api override.
func newClient(apiBase string) *api.Client {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "backoffice: %v\n", err)
		os.Exit(1)
	}
	if apiBase != "" {
		cfg.APIBase = apiBase
	}
	return api.NewClient(api.Config{BaseURL: cfg.APIBase, Timeout: cfg.RequestTimeout()})
}

// CmdList fetches and prints personal-info records.
func CmdList(ctx context.Context, args []string) {
	flags := pflag.NewFlagSet("list", pflag.ExitOnError)
	category := flags.StringP("category", "c", "", "filter by category (CUSTOMER, EMPLOYEE, PARTNER, VENDOR)")
	asJSON := flags.Bool("json", false, "output as JSON")
	apiBase := flags.String("api", "", "backend base URL")
	_ = flags.Parse(args)

	client := newClient(*apiBase)

	var records []person.Record
	var err error
	if *category != "" {
		cat, ok := person.ParseCategory(*category)
		if !ok {
			fmt.Fprintf(os.Stderr, "backoffice: unknown category %q\n", *category)
			os.Exit(1)
		}
		records, err = client.FindByCategory(ctx, cat)
	} else {
		records, err = client.FindAll(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "backoffice: list: %v\n", err)
		os.Exit(1)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].FirstName < records[j].FirstName
	})

	if *asJSON {
		printJSON(records)
		return
	}

	if len(records) == 0 {
		fmt.Println("no records")
		return
	}

	for _, r := range records {
		fmt.Printf("  %-12s %-24s %-12s %-10s %s\n",
			r.ID,
			r.DisplayName(),
			r.Mobile,
			r.Category.Label(),
			r.Address,
		)
	}
}

// CmdTemplate reserves a new record id for a category and prints it.
func CmdTemplate(ctx context.Context, args []string) {
	flags := pflag.NewFlagSet("template", pflag.ExitOnError)
	apiBase := flags.String("api", "", "backend base URL")
	_ = flags.Parse(args)

	if flags.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: backoffice template <category>")
		os.Exit(1)
	}

	cat, ok := person.ParseCategory(flags.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "backoffice: unknown category %q\n", flags.Arg(0))
		os.Exit(1)
	}

	rec, err := newClient(*apiBase).NewTemplate(ctx, cat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "backoffice: template: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(rec.ID)
}

// CmdDelete removes a record by id.
func CmdDelete(ctx context.Context, args []string) {
	flags := pflag.NewFlagSet("delete", pflag.ExitOnError)
	apiBase := flags.String("api", "", "backend base URL")
	_ = flags.Parse(args)

	if flags.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: backoffice delete <id>")
		os.Exit(1)
	}

	id := person.ID(flags.Arg(0))
	if err := newClient(*apiBase).Delete(ctx, id); err != nil {
		fmt.Fprintf(os.Stderr, "backoffice: delete: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("deleted %s\n", id)
}

// CmdSettings prints the operator settings stored behind the login password.
func CmdSettings() {
	dir := session.DataDir()
	if session.IsFirstRun(dir) {
		fmt.Fprintln(os.Stderr, "backoffice: no session yet; run the TUI once to log in")
		os.Exit(1)
	}

	pass, err := ReadPassword("password: ", os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "backoffice: %v\n", err)
		os.Exit(1)
	}

	s, err := session.Open(dir, pass)
	if err != nil {
		fmt.Fprintf(os.Stderr, "backoffice: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	printJSON(s.Settings())
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "backoffice: encode json: %v\n", err)
		os.Exit(1)
	}
}
