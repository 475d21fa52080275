package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lumenworks/chanhub/cli/internal/api"
	"github.com/lumenworks/chanhub/cli/internal/cmd"
	"github.com/lumenworks/chanhub/cli/internal/config"
	"github.com/lumenworks/chanhub/cli/internal/logging"
	"github.com/lumenworks/chanhub/cli/internal/ui"
)

func main() {
	root := &cobra.Command{
		Use:   "chanhub",
		Short: "Chanhub - channel asset admin console",
		Long:  "Chanhub CLI: manage social-media channel assets and platform users from the terminal.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.LoginCmd())
	root.AddCommand(cmd.StatusCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
				fmt.Println("not logged in. run 'chanhub login' first.")
				return err
			}
			cfg = nil
		} else {
			return err
		}
	}

	apiKey := ""
	base := os.Getenv("CHANHUB_API_URL")
	if cfg != nil {
		apiKey = cfg.APIKey
		if cfg.APIURL != "" {
			base = cfg.APIURL
		}
	}
	if base == "" {
		base = api.DefaultBaseURL
	}
	client := api.NewClient(base, apiKey)

	log, err := logging.Open()
	if err != nil {
		log = logging.Discard()
	}

	app := ui.NewApp(client, cfg, log)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
