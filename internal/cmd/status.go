package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumenworks/chanhub/cli/internal/api"
	"github.com/lumenworks/chanhub/cli/internal/config"
)

// RunStatus prints the signed-in user and what the server grants them.
func RunStatus(out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}
	client := clientFromConfig(cfg)

	if _, err := client.Health(); err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	fmt.Fprintf(out, "server: ok\n")
	fmt.Fprintf(out, "signed in as: %s (id %d)\n", cfg.Username, cfg.UserID)

	if cfg.UserID <= 0 {
		fmt.Fprintln(out, "user management: no (user id unknown, log in again)")
		return nil
	}

	records, err := client.GetUserPermissions(cfg.UserID)
	if err != nil {
		fmt.Fprintln(out, "user management: unknown (permissions unavailable)")
		return nil
	}
	access := "no"
	if api.HasUserManagement(records) {
		access = "yes"
	}
	fmt.Fprintf(out, "user management: %s\n", access)
	for _, r := range records {
		fmt.Fprintf(out, "  - %s\n", r.Permission.Slug)
	}
	return nil
}

// StatusCmd returns the `chanhub status` command.
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the signed-in user and server reachability",
		RunE: func(_ *cobra.Command, _ []string) error {
			return RunStatus(os.Stdout)
		},
	}
}
