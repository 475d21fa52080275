package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumenworks/chanhub/cli/internal/api"
	"github.com/lumenworks/chanhub/cli/internal/config"
)

// apiBaseURL resolves the server address. The CHANHUB_API_URL override is
// the only way to point at a non-default server before a config exists.
func apiBaseURL() string {
	if v := os.Getenv("CHANHUB_API_URL"); v != "" {
		return v
	}
	return api.DefaultBaseURL
}

func clientFromConfig(cfg *config.Config) *api.Client {
	base := cfg.APIURL
	if base == "" {
		base = apiBaseURL()
	}
	return api.NewClient(base, cfg.APIKey)
}

// RunInteractiveLogin prompts for username, calls login API, and persists config.
func RunInteractiveLogin(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	if username == "" {
		return fmt.Errorf("username is required")
	}

	client := api.NewClient(apiBaseURL(), "")
	resp, err := client.Login(username)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cfg := &config.Config{
		APIKey:   resp.APIKey,
		UserID:   resp.UserID,
		Username: resp.Username,
		APIURL:   os.Getenv("CHANHUB_API_URL"),
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "logged in as %s\n", resp.Username)
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

// LoginCmd returns the `chanhub login` command.
func LoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a Chanhub server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return RunInteractiveLogin(os.Stdin, os.Stdout)
		},
	}
}
