package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mineboard/internal/api"
	"mineboard/internal/format"
	"mineboard/internal/store"
	"mineboard/internal/tui"
)

type App struct {
	Dir        string
	Server     string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "mineboard",
		Short:        "Admin console (TUI + CLI) for the mining platform backend",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive console
  mineboard

  # Scriptable commands
  mineboard ads list
  mineboard kyc list --status pending
  mineboard kyc approve <id> --note "docs verified"
  mineboard secrets set SMTP_PASSWORD --value-file -
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("MINEBOARD_DIR", ""), "Path to state dir (default: ~/.mineboard)")
	cmd.PersistentFlags().StringVar(&app.Server, "server", "", "Admin API base URL (overrides config and MINEBOARD_SERVER)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("MINEBOARD_FORMAT", "json"), "Output format (json|table)")

	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newAdsCmd(app))
	cmd.AddCommand(newPackagesCmd(app))
	cmd.AddCommand(newKYCCmd(app))
	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newSecretsCmd(app))
	cmd.AddCommand(newMiningCmd(app))
	cmd.AddCommand(newBrandingCmd(app))
	cmd.AddCommand(newPaymentsCmd(app))
	cmd.AddCommand(newKnowledgeCmd(app))
	cmd.AddCommand(newUploadCmd(app))
	cmd.AddCommand(newAuditCmd(app))

	return cmd
}

func runTUI(app *App) error {
	st, cfg, client, err := connect(app)
	if err != nil {
		return err
	}
	return tui.Run(st, cfg, client)
}

// connect resolves config (file, env, flags, in that order) and builds the
// API client.
func connect(app *App) (store.Store, store.Config, *api.Client, error) {
	st := store.Store{Dir: app.Dir}
	cfg, err := st.LoadConfig()
	if err != nil {
		return st, cfg, nil, err
	}
	if app.Server != "" {
		cfg.ServerURL = strings.TrimRight(strings.TrimSpace(app.Server), "/")
	}
	if cfg.ServerURL == "" {
		return st, cfg, nil, fmt.Errorf("no server configured: set --server, MINEBOARD_SERVER, or run `mineboard config set-server <url>`")
	}

	var opts []api.Option
	if cfg.RequestTimeoutSeconds > 0 {
		opts = append(opts, api.WithTimeout(time.Duration(cfg.RequestTimeoutSeconds)*time.Second))
	}
	if cfg.RateLimitPerSecond > 0 {
		opts = append(opts, api.WithRateLimit(cfg.RateLimitPerSecond, int(cfg.RateLimitPerSecond*2)))
	}
	client, err := api.New(cfg.ServerURL, opts...)
	if err != nil {
		return st, cfg, nil, err
	}
	return st, cfg, client, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

// writeTableOr renders a table when --format=table, JSON otherwise.
func writeTableOr(cmd *cobra.Command, app *App, v any, headers []string, rows [][]string) error {
	if app.Format == "table" {
		return format.WriteTable(cmd.OutOrStdout(), headers, rows)
	}
	return writeOut(cmd, app, v)
}
