package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"mineboard/internal/store"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change local configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.Store{Dir: app.Dir}
			cfg, err := st.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	}
	cmd.AddCommand(newConfigSetServerCmd(app))
	return cmd
}

func newConfigSetServerCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-server <url>",
		Short: "Persist the admin API base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.Store{Dir: app.Dir}
			cfg, err := st.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.ServerURL = strings.TrimRight(strings.TrimSpace(args[0]), "/")
			if err := st.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	}
}
