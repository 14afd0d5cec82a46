package cli

import (
	"time"

	"github.com/spf13/cobra"

	"mineboard/internal/store"
)

func newAuditCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the local audit log (mutations made from this machine)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.Store{Dir: app.Dir}
			log, err := st.OpenAudit(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer log.Close()

			entries, err := log.Recent(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.At.Local().Format(time.DateTime), e.Action, e.Resource,
					e.RecordID, e.Outcome,
				})
			}
			return writeTableOr(cmd, app, map[string]any{"data": entries},
				[]string{"AT", "ACTION", "RESOURCE", "RECORD", "OUTCOME"}, rows)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum entries to show")
	return cmd
}
