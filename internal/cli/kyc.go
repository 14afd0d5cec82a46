package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mineboard/internal/api"
	"mineboard/internal/model"
)

func newKYCCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kyc",
		Short: "Review identity verification submissions",
	}
	cmd.AddCommand(newKYCListCmd(app))
	cmd.AddCommand(newKYCReviewCmd(app, "approve"))
	cmd.AddCommand(newKYCReviewCmd(app, "reject"))
	return cmd
}

func newKYCListCmd(app *App) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List KYC submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch status {
			case "", "pending", "approved", "rejected":
			default:
				return writeErr(cmd, fmt.Errorf("invalid --status %q (pending|approved|rejected)", status))
			}
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			subs, err := client.ListKYC(cmd.Context(), model.KYCStatus(status))
			if err != nil {
				return writeErr(cmd, err)
			}
			rows := make([][]string, 0, len(subs))
			for _, s := range subs {
				ai := ""
				if s.AIRecommendation != "" {
					ai = fmt.Sprintf("%s (%.0f%%)", s.AIRecommendation, s.AIConfidence*100)
				}
				rows = append(rows, []string{
					s.ID, s.FullName, s.DocumentType, string(s.Status), ai,
				})
			}
			return writeTableOr(cmd, app, map[string]any{"data": subs},
				[]string{"ID", "NAME", "DOCUMENT", "STATUS", "AI"}, rows)
		},
	}
	cmd.Flags().StringVar(&status, "status", "pending", "Filter by status (pending|approved|rejected; empty for all)")
	return cmd
}

func newKYCReviewCmd(app *App, action string) *cobra.Command {
	var note string
	cmd := &cobra.Command{
		Use:   action + " <submission-id>",
		Short: strings.ToUpper(action[:1]) + action[1:] + " a KYC submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			in := api.KYCReviewInput{Note: note}
			var sub *model.KYCSubmission
			if action == "approve" {
				sub, err = client.ApproveKYC(cmd.Context(), id, in)
			} else {
				sub, err = client.RejectKYC(cmd.Context(), id, in)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": sub})
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "Review note attached to the decision")
	return cmd
}
