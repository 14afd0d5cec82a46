package cli

import (
	"github.com/spf13/cobra"

	"mineboard/internal/model"
)

func newMiningCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mining",
		Short: "Mining statistics and settings",
	}
	cmd.AddCommand(newMiningStatsCmd(app))
	cmd.AddCommand(newMiningSettingsCmd(app))
	return cmd
}

func newMiningStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show current mining statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			stats, err := client.GetMiningStats(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": stats})
		},
	}
}

func newMiningSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or update mining settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := client.GetMiningSettings(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	}
	cmd.AddCommand(newMiningSettingsUpdateCmd(app))
	return cmd
}

func newMiningSettingsUpdateCmd(app *App) *cobra.Command {
	var in model.MiningSettings
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace mining settings (flags not passed keep their current server value)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			// Read-modify-write: start from the live settings so unspecified
			// flags are preserved rather than zeroed.
			current, err := client.GetMiningSettings(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			next := *current
			if cmd.Flags().Changed("rate") {
				next.BaseRatePerHour = in.BaseRatePerHour
			}
			if cmd.Flags().Changed("session-hours") {
				next.SessionHours = in.SessionHours
			}
			if cmd.Flags().Changed("streak-bonus") {
				next.StreakBonusPercent = in.StreakBonusPercent
			}
			if cmd.Flags().Changed("max-streak-days") {
				next.MaxStreakDays = in.MaxStreakDays
			}
			if cmd.Flags().Changed("referral-bonus") {
				next.ReferralBonusTokens = in.ReferralBonusTokens
			}
			if cmd.Flags().Changed("daily-cap") {
				next.DailyCapTokens = in.DailyCapTokens
			}
			if cmd.Flags().Changed("maintenance") {
				next.MaintenanceMode = in.MaintenanceMode
			}
			updated, err := client.UpdateMiningSettings(cmd.Context(), next)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}
	cmd.Flags().Float64Var(&in.BaseRatePerHour, "rate", 0, "Base tokens mined per hour")
	cmd.Flags().IntVar(&in.SessionHours, "session-hours", 0, "Mining session length in hours (1-48)")
	cmd.Flags().Float64Var(&in.StreakBonusPercent, "streak-bonus", 0, "Streak bonus percentage")
	cmd.Flags().IntVar(&in.MaxStreakDays, "max-streak-days", 0, "Streak bonus cap in days")
	cmd.Flags().Int64Var(&in.ReferralBonusTokens, "referral-bonus", 0, "Referral bonus tokens")
	cmd.Flags().Int64Var(&in.DailyCapTokens, "daily-cap", 0, "Daily mining cap in tokens (0 = no cap)")
	cmd.Flags().BoolVar(&in.MaintenanceMode, "maintenance", false, "Pause all mining")
	return cmd
}
