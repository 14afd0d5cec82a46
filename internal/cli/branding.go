package cli

import (
	"github.com/spf13/cobra"

	"mineboard/internal/model"
)

func newBrandingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branding",
		Short: "Show or update platform branding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := client.GetBranding(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	}
	cmd.AddCommand(newBrandingUpdateCmd(app))
	return cmd
}

func newBrandingUpdateCmd(app *App) *cobra.Command {
	var in model.BrandingConfig
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update branding (flags not passed keep their current server value)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			current, err := client.GetBranding(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			next := *current
			if cmd.Flags().Changed("name") {
				next.PlatformName = in.PlatformName
			}
			if cmd.Flags().Changed("tagline") {
				next.Tagline = in.Tagline
			}
			if cmd.Flags().Changed("logo-url") {
				next.LogoURL = in.LogoURL
			}
			if cmd.Flags().Changed("favicon-url") {
				next.FaviconURL = in.FaviconURL
			}
			if cmd.Flags().Changed("primary-color") {
				next.PrimaryColor = in.PrimaryColor
			}
			if cmd.Flags().Changed("secondary-color") {
				next.SecondaryColor = in.SecondaryColor
			}
			if cmd.Flags().Changed("support-email") {
				next.SupportEmail = in.SupportEmail
			}
			updated, err := client.UpdateBranding(cmd.Context(), next)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}
	cmd.Flags().StringVar(&in.PlatformName, "name", "", "Platform display name")
	cmd.Flags().StringVar(&in.Tagline, "tagline", "", "Tagline")
	cmd.Flags().StringVar(&in.LogoURL, "logo-url", "", "Logo URL (see `mineboard upload`)")
	cmd.Flags().StringVar(&in.FaviconURL, "favicon-url", "", "Favicon URL")
	cmd.Flags().StringVar(&in.PrimaryColor, "primary-color", "", "Primary color (#rrggbb)")
	cmd.Flags().StringVar(&in.SecondaryColor, "secondary-color", "", "Secondary color (#rrggbb)")
	cmd.Flags().StringVar(&in.SupportEmail, "support-email", "", "Support contact email")
	return cmd
}
