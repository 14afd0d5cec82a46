package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mineboard/internal/api"
	"mineboard/internal/model"
	"mineboard/internal/mutate"
)

func newAdsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ads",
		Short: "Manage promotional ads",
	}
	cmd.AddCommand(newAdsListCmd(app))
	cmd.AddCommand(newAdsCreateCmd(app))
	cmd.AddCommand(newAdsUpdateCmd(app))
	cmd.AddCommand(newAdsDeleteCmd(app))
	return cmd
}

func newAdsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all ads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ads, err := client.ListAds(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			rows := make([][]string, 0, len(ads))
			for _, ad := range ads {
				rows = append(rows, []string{
					ad.ID, ad.Title, ad.Placement, string(ad.Status),
					fmt.Sprintf("%d", ad.Impressions), fmt.Sprintf("%d", ad.Clicks),
				})
			}
			return writeTableOr(cmd, app, map[string]any{"data": ads},
				[]string{"ID", "TITLE", "PLACEMENT", "STATUS", "VIEWS", "CLICKS"}, rows)
		},
	}
}

type adFlags struct {
	title       string
	description string
	imageURL    string
	targetURL   string
	placement   string
	status      string
	startsAt    string
	endsAt      string
}

func (f *adFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Ad title")
	cmd.Flags().StringVar(&f.description, "description", "", "Ad description")
	cmd.Flags().StringVar(&f.imageURL, "image-url", "", "Creative image URL (see `mineboard upload`)")
	cmd.Flags().StringVar(&f.targetURL, "target-url", "", "Click-through URL")
	cmd.Flags().StringVar(&f.placement, "placement", "home", "Placement (home|mining|wallet|store)")
	cmd.Flags().StringVar(&f.status, "status", "draft", "Status (draft|active|paused|archived)")
	cmd.Flags().StringVar(&f.startsAt, "starts-at", "", "Schedule start (YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")")
	cmd.Flags().StringVar(&f.endsAt, "ends-at", "", "Schedule end")
}

func (f *adFlags) input() (api.AdInput, error) {
	in := api.AdInput{
		Title:       strings.TrimSpace(f.title),
		Description: f.description,
		ImageURL:    f.imageURL,
		TargetURL:   strings.TrimSpace(f.targetURL),
		Placement:   f.placement,
		Status:      model.AdStatus(f.status),
	}
	var err error
	if in.StartsAt, err = model.ParseDateTime(f.startsAt); err != nil {
		return in, err
	}
	if in.EndsAt, err = model.ParseDateTime(f.endsAt); err != nil {
		return in, err
	}
	return in, nil
}

func newAdsCreateCmd(app *App) *cobra.Command {
	var flags adFlags
	var imageFile string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an ad, optionally uploading its creative first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.input()
			if err != nil {
				return writeErr(cmd, err)
			}
			if in.Title == "" || in.TargetURL == "" {
				return writeErr(cmd, fmt.Errorf("--title and --target-url are required"))
			}
			if imageFile != "" && in.ImageURL != "" {
				return writeErr(cmd, fmt.Errorf("--image-file and --image-url are mutually exclusive"))
			}
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if imageFile == "" {
				ad, err := client.CreateAd(cmd.Context(), in)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": ad})
			}

			// Upload-then-create. On a create failure the error names the
			// already-uploaded URL so a retry with --image-url skips the
			// second upload.
			flow := mutate.NewTwoPhase(
				func(ctx context.Context) (string, error) {
					f, err := os.Open(imageFile)
					if err != nil {
						return "", err
					}
					defer f.Close()
					res, err := client.Upload(ctx, imageFile, f)
					if err != nil {
						return "", err
					}
					return res.URL, nil
				},
				func(ctx context.Context, url string) (*model.Ad, error) {
					in.ImageURL = url
					return client.CreateAd(ctx, in)
				},
			)
			ad, err := flow.Run(cmd.Context())
			if err != nil {
				if staged := flow.StagedURL(); staged != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "image uploaded to %s; retry with --image-url %s\n", staged, staged)
				}
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ad})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&imageFile, "image-file", "", "Upload this image and use its URL as the creative")
	return cmd
}

func newAdsUpdateCmd(app *App) *cobra.Command {
	var flags adFlags
	cmd := &cobra.Command{
		Use:   "update <ad-id>",
		Short: "Update an ad (full replacement of editable fields)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.input()
			if err != nil {
				return writeErr(cmd, err)
			}
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ad, err := client.UpdateAd(cmd.Context(), strings.TrimSpace(args[0]), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ad})
		},
	}
	flags.register(cmd)
	return cmd
}

func newAdsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <ad-id>",
		Short: "Delete an ad",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if err := client.DeleteAd(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}
