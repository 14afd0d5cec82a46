package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mineboard/internal/api"
	"mineboard/internal/model"
)

func newEventsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Manage platform events",
	}
	cmd.AddCommand(newEventsListCmd(app))
	cmd.AddCommand(newEventsCreateCmd(app))
	cmd.AddCommand(newEventsUpdateCmd(app))
	cmd.AddCommand(newEventsDeleteCmd(app))
	return cmd
}

func newEventsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			events, err := client.ListEvents(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			rows := make([][]string, 0, len(events))
			for _, ev := range events {
				window := ""
				if ev.StartsAt != nil {
					window = ev.StartsAt.String()
				}
				rows = append(rows, []string{
					ev.ID, ev.Title, fmt.Sprintf("%d", ev.RewardTokens),
					fmt.Sprintf("%t", ev.Published), window,
				})
			}
			return writeTableOr(cmd, app, map[string]any{"data": events},
				[]string{"ID", "TITLE", "REWARD", "PUBLISHED", "STARTS"}, rows)
		},
	}
}

type eventFlags struct {
	title       string
	description string
	imageURL    string
	reward      int64
	startsAt    string
	endsAt      string
	published   bool
}

func (f *eventFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Event title")
	cmd.Flags().StringVar(&f.description, "description", "", "Event description")
	cmd.Flags().StringVar(&f.imageURL, "image-url", "", "Banner image URL")
	cmd.Flags().Int64Var(&f.reward, "reward", 0, "Reward tokens for participating")
	cmd.Flags().StringVar(&f.startsAt, "starts-at", "", "Start (YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")")
	cmd.Flags().StringVar(&f.endsAt, "ends-at", "", "End (required when --starts-at is set)")
	cmd.Flags().BoolVar(&f.published, "published", false, "Publish immediately")
}

func (f *eventFlags) input() (api.EventInput, error) {
	in := api.EventInput{
		Title:        strings.TrimSpace(f.title),
		Description:  f.description,
		ImageURL:     f.imageURL,
		RewardTokens: f.reward,
		Published:    f.published,
	}
	if in.Title == "" {
		return in, fmt.Errorf("--title is required")
	}
	if strings.TrimSpace(f.startsAt) != "" && strings.TrimSpace(f.endsAt) == "" {
		return in, fmt.Errorf("--ends-at is required when --starts-at is set")
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

func newEventsCreateCmd(app *App) *cobra.Command {
	var flags eventFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.input()
			if err != nil {
				return writeErr(cmd, err)
			}
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ev, err := client.CreateEvent(cmd.Context(), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ev})
		},
	}
	flags.register(cmd)
	return cmd
}

func newEventsUpdateCmd(app *App) *cobra.Command {
	var flags eventFlags
	cmd := &cobra.Command{
		Use:   "update <event-id>",
		Short: "Update an event",
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
			ev, err := client.UpdateEvent(cmd.Context(), strings.TrimSpace(args[0]), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ev})
		},
	}
	flags.register(cmd)
	return cmd
}

func newEventsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <event-id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if err := client.DeleteEvent(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}
