package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mineboard/internal/api"
	"mineboard/internal/model"
)

func newPackagesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "packages",
		Aliases: []string{"token-packages"},
		Short:   "Manage token packages",
	}
	cmd.AddCommand(newPackagesListCmd(app))
	cmd.AddCommand(newPackagesCreateCmd(app))
	cmd.AddCommand(newPackagesUpdateCmd(app))
	cmd.AddCommand(newPackagesDeleteCmd(app))
	return cmd
}

func newPackagesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List token packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			pkgs, err := client.ListTokenPackages(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			rows := make([][]string, 0, len(pkgs))
			for _, p := range pkgs {
				rows = append(rows, []string{
					p.ID, p.Name, fmt.Sprintf("%d", p.TokenAmount),
					fmt.Sprintf("%.2f", p.PriceUSD), fmt.Sprintf("%.0f%%", p.DiscountPercentage),
					fmt.Sprintf("%t", p.Active),
				})
			}
			return writeTableOr(cmd, app, map[string]any{"data": pkgs},
				[]string{"ID", "NAME", "TOKENS", "PRICE", "DISCOUNT", "ACTIVE"}, rows)
		},
	}
}

type packageFlags struct {
	name        string
	description string
	tokens      int64
	price       float64
	discount    float64
	bonus       int64
	limited     bool
	offerEndsAt string
	featured    bool
	active      bool
}

func (f *packageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Package name")
	cmd.Flags().StringVar(&f.description, "description", "", "Package description")
	cmd.Flags().Int64Var(&f.tokens, "tokens", 0, "Token amount")
	cmd.Flags().Float64Var(&f.price, "price", 0, "Price in USD")
	cmd.Flags().Float64Var(&f.discount, "discount", 0, "Discount percentage (0-100)")
	cmd.Flags().Int64Var(&f.bonus, "bonus-tokens", 0, "Bonus tokens")
	cmd.Flags().BoolVar(&f.limited, "limited", false, "Limited-time offer")
	cmd.Flags().StringVar(&f.offerEndsAt, "offer-ends-at", "", "Offer end (required with --limited)")
	cmd.Flags().BoolVar(&f.featured, "featured", false, "Feature this package")
	cmd.Flags().BoolVar(&f.active, "active", true, "Package is purchasable")
}

func (f *packageFlags) input() (api.TokenPackageInput, error) {
	in := api.TokenPackageInput{
		Name:               strings.TrimSpace(f.name),
		Description:        f.description,
		TokenAmount:        f.tokens,
		PriceUSD:           f.price,
		DiscountPercentage: f.discount,
		BonusTokens:        f.bonus,
		LimitedTimeOffer:   f.limited,
		Featured:           f.featured,
		Active:             f.active,
	}
	if in.Name == "" || in.TokenAmount <= 0 {
		return in, fmt.Errorf("--name and --tokens (> 0) are required")
	}
	if f.discount < 0 || f.discount > 100 {
		return in, fmt.Errorf("--discount must be between 0 and 100")
	}
	if f.limited && strings.TrimSpace(f.offerEndsAt) == "" {
		return in, fmt.Errorf("--offer-ends-at is required with --limited")
	}
	var err error
	if in.OfferEndsAt, err = model.ParseDateTime(f.offerEndsAt); err != nil {
		return in, err
	}
	return in, nil
}

func newPackagesCreateCmd(app *App) *cobra.Command {
	var flags packageFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a token package",
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
			pkg, err := client.CreateTokenPackage(cmd.Context(), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": pkg})
		},
	}
	flags.register(cmd)
	return cmd
}

func newPackagesUpdateCmd(app *App) *cobra.Command {
	var flags packageFlags
	cmd := &cobra.Command{
		Use:   "update <package-id>",
		Short: "Update a token package",
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
			pkg, err := client.UpdateTokenPackage(cmd.Context(), strings.TrimSpace(args[0]), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": pkg})
		},
	}
	flags.register(cmd)
	return cmd
}

func newPackagesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <package-id>",
		Short: "Delete a token package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if err := client.DeleteTokenPackage(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}
