package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mineboard/internal/api"
	"mineboard/internal/model"
)

func parseProvider(s string) (model.PaymentProvider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paypal":
		return model.PaymentProviderPayPal, nil
	case "flutterwave":
		return model.PaymentProviderFlutterwave, nil
	default:
		return "", fmt.Errorf("unknown provider %q (paypal|flutterwave)", s)
	}
}

func newPaymentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Payment gateway configuration",
	}
	cmd.AddCommand(newPaymentsShowCmd(app))
	cmd.AddCommand(newPaymentsUpdateCmd(app))
	return cmd
}

func newPaymentsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <provider>",
		Short: "Show a gateway's configuration (credentials are masked)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := parseProvider(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := client.GetPaymentConfig(cmd.Context(), provider)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	}
}

func newPaymentsUpdateCmd(app *App) *cobra.Command {
	var in api.PaymentGatewayInput
	cmd := &cobra.Command{
		Use:   "update <provider>",
		Short: "Update a gateway (blank credentials keep the stored values)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := parseProvider(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			switch in.Environment {
			case "sandbox", "live":
			default:
				return writeErr(cmd, fmt.Errorf("invalid --environment %q (sandbox|live)", in.Environment))
			}
			if in.MaxPurchaseUSD > 0 && in.MinPurchaseUSD > in.MaxPurchaseUSD {
				return writeErr(cmd, fmt.Errorf("--min-purchase exceeds --max-purchase"))
			}
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := client.UpdatePaymentConfig(cmd.Context(), provider, in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	}
	cmd.Flags().BoolVar(&in.Enabled, "enabled", false, "Enable the gateway")
	cmd.Flags().StringVar(&in.Environment, "environment", "sandbox", "Environment (sandbox|live)")
	cmd.Flags().StringVar(&in.ClientID, "client-id", "", "API client id (blank keeps current)")
	cmd.Flags().StringVar(&in.ClientSecret, "client-secret", "", "API client secret (blank keeps current)")
	cmd.Flags().StringVar(&in.WebhookURL, "webhook-url", "", "Webhook callback URL")
	cmd.Flags().Float64Var(&in.MinPurchaseUSD, "min-purchase", 1, "Minimum purchase in USD")
	cmd.Flags().Float64Var(&in.MaxPurchaseUSD, "max-purchase", 10000, "Maximum purchase in USD")
	return cmd
}
