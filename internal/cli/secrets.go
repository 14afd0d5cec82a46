package cli

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"mineboard/internal/api"
)

var secretKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

func newSecretsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "Manage system secrets (values are write-only)",
	}
	cmd.AddCommand(newSecretsListCmd(app))
	cmd.AddCommand(newSecretsSetCmd(app))
	cmd.AddCommand(newSecretsDeleteCmd(app))
	return cmd
}

func newSecretsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List secrets (masked values only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			secrets, err := client.ListSecrets(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			rows := make([][]string, 0, len(secrets))
			for _, s := range secrets {
				rows = append(rows, []string{s.Key, s.ValueMasked, s.Description, s.UpdatedBy})
			}
			return writeTableOr(cmd, app, map[string]any{"data": secrets},
				[]string{"KEY", "VALUE", "DESCRIPTION", "UPDATED BY"}, rows)
		},
	}
}

func newSecretsSetCmd(app *App) *cobra.Command {
	var value, valueFile, description string
	cmd := &cobra.Command{
		Use:   "set <KEY>",
		Short: "Create or replace a secret",
		Example: strings.TrimSpace(`
mineboard secrets set SMTP_PASSWORD --value hunter2
mineboard secrets set OPENAI_API_KEY --value-file key.txt

# Read the value from stdin (keeps it out of shell history):
cat key.txt | mineboard secrets set OPENAI_API_KEY --value-file -
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.TrimSpace(args[0])
			if !secretKeyPattern.MatchString(key) {
				return writeErr(cmd, fmt.Errorf("invalid key %q: must be UPPER_SNAKE_CASE", key))
			}
			v, err := resolveSecretValue(cmd, value, valueFile)
			if err != nil {
				return writeErr(cmd, err)
			}
			if v == "" {
				return writeErr(cmd, fmt.Errorf("empty value: pass --value or --value-file"))
			}
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sec, err := client.PutSecret(cmd.Context(), key, api.SecretInput{
				Value:       v,
				Description: description,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": sec})
		},
	}
	cmd.Flags().StringVar(&value, "value", "", "Secret value (prefer --value-file)")
	cmd.Flags().StringVar(&valueFile, "value-file", "", "Read the value from a file, or - for stdin")
	cmd.Flags().StringVar(&description, "description", "", "What this secret is for")
	return cmd
}

func resolveSecretValue(cmd *cobra.Command, value, valueFile string) (string, error) {
	if value != "" && valueFile != "" {
		return "", fmt.Errorf("--value and --value-file are mutually exclusive")
	}
	if valueFile == "" {
		return value, nil
	}
	if valueFile == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimRight(string(b), "\r\n"), nil
	}
	b, err := os.ReadFile(valueFile)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

func newSecretsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <KEY>",
		Short: "Delete a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			key := strings.TrimSpace(args[0])
			if err := client.DeleteSecret(cmd.Context(), key); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": key})
		},
	}
}
