package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newUploadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image and print its URL",
		Example: strings.TrimSpace(`
mineboard upload banner.png
mineboard ads create --title "Spring promo" --target-url https://example.com --image-url <printed url>
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			defer f.Close()

			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := client.Upload(cmd.Context(), args[0], f)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
}
