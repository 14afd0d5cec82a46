package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mineboard/internal/api"
)

func newKnowledgeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "knowledge",
		Aliases: []string{"kb", "articles"},
		Short:   "Manage the AI knowledge base",
	}
	cmd.AddCommand(newKnowledgeListCmd(app))
	cmd.AddCommand(newKnowledgeShowCmd(app))
	cmd.AddCommand(newKnowledgeCreateCmd(app))
	cmd.AddCommand(newKnowledgeUpdateCmd(app))
	cmd.AddCommand(newKnowledgeDeleteCmd(app))
	return cmd
}

func newKnowledgeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List knowledge base articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			articles, err := client.ListArticles(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			rows := make([][]string, 0, len(articles))
			for _, a := range articles {
				rows = append(rows, []string{
					a.ID, a.Title, a.Category, strings.Join(a.Tags, ","),
					fmt.Sprintf("%t", a.Published),
				})
			}
			return writeTableOr(cmd, app, map[string]any{"data": articles},
				[]string{"ID", "TITLE", "CATEGORY", "TAGS", "PUBLISHED"}, rows)
		},
	}
}

func newKnowledgeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <article-id>",
		Short: "Show one article including its body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			a, err := client.GetArticle(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": a})
		},
	}
}

type articleFlags struct {
	title     string
	category  string
	body      string
	bodyFile  string
	tags      []string
	published bool
}

func (f *articleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Article title")
	cmd.Flags().StringVar(&f.category, "category", "general", "Category")
	cmd.Flags().StringVar(&f.body, "body", "", "Markdown body")
	cmd.Flags().StringVar(&f.bodyFile, "body-file", "", "Read the body from a file, or - for stdin")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().BoolVar(&f.published, "published", false, "Publish the article")
}

func (f *articleFlags) input(cmd *cobra.Command) (api.ArticleInput, error) {
	in := api.ArticleInput{
		Title:     strings.TrimSpace(f.title),
		Category:  f.category,
		Body:      f.body,
		Tags:      f.tags,
		Published: f.published,
	}
	if in.Title == "" {
		return in, fmt.Errorf("--title is required")
	}
	if f.body != "" && f.bodyFile != "" {
		return in, fmt.Errorf("--body and --body-file are mutually exclusive")
	}
	if f.bodyFile != "" {
		var b []byte
		var err error
		if f.bodyFile == "-" {
			b, err = io.ReadAll(cmd.InOrStdin())
		} else {
			b, err = os.ReadFile(f.bodyFile)
		}
		if err != nil {
			return in, err
		}
		in.Body = string(b)
	}
	if strings.TrimSpace(in.Body) == "" {
		return in, fmt.Errorf("empty body: pass --body or --body-file")
	}
	return in, nil
}

func newKnowledgeCreateCmd(app *App) *cobra.Command {
	var flags articleFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an article",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.input(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			a, err := client.CreateArticle(cmd.Context(), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": a})
		},
	}
	flags.register(cmd)
	return cmd
}

func newKnowledgeUpdateCmd(app *App) *cobra.Command {
	var flags articleFlags
	cmd := &cobra.Command{
		Use:   "update <article-id>",
		Short: "Update an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.input(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			a, err := client.UpdateArticle(cmd.Context(), strings.TrimSpace(args[0]), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": a})
		},
	}
	flags.register(cmd)
	return cmd
}

func newKnowledgeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <article-id>",
		Short: "Delete an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if err := client.DeleteArticle(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}
