package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/config"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/presentation"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/schema"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/template"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/markdown"
)

const renderWidth = 80

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Browse the template catalog",
	Long: `Browse the template catalog: the built-in templates plus any YAML tables
found in templates.user_dir.`,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates as JSON",
	Long: `List the template catalog as JSON.

Filters combine: a template is listed when it matches every given filter.
A template matches --tag when it carries any of the given tags.

Examples:
  # Everything
  schemadesigner templates list

  # Art templates
  schemadesigner templates list --category art

  # Templates that need no images
  schemadesigner templates list --requires-images=false

  # Personal or diary templates
  schemadesigner templates list --tag personal --tag diary`,
	Args: cobra.NoArgs,
	RunE: withConfig(runTemplatesList),
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the document a template produces",
	Long: `Show the schema document a template produces, keyed by the template id,
in the same JSON shape as the workspace file. With --markdown a readable
summary is printed instead, and --render styles it for the terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: withConfig(runTemplatesShow),
}

var (
	listCategory          string
	listTags              []string
	listRequiresImages    bool
	listRequiresFiltering bool

	showMarkdown bool
	showRender   bool
)

func init() {
	templatesListCmd.Flags().StringVar(&listCategory, "category", "", "only templates of this category")
	templatesListCmd.Flags().StringArrayVar(&listTags, "tag", nil, "only templates with this tag (repeatable)")
	templatesListCmd.Flags().BoolVar(&listRequiresImages, "requires-images", false, "filter on requires_images")
	templatesListCmd.Flags().BoolVar(&listRequiresFiltering, "requires-filtering", false, "filter on requires_filtering")

	templatesShowCmd.Flags().BoolVar(&showMarkdown, "markdown", false, "print a markdown summary")
	templatesShowCmd.Flags().BoolVar(&showRender, "render", false, "style the markdown summary for the terminal")

	templatesCmd.AddCommand(templatesListCmd, templatesShowCmd)
	rootCmd.AddCommand(templatesCmd)
}

// templateQuery builds the catalog query. Boolean filters only apply when
// their flag was given.
func templateQuery(cmd *cobra.Command) template.Query {
	q := template.Query{Category: listCategory, Tags: listTags}
	if cmd.Flags().Changed("requires-images") {
		v := listRequiresImages
		q.RequiresImages = &v
	}
	if cmd.Flags().Changed("requires-filtering") {
		v := listRequiresFiltering
		q.RequiresFiltering = &v
	}
	return q
}

func runTemplatesList(cmd *cobra.Command, _ []string, c config.Config) error {
	svc, err := newTemplateService(c)
	if err != nil {
		return err
	}
	infos, err := svc.Search(cmd.Context(), templateQuery(cmd))
	if err != nil {
		return fmt.Errorf("searching templates: %w", err)
	}
	return presentation.NewFormatter(cmd.OutOrStdout()).FormatTemplates(presentation.FromTemplateInfos(infos))
}

func runTemplatesShow(cmd *cobra.Command, args []string, c config.Config) error {
	svc, err := newTemplateService(c)
	if err != nil {
		return err
	}
	info, err := svc.Info(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !showMarkdown && !showRender {
		return presentation.NewFormatter(out).JSON(schema.Document{info.ID: info.Preview})
	}

	md := presentation.TemplateMarkdown(info)
	if showRender {
		renderer, err := markdown.New(renderWidth, c.UI.Theme)
		if err != nil {
			return fmt.Errorf("creating markdown renderer: %w", err)
		}
		if md, err = renderer.Render(md); err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}
	}
	_, err = fmt.Fprint(out, md)
	return err
}
