package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/config"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/presentation"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/schema"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/workspace"
)

// ErrSchemaExists is returned by new when the name is taken.
var ErrSchemaExists = errors.New("schema already exists")

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Add a schema to the workspace file",
	Long: `Add an empty schema, or one built from a catalog template, to the
workspace file and save it.

Examples:
  schemadesigner new products
  schemadesigner new painters --template artist
  schemadesigner new notes -f ~/site/schemas.json --template writing`,
	Args: cobra.ExactArgs(1),
	RunE: withConfig(runNew),
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the schemas of the workspace file as JSON",
	Args:  cobra.NoArgs,
	RunE:  withConfig(runList),
}

var newTemplate string

func init() {
	newCmd.Flags().StringVarP(&newTemplate, "template", "t", "", "template id to start from")

	rootCmd.AddCommand(newCmd, listCmd)
}

func runNew(cmd *cobra.Command, args []string, c config.Config) error {
	name := strings.TrimSpace(args[0])
	if err := workspace.ValidateName(name); err != nil {
		return err
	}

	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	if ws.Registry().Has(name) {
		return fmt.Errorf("%w: %q in %s", ErrSchemaExists, name, ws.Path())
	}

	s := schema.New(name)
	if newTemplate != "" {
		svc, err := newTemplateService(c)
		if err != nil {
			return err
		}
		if s, err = svc.Instantiate(newTemplate, name); err != nil {
			return err
		}
	}

	ws.AddSchema(s)
	if err := ws.Save(); err != nil {
		return err
	}

	if newTemplate != "" {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created %s from %s in %s\n", name, newTemplate, ws.Path())
	} else {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created %s in %s\n", name, ws.Path())
	}
	return err
}

func runList(cmd *cobra.Command, _ []string, c config.Config) error {
	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	return presentation.NewFormatter(cmd.OutOrStdout()).JSON(presentation.SummarizeWorkspace(ws))
}
