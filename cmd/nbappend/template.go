package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/nbappend-go/pkg/nbappend"
	"github.com/ukaji3/nbappend-go/pkg/nbappend/models"
	"github.com/ukaji3/nbappend-go/pkg/nbappend/output"
	"github.com/ukaji3/nbappend-go/pkg/nbappend/template"
)

func (a *app) newTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print the cells that would be appended",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl := template.Default()
			if path := a.v.GetString("template"); path != "" {
				loaded, err := template.Load(a.fs, path)
				if err != nil {
					return err
				}
				tmpl = loaded
			}

			raw, err := models.Encode(tmpl.Build())
			if err != nil {
				return err
			}
			data, err := output.Format(raw, nbappend.DefaultIndent)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func (a *app) newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "schema",
		Short:  "Print the JSON Schema of template files",
		Args:   cobra.NoArgs,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := template.Schema()
			if err != nil {
				return fmt.Errorf("generating schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
