// Package main provides the CLI entry point for nbappend.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ukaji3/nbappend-go/pkg/nbappend"
	"github.com/ukaji3/nbappend-go/pkg/nbappend/output"
	"github.com/ukaji3/nbappend-go/pkg/nbappend/template"
)

var version = "dev"

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

// reportedError wraps an error whose diagnostic was already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// app holds the state shared by all commands of one invocation.
type app struct {
	fs      afero.Fs
	v       *viper.Viper
	cfgFile string
}

func main() {
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs, v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "nbappend [notebook.ipynb]",
		Short: "Append analysis cells to a notebook",
		Long: `nbappend appends a fixed sequence of cells (target country selection,
weighted scoring, ranking and a bar chart) to the end of a notebook document
and writes it back to the same path.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(); err != nil {
				return err
			}
			a.initLogging(cmd)
			return nil
		},
		RunE: a.runAppend,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Config file (default: ./.nbappend.yaml or $HOME/.nbappend.yaml)")
	rootCmd.PersistentFlags().String("log-level", "disabled", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("template", "", "Template file with the cells to append (default: built-in)")
	rootCmd.Flags().Int("indent", nbappend.DefaultIndent, "Spaces per indentation level in the written notebook")
	rootCmd.Flags().Bool("atomic", false, "Write to a temporary file and rename it over the notebook")
	rootCmd.Flags().Bool("dry-run", false, "Print a diff of the change without writing")

	_ = a.v.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("template", rootCmd.PersistentFlags().Lookup("template"))
	_ = a.v.BindPFlag("indent", rootCmd.Flags().Lookup("indent"))
	_ = a.v.BindPFlag("atomic", rootCmd.Flags().Lookup("atomic"))
	_ = a.v.BindPFlag("dry-run", rootCmd.Flags().Lookup("dry-run"))
	a.v.SetDefault("notebook", nbappend.DefaultNotebookPath)

	rootCmd.AddCommand(a.newCellsCmd())
	rootCmd.AddCommand(a.newTemplateCmd())
	rootCmd.AddCommand(a.newSchemaCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "nbappend", version)
		},
	}
}

func (a *app) runAppend(cmd *cobra.Command, args []string) error {
	path := a.notebookPath(args)

	opts, err := a.appendOptions(path)
	if err != nil {
		return a.report(cmd, err)
	}

	result, err := nbappend.Append(a.fs, path, opts)
	if err != nil {
		return a.report(cmd, err)
	}

	if opts.DryRun {
		fmt.Fprint(cmd.OutOrStdout(), output.Diff(string(result.Original), string(result.Document)))
		fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %d cells would be appended to %s (%d -> %d cells).\n",
			result.Added, result.Path, result.Before, result.After)
		return nil
	}

	log.Info().Str("path", result.Path).Int("before", result.Before).Int("after", result.After).Msg("notebook updated")
	successColor.Fprintln(cmd.OutOrStdout(), "Notebook updated successfully.")
	return nil
}

func (a *app) appendOptions(path string) (nbappend.Options, error) {
	opts := nbappend.DefaultOptions()
	indent := a.v.GetInt("indent")
	opts.Indent = &indent
	opts.Atomic = a.v.GetBool("atomic")
	opts.DryRun = a.v.GetBool("dry-run")

	tmpl, err := a.cellTemplate(path)
	if err != nil {
		return opts, err
	}
	opts.Template = tmpl
	return opts, nil
}

// cellTemplate returns the configured template, or nil for the built-in one.
func (a *app) cellTemplate(notebookPath string) (*template.Template, error) {
	path := a.v.GetString("template")
	if path == "" {
		return nil, nil
	}
	tmpl, err := template.Load(a.fs, path)
	if err != nil {
		return nil, nbappend.NewNotebookError(notebookPath, nbappend.ErrTemplate, err)
	}
	return tmpl, nil
}

func (a *app) notebookPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.v.GetString("notebook")
}

// report prints the single diagnostic line for a failed run.
func (a *app) report(cmd *cobra.Command, err error) error {
	log.Debug().Err(err).Msg("append failed")
	errorColor.Fprintf(cmd.ErrOrStderr(), "Error updating notebook: %v\n", err)
	return &reportedError{err: err}
}
