package main

import (
	"fmt"
	"io"
	"os"

	"github.com/reglet-dev/butane-plugin/application/butane"
	"github.com/reglet-dev/butane-plugin/application/config"
	"github.com/reglet-dev/butane-plugin/application/schema"
	"github.com/reglet-dev/butane-plugin/domain/entities"
	"github.com/reglet-dev/butane-plugin/infrastructure/parser"
	pluginlog "github.com/reglet-dev/butane-plugin/log"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

type rootFlags struct {
	logLevel  string
	logSource bool
	chdir     string
}

// Execute runs the root command with the process's arguments and streams.
func Execute() error {
	return NewRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute()
}

// NewRootCmd builds the command tree bound to the given streams.
func NewRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "butane-plugin [ARGS_FILE|-]",
		Short:         "Run Butane and report the result as JSON",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInvoke(stdin, stdout, stderr, flags),
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.CompletionOptions.HiddenDefaultCmd = true
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&flags.logSource, "log-source", false, "include source locations in logs")
	root.Flags().StringVar(&flags.chdir, "chdir", "", "run the transpiler in this directory; relative paths resolve against it")

	schemaCmd := &cobra.Command{
		Use:           "schema",
		Short:         "Print the JSON schema of the plugin options",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := schema.RequestSchema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout, string(raw))
			return err
		},
	}
	root.AddCommand(schemaCmd)

	versionCmd := &cobra.Command{
		Use:           "version",
		Short:         "Print plugin metadata",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(stdout, metadata())
		},
	}
	root.AddCommand(versionCmd)

	return root
}

func metadata() entities.Metadata {
	return entities.Metadata{
		Name:        "butane",
		Version:     Version,
		Description: "Wrapper around the CoreOS Butane CLI tool",
		Author:      "vic1707",
	}
}

func runInvoke(stdin io.Reader, stdout, stderr io.Writer, flags *rootFlags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		level, err := pluginlog.ParseLevel(flags.logLevel)
		if err != nil {
			return err
		}
		logger := pluginlog.NewLogger(stderr, pluginlog.WithLevel(level), pluginlog.WithSource(flags.logSource))

		data, err := readArgs(stdin, args)
		if err != nil {
			return report(stdout, butane.FailureResult(err))
		}

		params, err := parser.NewArgsParser().Parse(data)
		if err != nil {
			return report(stdout, butane.FailureResult(err))
		}

		req, err := config.Load(params)
		if err != nil {
			logger.Debug("butane: rejected options", "error", err)
			return report(stdout, butane.FailureResult(err))
		}
		logger.Debug("butane: options", "request", req)

		controller := butane.NewController(
			butane.WithLogger(logger),
			butane.WithWorkdir(flags.chdir),
		)
		res := controller.Invoke(cmd.Context(), req)
		return report(stdout, res)
	}
}

func readArgs(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read arguments from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read arguments file: %w", err)
	}
	return data, nil
}

// report writes res and returns errInvocationFailed for failed results.
func report(stdout io.Writer, res entities.Result) error {
	if err := writeJSON(stdout, res); err != nil {
		return err
	}
	if res.IsFailure() {
		return errInvocationFailed
	}
	return nil
}
