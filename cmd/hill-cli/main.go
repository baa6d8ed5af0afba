// Package main provides the hill-cli command line interface for the Hill cipher.
package main

import (
	"io"
	"os"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	hill "github.com/BackendStack21/hill-go"
)

const (
	version = "1.0.0"
	appName = "hill-cli"
)

func main() {
	logger := newLogger(os.Stderr)
	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: appName,
		Level:  log.InfoLevel,
	})
}

// newRootCmd builds the command tree. Errors are returned from Execute
// rather than printed so main decides how to report them.
func newRootCmd(logger *log.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Hill cipher command line interface",
		Long: `hill-cli encrypts and decrypts text with the Hill cipher over A-Z.

Keys are square integer matrices written as rows separated by ';' and
entries separated by ',', e.g. "3,3;2,5" or "17,17,5;21,18,21;2,2,19".
A key is usable when its determinant is coprime with 26.`,
		Example: `    # Encrypt a message
    hill-cli encrypt --key "3,3;2,5" --message "HELP"

    # Decrypt it again (padding 'X' is kept)
    hill-cli decrypt --key "3,3;2,5" --message "HIAT" --format text

    # Check a key and show its inverse mod 26
    hill-cli validate --key "17,17,5;21,18,21;2,2,19"

    # Generate a random 3x3 key into a file and use it
    hill-cli keygen --size 3 --output key.json
    hill-cli encrypt --key-file key.json --input message.txt`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}
	root.SetVersionTemplate(appName + " version {{.Version}}\nHill library version " + hill.Version + "\n")

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default: hill.yaml in the user config dir or .)")
	pf.StringP("format", "f", string(FormatJSON), "output format: json, yaml or text")
	pf.StringP("output", "o", "", "output file (default: stdout)")
	pf.Bool("verbose", false, "verbose output")
	pf.BoolP("timing", "t", false, "show timing information")

	root.AddCommand(
		newEncryptCmd(logger),
		newDecryptCmd(logger),
		newValidateCmd(logger),
		newExamplesCmd(logger),
		newKeygenCmd(logger),
		newBenchmarkCmd(logger),
		newVersionCmd(),
	)
	return root
}
