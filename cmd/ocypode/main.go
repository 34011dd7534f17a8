package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ShigekuniWork/ocypode/internal/config"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "ocypode",
		Short: "Inspect and produce Ocypode protocol frames",
		Long: `ocypode works with frames of the Ocypode pub/sub wire protocol.

It decodes frames into readable messages, encodes messages into
frames, validates topics and topic filters, and serves the same
operations over HTTP together with codec metrics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to ocypode.toml (default: nearest ocypode.toml above the working directory)")

	rootCmd.AddCommand(
		decodeCmd(opts),
		encodeCmd(),
		topicCmd(),
		serveCmd(opts),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig loads the file named by --config, or the nearest ocypode.toml,
// or the defaults.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFile(o.configPath)
	}
	return config.LoadFromWorkingDir()
}

// printJSON writes v to w as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
