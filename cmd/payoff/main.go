// Command payoff analyzes option strategies at expiration.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"options-payoff/internal/cli"
	"options-payoff/internal/config"
	"options-payoff/internal/logging"
)

func main() {
	cfg, err := config.Load(configDirFromArgs(os.Args[1:]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLoggerWithConfig(cfg.LogConfig())
	root := cli.NewRootCmd(cfg, logger)
	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configDirFromArgs picks --config out of the arguments before cobra runs,
// since configuration is needed to build the command tree.
func configDirFromArgs(args []string) string {
	fs := pflag.NewFlagSet("payoff", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	dir := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *dir
}
