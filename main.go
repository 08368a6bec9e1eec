// toolbox: small host and arithmetic utilities
//
// Usage:
//
//	toolbox gcd      GCD and LCM of three integers
//	toolbox planet   surface area and rotation frequency of a planet
//	toolbox sysinfo  report of the local host
//	toolbox serve    Prometheus exporter and snapshot API
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"toolbox/cmd/edit"
	"toolbox/cmd/gcd"
	"toolbox/cmd/history"
	"toolbox/cmd/planet"
	"toolbox/cmd/serve"
	"toolbox/cmd/sysinfo"
	"toolbox/internal/prompt"
	"toolbox/internal/report"
	"toolbox/pkg/config"
)

const version = "1.0.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "toolbox",
	Short:         "Host report, exporter and arithmetic utilities",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var gcdCmd = &cobra.Command{
	Use:   "gcd [a b c]",
	Short: "Print the GCD and LCM of three positive integers",
	Args:  cobra.MaximumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return gcd.Run(args, prompt.Stdin(), cmd.OutOrStdout())
	},
}

var planetCmd = &cobra.Command{
	Use:   "planet [radius period]",
	Short: "Print a planet's surface area and rotation frequency",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return planet.Run(args, prompt.Stdin(), cmd.OutOrStdout())
	},
}

var sysinfoOpts sysinfo.Options

var sysinfoCmd = &cobra.Command{
	Use:   "sysinfo",
	Short: "Print system, CPU, memory, disk and network information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sysinfo.Run(cmd.Context(), configPath, sysinfoOpts)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect snapshots saved with 'sysinfo --save'",
}

var historyLimit int

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return history.List(configPath, historyLimit)
	},
}

var historyFormat string

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		return history.Show(configPath, id, historyFormat)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve Prometheus metrics, live snapshots and history over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve.Run(configPath, version)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the configuration file in your system editor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return edit.Run(configPath)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("toolbox v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		fmt.Sprintf("path to config file (default: ./%s, then %s)", config.DefaultLocalPath, config.DefaultSystemPath))

	formats := fmt.Sprintf("output format: %v (default from config)", report.Formats)
	sysinfoCmd.Flags().StringVarP(&sysinfoOpts.Format, "format", "f", "", formats)
	sysinfoCmd.Flags().BoolVar(&sysinfoOpts.Save, "save", false, "store the snapshot in the history database")

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of snapshots to list (0 for all)")
	historyShowCmd.Flags().StringVarP(&historyFormat, "format", "f", "", formats)
	historyCmd.AddCommand(historyListCmd, historyShowCmd)

	rootCmd.AddCommand(gcdCmd, planetCmd, sysinfoCmd, historyCmd, serveCmd, editCmd, versionCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
