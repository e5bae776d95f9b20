// Package cmd implements the CLI commands for accimport using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/accimport/core/config"
	"github.com/gaurav-prasanna/accimport/core/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "accimport",
	Short: "Import product accessories pages as structured documents",
	Long: `accimport fetches product accessories pages, rearranges them into
import blocks (details tables, category links and metadata) and writes
each page as Markdown, HTML, JSON, YAML or PDF.

Usage:
  accimport import <url>... [flags]`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ReadFile(viper.GetViper(), viper.GetString("config")); err != nil {
			return err
		}
		logger.Init(logger.Options{
			Debug: viper.GetBool("debug"),
			Quiet: viper.GetBool("quiet"),
			JSON:  viper.GetBool("log_json"),
		})
		return nil
	},
}

func init() {
	config.SetDefaults(viper.GetViper())

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.accimport.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "log errors only")
	flags.Bool("log-json", false, "log JSON lines instead of text")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = viper.BindPFlag("log_json", flags.Lookup("log-json"))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
