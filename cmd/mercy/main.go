/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for Mercy. Binds the method/protocol/input
flags and logging options to viper and wires the list, check, mutate and version
subcommands.
*/

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kleascm/mercy/cmd/mercy/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string

	// Transform selection
	method   string
	protocol string
	input    string
	extended bool

	// Logging configuration
	logLevel    string
	logFormat   string
	logDir      string
	logMaxFiles int

	// Mutate configuration
	writeReport bool
	resolve     bool
	showTable   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mercy",
		Short: "Mercy - decoding, hashing, inspection and domain tooling for security work",
		Long: `Mercy is a toolbox for building security assessments. It decodes and encodes text,
computes digests, dumps file bytes, reports host information, performs WHOIS, DNS and
reputation lookups, analyzes unknown strings, and generates bit-flip domain candidates.`,
		Version:       commands.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          commands.Run,
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Log output directory (empty disables log files)")
	rootCmd.PersistentFlags().IntVar(&logMaxFiles, "log-max-files", 10, "Maximum number of log files to keep")

	// Add transform flags
	rootCmd.Flags().StringVarP(&method, "method", "m", "", "Chosen method for data manipulation (ex: decode)")
	rootCmd.Flags().StringVarP(&protocol, "protocol", "p", "", "Chosen protocol for data manipulation (ex: base64)")
	rootCmd.Flags().StringVarP(&input, "input", "i", "", "Input string, file path, or seed")
	rootCmd.Flags().BoolVarP(&extended, "extended", "e", false, "View every available option")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("method", rootCmd.Flags().Lookup("method"))
	viper.BindPFlag("protocol", rootCmd.Flags().Lookup("protocol"))
	viper.BindPFlag("input", rootCmd.Flags().Lookup("input"))
	viper.BindPFlag("extended", rootCmd.Flags().Lookup("extended"))

	// Add list command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every method, protocol and example",
		RunE:  commands.ListCapabilities,
	})

	// Add check command for built-in self-checks
	rootCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Perform built-in self-checks",
		Long: `Validate configuration, log and report directory writability, system information
access, and the outbound network probe.`,
		RunE: commands.PerformSelfCheck,
	})

	// Add mutate command
	mutateCmd := &cobra.Command{
		Use:   "mutate <seed>",
		Short: "Generate bit-flip domain candidates for a seed domain",
		Long: `Flip every bit of every byte of the seed, keep hostname-safe results that still end
in a known extension, and print them in generation order.`,
		Args: cobra.ExactArgs(1),
		RunE: commands.RunMutate,
	}
	mutateCmd.Flags().BoolVar(&writeReport, "report", false, "Write a JSON session report to the report directory")
	mutateCmd.Flags().BoolVar(&resolve, "resolve", false, "Resolve each candidate with DNS")
	mutateCmd.Flags().BoolVar(&showTable, "table", false, "Render candidates as a table")
	viper.BindPFlag("mutate.report", mutateCmd.Flags().Lookup("report"))
	viper.BindPFlag("mutate.resolve", mutateCmd.Flags().Lookup("resolve"))
	viper.BindPFlag("mutate.table", mutateCmd.Flags().Lookup("table"))
	rootCmd.AddCommand(mutateCmd)

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print author, version and documentation information",
		Run:   commands.PrintVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
