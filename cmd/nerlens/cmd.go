package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nerlens/nerlens/config"
	"github.com/nerlens/nerlens/internal"
)

var (
	log *logrus.Logger

	cfgFile     string
	showVersion bool
	dumpConfig  bool
	generateKey bool
)

var cmd = &cobra.Command{
	Use:   "nerlens",
	Short: "nerlens extracts named entities from text over HTTP",
	Run:   func(cmd *cobra.Command, args []string) { run(cmd.Context()) },
}

var analyzeCmd = &cobra.Command{
	Use:          "analyze [text]",
	Short:        "Extract named entities from text given as arguments or on stdin",
	Example:      `nerlens analyze "Barack Obama visited Paris."` + "\necho 'Angela Merkel met Emmanuel Macron.' | nerlens analyze",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error configuring nerlens: %w", err)
		}
		config.SetLogLevel(cfg)

		text, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		return runAnalyze(cmd.Context(), NewAppState(cfg), text, cmd.OutOrStdout())
	},
}

var dumpJSONSchemaCmd = &cobra.Command{
	Use:     "json-schema",
	Short:   "Generates JSON Schema for nerlens' configuration file",
	Example: "nerlens json-schema > nerlens_config_schema.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := config.JSONSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(schema))
		return nil
	},
}

func init() {
	cmd.AddCommand(analyzeCmd)
	cmd.AddCommand(dumpJSONSchemaCmd)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default config.yaml)")
	cmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "print version number")
	cmd.PersistentFlags().BoolVarP(&dumpConfig, "dump-config", "d", false, "dump config")
	cmd.PersistentFlags().
		BoolVarP(&generateKey, "generate-token", "g", false, "generate a new JWT token")
}

// Execute executes the root cobra command. SIGINT and SIGTERM cancel the
// command context, which shuts the server down gracefully.
func Execute() {
	log = internal.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cmd.ExecuteContext(ctx)

	if err != nil {
		stop()
		os.Exit(1)
	}
}
