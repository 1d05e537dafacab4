package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yungbote/contractpay-backend/internal/app"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

var rootCmd = &cobra.Command{
	Use:   "contractpay",
	Short: "Contract payment settlement service",
	Long:  `contractpay settles jobs between clients and contractors, takes client deposits and reports on paid work.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if strings.TrimSpace(path) != "" {
			return os.Setenv("CONFIG_FILE", path)
		}
		return nil
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML config file (overrides CONFIG_FILE)")
}

// bootstrap builds the logger and config shared by every subcommand.
func bootstrap() (*logger.Logger, app.Config, error) {
	log, err := app.NewLogger()
	if err != nil {
		return nil, app.Config{}, err
	}
	log.Info("Loading configuration...")
	cfg, err := app.LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, app.Config{}, err
	}
	return log, cfg, nil
}
