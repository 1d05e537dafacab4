package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yungbote/contractpay-backend/internal/app"
	"github.com/yungbote/contractpay-backend/internal/data/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo profiles, contracts and jobs",
	Long:  `Migrates the configured store and loads a demo ledger. Stores that already hold profiles are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, cfg, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg.AutoMigrate = true
		gdb, err := app.OpenStore(log, cfg)
		if err != nil {
			return err
		}
		res, err := db.SeedDemo(context.Background(), gdb, time.Now())
		if err != nil {
			return err
		}
		if res.Skipped {
			fmt.Fprintln(cmd.OutOrStdout(), "store already has profiles, nothing seeded")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d profiles, %d contracts, %d jobs\n", res.Profiles, res.Contracts, res.Jobs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
