package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/yungbote/contractpay-backend/internal/app"
	repos "github.com/yungbote/contractpay-backend/internal/data/repos/ledger"
	"github.com/yungbote/contractpay-backend/internal/platform/timeutil"
	"github.com/yungbote/contractpay-backend/internal/services"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run ledger reports against the configured store",
}

var bestProfessionCmd = &cobra.Command{
	Use:   "best-profession",
	Short: "Profession that earned the most in the window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withReports(cmd, func(ctx context.Context, reports services.ReportService, start, end time.Time) (interface{}, error) {
			return reports.BestProfession(ctx, start, end)
		})
	},
}

var bestClientsCmd = &cobra.Command{
	Use:   "best-clients",
	Short: "Clients that paid the most in the window",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withReports(cmd, func(ctx context.Context, reports services.ReportService, start, end time.Time) (interface{}, error) {
			return reports.BestClients(ctx, start, end, limit)
		})
	},
}

func withReports(cmd *cobra.Command, run func(context.Context, services.ReportService, time.Time, time.Time) (interface{}, error)) error {
	rawStart, _ := cmd.Flags().GetString("start")
	rawEnd, _ := cmd.Flags().GetString("end")
	start, err := timeutil.ParseBound(rawStart, false)
	if err != nil {
		return fmt.Errorf("invalid --start %q: %w", rawStart, err)
	}
	end, err := timeutil.ParseBound(rawEnd, true)
	if err != nil {
		return fmt.Errorf("invalid --end %q: %w", rawEnd, err)
	}

	log, cfg, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	gdb, err := app.OpenStore(log, cfg)
	if err != nil {
		return err
	}
	reports := services.NewReportService(gdb, log, repos.NewJobRepo(gdb, log))

	out, err := run(cmd.Context(), reports, start, end)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(bestProfessionCmd, bestClientsCmd)

	today := time.Now().UTC().Format("2006-01-02")
	monthAgo := time.Now().UTC().AddDate(0, 0, -30).Format("2006-01-02")
	reportCmd.PersistentFlags().String("start", monthAgo, "Window start (YYYY-MM-DD or RFC 3339)")
	reportCmd.PersistentFlags().String("end", today, "Window end (YYYY-MM-DD or RFC 3339, inclusive)")
	bestClientsCmd.Flags().Int("limit", services.DefaultBestClientsLimit, "Number of clients to return")
}
