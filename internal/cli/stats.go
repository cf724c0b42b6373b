package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/me/adminctl/internal/output"
	"github.com/me/adminctl/pkg/adminapi"
)

func newStatsCmd() *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show user registration statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if period != "" {
				return runPeriodStats(cmd, adminapi.StatsPeriod(period))
			}

			stats, err := client.Stats(cmd.Context())
			if err != nil {
				return friendlyErr(err)
			}

			table := output.NewTableWithWriter(cmd.OutOrStdout(),
				[]string{"Metric", "Count"})
			rows := []struct {
				label string
				count int64
			}{
				{"Total users", stats.TotalUsers},
				{"Active users", stats.ActiveUsers},
				{"Inactive users", stats.InactiveUsers},
				{"Registered today", stats.RegisteredToday},
				{"Registered this week", stats.RegisteredThisWeek},
				{"Registered this month", stats.RegisteredThisMonth},
			}
			for _, r := range rows {
				table.AddRow([]string{r.label, strconv.FormatInt(r.count, 10)})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&period, "period", "",
		"registration breakdown period (diarias, semanales, mensuales)")
	return cmd
}

func runPeriodStats(cmd *cobra.Command, period adminapi.StatsPeriod) error {
	raw, err := client.PeriodStats(cmd.Context(), period)
	if err != nil {
		return friendlyErr(err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("format period stats: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), buf.String())
	return nil
}
