package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mwittig/packsize/pkg/analyzer"
)

// newReportsCmd creates the reports command with list and show subcommands.
// Both require a store backend in the configuration.
func newReportsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Browse archived analysis reports",
	}

	cmd.AddCommand(newReportsListCmd(configPath))
	cmd.AddCommand(newReportsShowCmd(configPath))

	return cmd
}

func newReportsListCmd(configPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			if st == nil {
				return fmt.Errorf("no report store configured (set [store] backend in the config file)")
			}
			defer st.Close(ctx)

			reports, err := st.List(ctx, limit)
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				fmt.Fprintln(c.OutOrStdout(), detail("no archived reports"))
				return nil
			}
			fmt.Fprintln(c.OutOrStdout(), reportsTable(reports))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of reports to list")

	return cmd
}

func newReportsShowCmd(configPath *string) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one archived report",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			if st == nil {
				return fmt.Errorf("no report store configured (set [store] backend in the config file)")
			}
			defer st.Close(ctx)

			report, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return printReportJSON(c.OutOrStdout(), report)
			}
			renderReport(c.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the raw report as JSON")

	return cmd
}

func reportsTable(reports []analyzer.Report) string {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			r.ID,
			r.GeneratedAt.Format("2006-01-02 15:04"),
			string(r.Ecosystem),
			strconv.Itoa(len(r.Packages)),
			humanBytes(r.Estimate.Full),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Generated", "Ecosystem", "Packages", "Full image").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return styleCell
		}).
		String()
}
