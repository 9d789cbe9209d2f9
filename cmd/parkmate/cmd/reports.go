package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/SscSPs/parkmate_app/internal/dto"
	"github.com/SscSPs/parkmate_app/internal/utils"
	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	pageLimit int
	pageToken string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List every entry and exit with its status",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "List collected fees and their total",
	Args:  cobra.NoArgs,
	RunE:  runPayments,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(paymentsCmd)

	for _, c := range []*cobra.Command{historyCmd, paymentsCmd} {
		c.Flags().IntVarP(&pageLimit, "limit", "n", 50, "page size, 0 for everything")
		c.Flags().StringVar(&pageToken, "next", "", "token printed at the end of the previous page")
	}
}

func runHistory(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.close()

	resp, err := a.parking.ListHistory(cmd.Context(), dto.ListLogsParams{Limit: pageLimit, NextToken: pageToken})
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(resp.Items) == 0 {
		fmt.Fprintln(a.out, "No records.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PIN\tEVENT\tTIME\tSTATUS\tDURATION\tAMOUNT")
	for _, item := range resp.Items {
		duration, amount := "-", "-"
		if item.DurationMinutes != nil {
			duration = fmt.Sprintf("%d min", *item.DurationMinutes)
		}
		if item.Amount != nil {
			amount = utils.FormatAmount(*item.Amount, resp.Currency)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			item.Pin, item.EventType, item.Timestamp.Local().Format(timeLayout), item.Status, duration, amount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	printNext(a, resp.NextToken)
	return nil
}

func runPayments(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.close()

	resp, err := a.parking.ListPayments(cmd.Context(), dto.ListLogsParams{Limit: pageLimit, NextToken: pageToken})
	if err != nil {
		return fmt.Errorf("list payments: %w", err)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PIN\tTIME\tDURATION\tAMOUNT")
	for _, p := range resp.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d min\t%s\n",
			p.Pin, p.Timestamp.Local().Format(timeLayout), p.DurationMinutes, utils.FormatAmount(p.Amount, resp.Currency))
	}
	fmt.Fprintf(tw, "TOTAL\t\t\t%s\n", utils.FormatAmount(resp.Total, resp.Currency))
	if err := tw.Flush(); err != nil {
		return err
	}
	printNext(a, resp.NextToken)
	return nil
}

func printNext(a *app, next *string) {
	if next != nil {
		fmt.Fprintf(a.out, "\nMore records: --next %s\n", *next)
	}
}
