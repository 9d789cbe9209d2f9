package cmd

import (
	"errors"
	"fmt"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	"github.com/SscSPs/parkmate_app/internal/utils"
	"github.com/spf13/cobra"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Issue a PIN for an entering vehicle",
	Args:  cobra.NoArgs,
	RunE:  runEntry,
}

var exitCmd = &cobra.Command{
	Use:   "exit <pin>",
	Short: "Close the stay for a PIN and print the fee",
	Args:  cobra.ExactArgs(1),
	RunE:  runExit,
}

func init() {
	rootCmd.AddCommand(entryCmd)
	rootCmd.AddCommand(exitCmd)
}

func runEntry(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.close()

	rec, err := a.parking.RecordEntry(cmd.Context())
	if err != nil {
		return fmt.Errorf("record entry: %w", err)
	}
	fmt.Fprintf(a.out, "PIN: %s\n", rec.Pin)
	fmt.Fprintf(a.out, "Entered at %s\n", rec.Timestamp.Local().Format(timeLayout))
	fmt.Fprintln(a.out, "Please use this code when exiting.")
	return nil
}

func runExit(cmd *cobra.Command, args []string) error {
	pin := args[0]
	if !domain.IsValidPin(pin) {
		return fmt.Errorf("invalid PIN %q: must be %d digits", pin, domain.PinLength)
	}

	a, err := openApp(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.close()

	res, err := a.parking.RecordExit(cmd.Context(), pin)
	if errors.Is(err, apperrors.ErrPinNotFound) {
		return fmt.Errorf("no entry found with PIN %s", pin)
	}
	if err != nil {
		return fmt.Errorf("record exit: %w", err)
	}
	fmt.Fprintf(a.out, "PIN:      %s\n", res.Pin)
	fmt.Fprintf(a.out, "Entered:  %s\n", res.EntryTime.Local().Format(timeLayout))
	fmt.Fprintf(a.out, "Exited:   %s\n", res.ExitTime.Local().Format(timeLayout))
	fmt.Fprintf(a.out, "Duration: %d min\n", res.DurationMinutes)
	fmt.Fprintf(a.out, "Amount:   %s\n", utils.FormatAmount(res.Amount, res.Currency))
	return nil
}
