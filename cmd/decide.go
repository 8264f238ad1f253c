package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/soldier/internal/streak"
)

var restartYes bool

// commitCmd records that the user held the line today.
var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Record today as a kept day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		st, err := a.streak(ctx).Commit(ctx)
		if err != nil {
			return fmt.Errorf("day %d: %w", st.CurrentDay, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Day %d. %s\n", st.CurrentDay, st.Message)
		return nil
	},
}

// restartCmd sends the streak back to day 1.
var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Start the streak over from day 1",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		st, err := a.streak(ctx).Restart(ctx, restartYes)
		switch {
		case errors.Is(err, streak.ErrConfirmationRequired):
			return fmt.Errorf("%w: pass --yes to start over from day 1", err)
		case err != nil:
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Back to day %d. %s\n", st.CurrentDay, st.Message)
		return nil
	},
}

func init() {
	restartCmd.Flags().BoolVarP(&restartYes, "yes", "y", false, "Confirm the restart")
}
