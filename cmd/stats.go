package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	statsFormat string
	resetYes    bool
)

// statsCmd prints the progress summary shown on the Settings screen.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress and preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		r, err := renderer(statsFormat)
		if err != nil {
			return err
		}
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		_, sum := a.stats(ctx, nil)
		out, err := r.RenderSummary(sum)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:       "set sound|notifications on|off",
	Short:     "Change a preference",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"sound", "notifications"},
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseOnOff(args[1])
		if err != nil {
			return err
		}
		ctx := cmdContext(cmd)
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		agg, _ := a.stats(ctx, nil)
		switch strings.ToLower(args[0]) {
		case "sound":
			agg.SetSound(ctx, on)
		case "notifications":
			agg.SetNotifications(ctx, on)
		default:
			return fmt.Errorf("unknown preference %q (want sound or notifications)", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", strings.ToLower(args[0]), args[1])
		return nil
	},
}

// resetCmd deletes streak and session progress. Preferences are kept.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("refusing to delete progress without --yes")
		}
		ctx := cmdContext(cmd)
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		agg, _ := a.stats(ctx, nil)
		if err := agg.ResetProgress(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset. Day 1 starts now.")
		return nil
	},
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("want on or off, got %q", s)
}

func init() {
	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", "text", "Output format: text, json or yaml")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Confirm deleting all progress")
}
