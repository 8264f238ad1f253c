package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ramanasai/soldier/internal/config"
	"github.com/ramanasai/soldier/internal/notify"
	"github.com/ramanasai/soldier/internal/schedule"
	"github.com/ramanasai/soldier/internal/streak"
)

var (
	cfg     config.Config
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:          "soldier",
	Short:        "One decision a day: streaks, guided breathing and focus games",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgPath != "" {
			cfg, err = config.LoadFrom(cfgPath)
		} else {
			cfg, err = config.Load()
		}
		return err
	},
	// a terminal gets the TUI, pipes get the plain status
	RunE: func(cmd *cobra.Command, args []string) error {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return tuiCmd.RunE(cmd, args)
		}
		return statusCmd.RunE(cmd, args)
	},
}

func Execute() error { return rootCmd.Execute() }

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.config/soldier/config.yaml)")

	rootCmd.AddCommand(tuiCmd, statusCmd, commitCmd, restartCmd, breatheCmd, statsCmd, setCmd, resetCmd, versionCmd)
}

// startReminder runs the daily check-in reminder in the background for
// long-running commands. It stays quiet once today is decided.
func startReminder(ctx context.Context, tr *streak.Tracker, n *notify.Notifier) {
	if !cfg.Reminder.Enabled || os.Getenv("SOLDIER_NO_REMINDER") == "1" {
		return
	}
	go schedule.RunConfigured(ctx, cfg, func() {
		if tr.HasCommittedToday() {
			return
		}
		title, msg := notify.FormatDailyPrompt(tr.State().CurrentDay)
		n.Info(title, msg)
	})
}
