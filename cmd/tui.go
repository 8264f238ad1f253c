package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ramanasai/soldier/internal/breath"
	"github.com/ramanasai/soldier/internal/games"
	"github.com/ramanasai/soldier/internal/ui"
)

// tuiCmd launches the Bubble Tea TUI.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmdContext(cmd), syscall.SIGTERM)
		defer cancel()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		n := a.notifier()
		agg, _ := a.stats(ctx, n)
		tr := a.streak(ctx)
		startReminder(ctx, tr, n)

		return ui.Run(ctx, ui.Deps{
			Config:   a.cfg,
			Log:      a.log,
			Sched:    a.sched,
			Rand:     games.DefaultRand(),
			Streak:   tr,
			Breath:   a.breath(ctx, breath.OnPhase(func(breath.Phase) { n.Chime() })),
			Stats:    agg,
			Notifier: n,
		})
	},
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
