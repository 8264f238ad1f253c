package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramanasai/soldier/internal/breath"
	"github.com/ramanasai/soldier/internal/notify"
)

var breatheMinutes int

// breatheCmd runs a breathing session in the plain terminal. Interrupting it
// still counts the session.
var breatheCmd = &cobra.Command{
	Use:   "breathe",
	Short: "Run a guided breathing session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if breatheMinutes < 0 {
			return fmt.Errorf("--minutes must not be negative")
		}
		ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		n := a.notifier()
		a.stats(ctx, n)
		startReminder(ctx, a.streak(ctx), n)

		out := cmd.OutOrStdout()
		s := a.breath(ctx, breath.OnPhase(func(p breath.Phase) {
			fmt.Fprintln(out, p.Instruction())
			n.Chime()
		}))

		fmt.Fprintln(out, "Breathe with the prompts. Ctrl+C to finish.")
		fmt.Fprintln(out, breath.Inhale.Instruction())
		s.Start()

		var done <-chan time.Time
		if breatheMinutes > 0 {
			t := time.NewTimer(time.Duration(breatheMinutes) * time.Minute)
			defer t.Stop()
			done = t.C
		}
		select {
		case <-ctx.Done():
		case <-done:
		}

		elapsed := s.Snapshot().ElapsedSeconds
		snap := s.Reset(context.WithoutCancel(ctx))
		msg := notify.FormatSessionComplete(snap.TotalSessions)
		n.Done(msg)
		fmt.Fprintf(out, "\n%s Time %s.\n", msg, breath.FormatClock(elapsed))
		return nil
	},
}

func init() {
	breatheCmd.Flags().IntVarP(&breatheMinutes, "minutes", "m", 0, "Stop after this many minutes (0 runs until interrupted)")
}
