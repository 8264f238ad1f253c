package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/soldier/internal/output"
	"github.com/ramanasai/soldier/internal/store"
)

var statusFormat string

// statusCmd prints today's streak without opening the TUI.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		r, err := renderer(statusFormat)
		if err != nil {
			return err
		}
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		st := a.streak(ctx).State()
		total, err := store.TotalSessions.Load(ctx, a.kv)
		if err != nil {
			a.log.Warn("load total sessions", "error", err)
		}
		out, err := r.RenderStatus(output.Status{
			Day:            st.CurrentDay,
			Message:        st.Message,
			LastCommitDate: st.LastCommitDate,
			DecidedToday:   st.HasCommittedToday,
			TotalSessions:  total,
		})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVarP(&statusFormat, "format", "f", "text", "Output format: text, json or yaml")
}
