package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/flapmsg/internal/api"
	"github.com/diogo/flapmsg/internal/history"
)

// NewModeCmd creates the mode command
func NewModeCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:       "mode <message|clock>",
		Short:     "Switch what the display shows",
		Long:      `Switch the display between showing the stored message and showing a clock.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: api.AvailableModes(),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(deps)
			if err != nil {
				return err
			}
			defer s.close()

			ctx := cmd.Context()
			mode := args[0]
			got, err := s.client.SetMode(ctx, mode)
			s.record(ctx, history.Entry{Op: history.OpMode, Sent: mode, Received: got}, err)
			if err != nil {
				return fmt.Errorf("failed to set mode: %w", err)
			}

			fmt.Fprintf(deps.stdout(), "%s %s\n",
				successStyle.Render("✓ Display mode:"),
				valueStyle.Render(got))
			return nil
		},
	}
}
