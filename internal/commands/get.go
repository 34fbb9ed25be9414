package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/flapmsg/internal/history"
)

// NewGetCmd creates the get command
func NewGetCmd(deps *Dependencies) *cobra.Command {
	var copyFlag bool

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the current message",
		Long: `Print the message currently stored by the service, exactly as returned.
A trailing newline is added only when writing to a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(deps)
			if err != nil {
				return err
			}
			defer s.close()

			ctx := cmd.Context()
			body, err := s.client.GetMessage(ctx)
			s.record(ctx, history.Entry{Op: history.OpFetch, Received: body}, err)
			if err != nil {
				return fmt.Errorf("failed to get message: %w", err)
			}

			out := deps.stdout()
			fmt.Fprint(out, body)
			if isTTY(out) && !strings.HasSuffix(body, "\n") {
				fmt.Fprintln(out)
			}

			if copyFlag || s.cfg.CopyToClipboard {
				if err := deps.copy(body); err != nil {
					fmt.Fprintf(s.stderr, "Warning: failed to copy to clipboard: %v\n", err)
				} else if s.verbose {
					fmt.Fprintln(s.stderr, "[verbose] Copied to clipboard")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyFlag, "copy", "c", false, "Also copy the message to the clipboard")
	return cmd
}
