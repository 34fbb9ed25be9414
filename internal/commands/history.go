package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/diogo/flapmsg/internal/history"
)

// NewHistoryCmd creates the history command and its subcommands
func NewHistoryCmd(deps *Dependencies) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent requests",
		Long: `List the most recent requests made by flapmsg (newest first): what was
sent, what the service returned, and any error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openHistory(deps, true, loadConfig(deps.stderr()))
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer closeStore()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list history: %w", err)
			}
			total, err := store.Count(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to count history: %w", err)
			}
			return printHistory(deps, entries, total)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openHistory(deps, true, loadConfig(deps.stderr()))
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer closeStore()

			if err := store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(deps.stdout(), "History cleared.")
			return nil
		},
	})

	var keep int
	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Keep only the newest entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keep < 0 {
				return fmt.Errorf("--keep must not be negative, got %d", keep)
			}

			store, closeStore, err := openHistory(deps, true, loadConfig(deps.stderr()))
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer closeStore()

			if err := store.Prune(cmd.Context(), keep); err != nil {
				return fmt.Errorf("failed to prune history: %w", err)
			}
			fmt.Fprintf(deps.stdout(), "Kept the newest %d entries.\n", keep)
			return nil
		},
	}
	pruneCmd.Flags().IntVar(&keep, "keep", 100, "Number of entries to keep")
	cmd.AddCommand(pruneCmd)

	return cmd
}

func printHistory(deps *Dependencies, entries []history.Entry, total int) error {
	out := deps.stdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No history entries found.")
		return nil
	}

	// Split what is left of the terminal between the two text columns
	textWidth := (getTerminalWidth() - 40) / 2
	if textWidth < 12 {
		textWidth = 12
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TIME\tOP\tSOURCE\tSENT\tRECEIVED\tERROR")
	_, _ = fmt.Fprintln(w, "----\t--\t------\t----\t--------\t-----")

	for _, e := range entries {
		received := truncate(oneLine(e.Received), textWidth)
		if e.Failed() {
			received = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.At.Local().Format("2006-01-02 15:04:05"),
			e.Op,
			e.Source,
			truncate(oneLine(e.Sent), textWidth),
			received,
			truncate(oneLine(e.Error), 60),
		)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("Showing %d of %d entries", len(entries), total)))
	return nil
}
