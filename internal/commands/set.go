package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/flapmsg/internal/history"
)

var errNoMessage = errors.New("no message given: pass it as an argument, with --file, or on stdin (use \"\" to clear)")

// NewSetCmd creates the set command
func NewSetCmd(deps *Dependencies) *cobra.Command {
	var (
		fileFlag string
		softFlag bool
	)

	cmd := &cobra.Command{
		Use:   "set [text]",
		Short: "Replace the current message",
		Long: `Replace the stored message and print the service's canonical version of it.

The text comes from the argument, --file, or stdin when it is not a terminal.
One trailing newline is dropped from file and stdin input. An empty message
is allowed and clears the display.

--soft sends the write as POST instead of PUT.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readMessage(deps, fileFlag, args)
			if err != nil {
				return err
			}

			s, err := newSession(deps)
			if err != nil {
				return err
			}
			defer s.close()

			op, write := history.OpPut, s.client.PutMessage
			if softFlag {
				op, write = history.OpPost, s.client.PostMessage
			}
			if s.verbose {
				fmt.Fprintf(s.stderr, "[verbose] Sending %d bytes (%s)\n", len(text), op)
			}

			spin := startSpinner(s.stderr, "Updating board")

			ctx := cmd.Context()
			echo, err := write(ctx, text)
			s.record(ctx, history.Entry{Op: op, Sent: text, Received: echo}, err)
			if err != nil {
				if spin != nil {
					spin.stopWithError()
				}
				return fmt.Errorf("failed to set message: %w", err)
			}
			if spin != nil {
				spin.stopWithSuccess("Message updated")
			}

			out := deps.stdout()
			fmt.Fprint(out, echo)
			if isTTY(out) && !strings.HasSuffix(echo, "\n") {
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read the message from a file")
	cmd.Flags().BoolVar(&softFlag, "soft", false, "Use POST instead of PUT")
	return cmd
}

// readMessage picks the message from --file, the argument, or stdin
func readMessage(deps *Dependencies, file string, args []string) (string, error) {
	if file != "" {
		if len(args) > 0 {
			return "", fmt.Errorf("use either an argument or --file, not both")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return trimFinalNewline(string(data)), nil
	}

	if len(args) > 0 {
		return args[0], nil
	}

	if !deps.stdinIsTerminal() {
		data, err := io.ReadAll(deps.stdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return trimFinalNewline(string(data)), nil
	}

	return "", errNoMessage
}

func trimFinalNewline(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}
