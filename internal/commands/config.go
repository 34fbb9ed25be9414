package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/flapmsg/internal/config"
	"github.com/diogo/flapmsg/internal/render"
)

// NewConfigCmd creates the config command
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		Long:  `Show the effective configuration or change persisted settings in ~/.flapmsg/config.json.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(deps.stderr())
			path, _ := config.GetConfigPath()

			address := config.ResolveServiceAddress(addressFlag, cfg)
			apiBase, err := config.APIBase(address)
			if err != nil {
				apiBase = "(invalid: " + err.Error() + ")"
			}

			rows := []struct {
				key   string
				value string
			}{
				{"config file", path},
				{"service address", address},
				{"api base", apiBase},
				{"sentinel", cfg.Sentinel},
				{"discard stale", fmt.Sprint(cfg.DiscardStale)},
				{"timeout seconds", fmt.Sprint(cfg.TimeoutSeconds)},
				{"history", fmt.Sprint(cfg.History)},
				{"copy to clipboard", fmt.Sprint(cfg.CopyToClipboard)},
				{"theme", cfg.TUITheme},
				{"log file", cfg.LogFile},
			}

			out := deps.stdout()
			for _, r := range rows {
				fmt.Fprintf(out, "%s %s\n",
					labelStyle.Render(fmt.Sprintf("%-18s", r.key+":")),
					valueStyle.Render(r.value))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-address <url>",
		Short: "Persist the service address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address := strings.TrimSpace(args[0])
			apiBase, err := config.APIBase(address)
			if err != nil {
				return err
			}

			cfg := loadConfig(deps.stderr())
			cfg.ServiceAddress = address
			if err := config.SaveConfig(cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Fprintf(deps.stdout(), "%s %s\n",
				successStyle.Render("✓ Service address saved. API base:"),
				valueStyle.Render(apiBase))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set-theme <name>",
		Short:     "Persist the editor color theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: render.ThemeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, ok := render.ThemeByName(args[0])
			if !ok {
				return fmt.Errorf("unknown theme %q (available: %s)", args[0], strings.Join(render.ThemeNames(), ", "))
			}

			cfg := loadConfig(deps.stderr())
			cfg.TUITheme = theme.Name
			if err := config.SaveConfig(cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Fprintf(deps.stdout(), "%s %s\n",
				successStyle.Render("✓ Theme:"),
				valueStyle.Render(theme.Name+" - "+theme.Description))
			return nil
		},
	})

	return cmd
}
