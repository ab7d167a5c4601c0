package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tablescroll/pkg/buildinfo"
	"github.com/matzehuels/tablescroll/pkg/config"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Tablescroll pins table headers and footers over a scrolling body",
		Long: `Tablescroll lays out HTML tables as fixed-header, fixed-footer, vertically
scrollable viewports whose header, body and footer columns stay aligned.

Tables opt in with a data-scroll attribute holding the viewport height in
lines, or "false" to remove a previous layout.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/tablescroll/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.resetCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.probeCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file named by --config, or the default one.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "space", cfg.Layout.Space, "debounce", cfg.Resize.Debounce)
	return nil
}
