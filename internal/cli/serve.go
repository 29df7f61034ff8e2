package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ascfix/internal/server"
	"github.com/matzehuels/ascfix/pkg/cache"
	"github.com/matzehuels/ascfix/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP API until
// the process is interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the repair API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			runner := pipeline.NewRunner(c.openCache(ctx, cfg, noCache), cache.NewScopedKeyer(nil, "api:"), c.Logger)
			defer runner.Close()

			srv := server.New(runner, c.Logger, server.Config{
				Addr:         cfg.Server.Addr,
				MaxBodyBytes: cfg.Server.MaxBodyBytes,
				Defaults:     pipelineOptions(cfg, pipeline.ModeSafe),
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config: :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}
