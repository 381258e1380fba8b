// Package serve implements the HTTP server command
package serve

import (
	"fmt"

	"fjacquet/finflow/cmd/root"
	"fjacquet/finflow/internal/container"
	"fjacquet/finflow/internal/server"

	"github.com/spf13/cobra"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  `Serve the /upload and /predict endpoints until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		return NewServer(c, addr).ListenAndServe(cmd.Context())
	},
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
}

// NewServer builds the HTTP server from the container configuration.
// A non-empty listen overrides the configured address.
func NewServer(c *container.Container, listen string) *server.Server {
	cfg := c.GetConfig()
	opts := server.Options{
		Addr:           cfg.Server.Addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
	}
	if listen != "" {
		opts.Addr = listen
	}
	return server.New(c.GetService(), opts, c.GetLogger())
}
