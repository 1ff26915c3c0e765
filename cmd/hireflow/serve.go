// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/hireflow/hireflow/internal/server"
	"github.com/hireflow/hireflow/internal/tool"
)

const (
	transportStdio = "stdio"
	transportHTTP  = "http"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		transport string
		addr      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline as an MCP server or an HTTP API",
		Long: `Serve the extraction pipeline.

  stdio  MCP server over stdin/stdout exposing process_new_hire_document
         and extract_new_hire_fields.
  http   REST API with POST /v1/documents, GET /healthz and GET /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if transport != transportStdio && transport != transportHTTP {
				return fmt.Errorf("invalid transport type: %s (supported types: 'stdio', 'http')", transport)
			}

			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			switch transport {
			case transportStdio:
				a.log.Info("starting MCP server on stdio")
				if err := tool.NewServer(a.pipeline, version).Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
					return fmt.Errorf("mcp server error: %w", err)
				}
			case transportHTTP:
				if !opts.debug {
					gin.SetMode(gin.ReleaseMode)
				}
				if addr == "" {
					addr = a.cfg.HTTP.Addr
				}
				if err := server.NewServer(a.pipeline, a.metrics, a.log).Run(cmd.Context(), addr); err != nil {
					return fmt.Errorf("http server error: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&transport, "transport", transportStdio, "Transport type (stdio or http)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address for the http transport (default: http.addr from config)")
	return cmd
}
