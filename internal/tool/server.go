// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hireflow/hireflow/internal/intake"
)

const serverName = "hireflow"

// NewServer returns an MCP server with the new-hire tools registered.
func NewServer(pipeline *intake.Pipeline, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)

	tools := NewNewHireTools(pipeline)
	mcp.AddTool(server, MetadataProcessNewHireDocument, tools.ProcessNewHireDocument)
	mcp.AddTool(server, MetadataExtractNewHireFields, tools.ExtractNewHireFields)
	return server
}
