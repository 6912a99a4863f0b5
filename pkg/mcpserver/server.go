// Package mcpserver exposes the analysis pipeline over the Model Context
// Protocol (SPEC_FULL.md §6), grounded on the teacher's pkg/mcp.MCPServer:
// a server.NewMCPServer with a name/version pair, tools registered via
// s.AddTool(mcp.NewTool(...), handler), and a stdio transport started with
// server.ServeStdio. The teacher exposes many tools over one persistent
// graph store; this server exposes one tool, analyze_project, over the same
// pipeline.Run entry point the REST surface in pkg/httpapi uses.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/themaverik/codebase-workflow-analyzer/internal/config"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/pipeline"
)

// Server wraps the pipeline dependencies exposed via MCP.
type Server struct {
	cfg  config.Config
	deps pipeline.Deps
}

// NewServer constructs a Server, following the teacher's MCPServer{store,
// graph, clustering} pattern of holding its collaborators directly.
func NewServer(cfg config.Config, deps pipeline.Deps) *Server {
	return &Server{cfg: cfg, deps: deps}
}

// Run starts the MCP server on stdio, mirroring the teacher's Run(ctx,
// store) function exactly in shape (construct, register, ServeStdio).
func (s *Server) Run(ctx context.Context) error {
	mcpServer := server.NewMCPServer(
		"hierctx",
		s.cfg.AnalyzerVersion,
		server.WithLogging(),
	)

	mcpServer.AddTool(
		mcp.NewTool(
			"analyze_project",
			mcp.WithDescription("Analyze a project's codebase and documentation to produce a fused business-domain, architecture, and status-intelligence report."),
			mcp.WithString("project_path", mcp.Required(), mcp.Description("Absolute path to the project root to analyze")),
			mcp.WithBoolean("enable_llm_grounding", mcp.Description("Whether to ground domain classification with a language model (default: server configuration)")),
			mcp.WithBoolean("enable_cache", mcp.Description("Whether to consult/populate the analysis cache (default: server configuration)")),
		),
		s.handleAnalyzeProject,
	)

	return server.ServeStdio(mcpServer)
}

func (s *Server) handleAnalyzeProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	projectPath, ok := args["project_path"].(string)
	if !ok || projectPath == "" {
		return mcp.NewToolResultError("project_path argument required"), nil
	}

	cfg := s.cfg
	if v, ok := args["enable_llm_grounding"].(bool); ok {
		cfg.EnableLLMGrounding = v
	}
	if v, ok := args["enable_cache"].(bool); ok {
		cfg.EnableCache = v
	}

	result, err := pipeline.Run(ctx, cfg, projectPath, s.deps)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to marshal analysis result"), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}
