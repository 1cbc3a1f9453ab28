package mcpadapter

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/ports"
)

const (
	ServerName = "insurance-benefits"
	AskTool    = "ask_insurance_benefits"
)

// NewServer exposes the pipeline as a single MCP tool.
func NewServer(answerer ports.QuestionAnswerer, version string) *server.MCPServer {
	s := server.NewMCPServer(ServerName, version, server.WithToolCapabilities(false))

	tool := mcp.NewTool(AskTool,
		mcp.WithDescription("Answer a US health insurance benefits question from the insurer's published plan PDFs (Summary of Benefits and Coverage)."),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("Question naming the insurer, plan and year, e.g. \"What is the deductible for Molina Silver 1 HMO in 2025?\""),
		),
	)
	s.AddTool(tool, askHandler(answerer))
	return s
}

func askHandler(answerer ports.QuestionAnswerer) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := req.RequireString("question")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result, err := answerer.Run(ctx, question)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(renderResult(result)), nil
	}
}

func renderResult(result *domain.PipelineResult) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(result.Answer))
	if len(result.Sources) > 0 {
		b.WriteString("\n\nSources:")
		for _, src := range result.Sources {
			b.WriteString("\n- ")
			b.WriteString(src)
		}
	} else {
		b.WriteString("\n\nNo plan document was found; answered without a source document.")
	}
	return b.String()
}
