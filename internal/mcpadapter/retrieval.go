package mcpadapter

import (
	"context"

	"github.com/docqa-labs/retrieval-agent/internal/models"
	"github.com/docqa-labs/retrieval-agent/internal/orchestrator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RunRetrievalInput is the MCP tool input schema (matches HTTP API field names).
type RunRetrievalInput struct {
	Documents string   `json:"documents" jsonschema:"URL of the document to answer questions about"`
	Questions []string `json:"questions" jsonschema:"ordered list of natural-language questions"`
}

// NewRunRetrievalHandler returns a tool handler bound to the given
// orchestrator. Pass the returned function to mcp.AddTool.
func NewRunRetrievalHandler(orch *orchestrator.Orchestrator) func(context.Context, *mcp.CallToolRequest, RunRetrievalInput) (*mcp.CallToolResult, *models.RetrievalResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RunRetrievalInput) (*mcp.CallToolResult, *models.RetrievalResult, error) {
		result, err := orch.Run(ctx, input.Documents, input.Questions)
		if err != nil {
			return nil, nil, err
		}
		return nil, result, nil
	}
}
