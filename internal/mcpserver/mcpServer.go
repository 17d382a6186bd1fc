package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/snipbot/ragservice/internal/domain/ragmodel"
	"github.com/snipbot/ragservice/internal/rag"
	"github.com/snipbot/ragservice/pkg/logger_i"
)

const Version = "1.0.0"

// Server exposes retrieval as an MCP tool so agent runtimes can pull tenant
// context without going through the HTTP surface.
type Server struct {
	ragService rag.Service
	server     *mcp.Server
	logger     *logger_i.Logger
}

type SearchInput struct {
	TenantID string `json:"tenant_id" jsonschema:"the tenant whose documents to search, a UUID"`
	Query    string `json:"query" jsonschema:"the question to find supporting context for"`
}

type SearchOutput struct {
	Context string `json:"context"`
	Found   bool   `json:"found"`
}

func NewServer(ragService rag.Service) *Server {
	impl := &mcp.Implementation{
		Name:    "ragservice",
		Version: Version,
	}

	s := &Server{
		ragService: ragService,
		server:     mcp.NewServer(impl, nil),
		logger:     logger_i.NewLogger("MCPServer"),
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Search a tenant's ingested documents and return a formatted context block",
	}, s.handleSearch)

	return s
}

// Run serves MCP over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("MCP server starting on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	tenantID, err := ragmodel.ParseTenantID(input.TenantID)
	if err != nil {
		s.logger.Warn("Search tool rejected tenant id", "tenant", input.TenantID)
		return nil, SearchOutput{}, err
	}

	contextBlock, found, err := s.ragService.Retrieve(ctx, tenantID, input.Query)
	if err != nil {
		s.logger.Error("Search tool failed", "tenant", tenantID, "error", err)
		return nil, SearchOutput{}, err
	}
	return nil, SearchOutput{Context: contextBlock, Found: found}, nil
}
