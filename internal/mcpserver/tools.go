package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kaviapp/kavi/internal/config"
)

// SearchInput is the input schema for the search_questions tool.
type SearchInput struct {
	Summary string `json:"summary" jsonschema:"candidate summary to match questions against"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of questions to return (default 10)"`
}

// SearchOutput is the output schema for the search_questions tool.
type SearchOutput struct {
	Questions []string `json:"questions"`
	Count     int      `json:"count"`
	Errors    []string `json:"error,omitempty"`
}

// PlanInput is the input schema for the build_plan tool.
type PlanInput struct {
	Summary string `json:"summary" jsonschema:"candidate summary the plan is built for"`
	Limit   int    `json:"limit,omitempty" jsonschema:"number of questions to retrieve (default 10)"`
}

// PlanOutput is the output schema for the build_plan tool.
type PlanOutput struct {
	Plan   string   `json:"plan,omitempty"`
	Errors []string `json:"error,omitempty"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_questions",
		Description: "Retrieve the interview questions closest to a candidate summary",
	}, s.handleSearchQuestions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "build_plan",
		Description: "Build a categorized interview preparation plan for a candidate summary",
	}, s.handleBuildPlan)
}

func (s *Server) handleSearchQuestions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	result, err := s.ragService.SearchQuestions(ctx, input.Summary, input.Limit, config.QuestionCollectionName)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, SearchOutput{
		Questions: result.Documents,
		Count:     len(result.Documents),
		Errors:    result.Errors,
	}, nil
}

func (s *Server) handleBuildPlan(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PlanInput,
) (*mcp.CallToolResult, PlanOutput, error) {
	result, err := s.ragService.BuildPlan(ctx, input.Summary, input.Limit)
	if err != nil {
		return nil, PlanOutput{}, err
	}

	return nil, PlanOutput{
		Plan:   result.Plan,
		Errors: result.Errors,
	}, nil
}
