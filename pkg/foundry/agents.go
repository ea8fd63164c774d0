package foundry

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
	"github.com/theapemachine/a2a-foundry/pkg/tools"
)

/*
AgentParams describes an agent to create. Toolset contributes function
tools, VectorStoreIDs turn on file search over those stores.
*/
type AgentParams struct {
	Model          string
	Name           string
	Instructions   string
	Description    string
	Toolset        *tools.Toolset
	VectorStoreIDs []string
}

func (client *Client) CreateAgent(ctx context.Context, params AgentParams) (*openai.Assistant, error) {
	if params.Model == "" {
		return nil, fmt.Errorf("create agent %s: no model deployment", params.Name)
	}

	body := openai.BetaAssistantNewParams{
		Model: openai.ChatModel(params.Model),
	}

	if params.Name != "" {
		body.Name = openai.String(params.Name)
	}

	if params.Instructions != "" {
		body.Instructions = openai.String(params.Instructions)
	}

	if params.Description != "" {
		body.Description = openai.String(params.Description)
	}

	if params.Toolset != nil {
		body.Tools = append(body.Tools, params.Toolset.Definitions()...)
	}

	if len(params.VectorStoreIDs) > 0 {
		body.Tools = append(body.Tools, openai.AssistantToolUnionParam{
			OfFileSearch: &openai.FileSearchToolParam{},
		})
		body.ToolResources = openai.BetaAssistantNewParamsToolResources{
			FileSearch: openai.BetaAssistantNewParamsToolResourcesFileSearch{
				VectorStoreIDs: params.VectorStoreIDs,
			},
		}
	}

	agent, err := client.conn.Beta.Assistants.New(ctx, body)

	if err != nil {
		return nil, fmt.Errorf("create agent %s: %w", params.Name, err)
	}

	log.Debug("created agent", "id", agent.ID, "name", params.Name)
	return agent, nil
}

func (client *Client) DeleteAgent(ctx context.Context, agentID string) error {
	if _, err := client.conn.Beta.Assistants.Delete(ctx, agentID); err != nil {
		return fmt.Errorf("delete agent %s: %w", agentID, err)
	}

	return nil
}
