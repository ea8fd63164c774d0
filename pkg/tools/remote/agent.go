package remote

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/theapemachine/a2a-foundry/pkg/a2a"
	"github.com/theapemachine/a2a-foundry/pkg/auth"
	"github.com/theapemachine/a2a-foundry/pkg/tools"
)

const (
	AgentToolName        = "get_a2a_response"
	AgentToolDescription = "Get the information about Contoso products"
)

/*
NewAgentTool returns the function tool that forwards a question to a remote
agent over A2A. Every call opens its own client on the asynchronous token
path and returns the JSON dump of the agent's response.
*/
func NewAgentTool(
	agentURL string, tokenAuth *auth.TokenAuth, options ...a2a.ClientOption,
) tools.FunctionTool {
	tool := mcp.NewTool(
		AgentToolName,
		mcp.WithDescription(AgentToolDescription),
		mcp.WithString("message", mcp.Description("The question to send to the agent"), mcp.Required()),
	)

	return tools.FunctionTool{
		Tool: tool,
		Handler: func(ctx context.Context, request mcp.CallToolRequest) (string, error) {
			message, err := request.RequireString("message")

			if err != nil {
				return "", err
			}

			client := a2a.NewClient(agentURL, append([]a2a.ClientOption{a2a.WithAuth(tokenAuth)}, options...)...)
			res, err := client.SendMessage(ctx, a2a.NewSendMessageRequest(a2a.NewTextMessage(a2a.RoleUser, message)))

			if err != nil {
				return "", fmt.Errorf("%s: %w", AgentToolName, err)
			}

			log.Debug("remote agent answered", "url", agentURL, "text", res.Text())

			return res.Dump()
		},
	}
}
